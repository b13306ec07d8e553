package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-medsite/pkg/content"
)

func main() {
	dir := flag.String("content", "content", "fixture directory the post is added to")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path, err := run(ctx, surveyPrompter{}, *dir, time.Now())
	if errors.Is(err, errAborted) {
		fmt.Println("No post written.")
		return
	}
	if err != nil {
		log.Fatalf("Failed to scaffold post: %v", err)
	}
	fmt.Printf("Post written to %s\n", path)
}

func run(ctx context.Context, p prompter, dir string, now time.Time) (string, error) {
	store, err := content.LoadFS(os.DirFS(dir))
	if err != nil {
		return "", fmt.Errorf("load %s: %w", dir, err)
	}

	post, err := scaffold(ctx, p, store, now)
	if err != nil {
		return "", err
	}

	ok, err := p.Confirm(ctx, fmt.Sprintf("Write %q to %s?", post.Title, dir), true)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errAborted
	}

	path, err := writePost(dir, post)
	if err != nil {
		return "", err
	}
	// The new fixture must load alongside the existing ones.
	if _, err := content.LoadFS(os.DirFS(dir)); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("new post does not load: %w", err)
	}
	return path, nil
}

// scaffold prompts for a post's fields and checks them against store.
func scaffold(ctx context.Context, p prompter, store *content.Store, now time.Time) (content.Post, error) {
	categories := store.Categories()
	if len(categories) == 0 {
		return content.Post{}, errors.New("no categories defined; add one before writing posts")
	}

	title, err := p.Input(ctx, inputConfig{Message: "Title", Validator: required("title")})
	if err != nil {
		return content.Post{}, err
	}
	title = strings.TrimSpace(title)

	slug, err := p.Input(ctx, inputConfig{
		Message: "Slug",
		Default: slugify(title),
		Validator: func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" || slugify(s) != s {
				return fmt.Errorf("use lowercase letters, digits and dashes")
			}
			if _, exists := store.Post(s); exists {
				return fmt.Errorf("a post with slug %q already exists", s)
			}
			return nil
		},
	})
	if err != nil {
		return content.Post{}, err
	}
	slug = strings.TrimSpace(slug)
	if _, exists := store.Post(slug); exists {
		return content.Post{}, fmt.Errorf("a post with slug %q already exists", slug)
	}

	options := make([]string, len(categories))
	for i, category := range categories {
		options[i] = category.Slug
	}
	category, err := p.Select(ctx, selectConfig{Message: "Category", Options: options})
	if err != nil {
		return content.Post{}, err
	}
	if _, ok := store.Category(category); !ok {
		return content.Post{}, fmt.Errorf("unknown category %q", category)
	}

	summary, err := p.Input(ctx, inputConfig{Message: "Summary", Validator: required("summary")})
	if err != nil {
		return content.Post{}, err
	}
	author, err := p.Input(ctx, inputConfig{Message: "Author", Default: defaultAuthor(store), Validator: required("author")})
	if err != nil {
		return content.Post{}, err
	}
	tags, err := p.Input(ctx, inputConfig{Message: "Tags", Help: "Comma separated, optional"})
	if err != nil {
		return content.Post{}, err
	}
	body, err := p.Multiline(ctx, "Body (markdown)")
	if err != nil {
		return content.Post{}, err
	}
	if strings.TrimSpace(body) == "" {
		body = "_Draft._"
	}

	return content.Post{
		Slug:        slug,
		Title:       title,
		Summary:     strings.TrimSpace(summary),
		Category:    category,
		Author:      strings.TrimSpace(author),
		PublishedOn: now.Format(content.DateLayout),
		Tags:        splitTags(tags),
		Body:        strings.TrimRight(body, "\n") + "\n",
	}, nil
}

// writePost stores post as its own fixture file so existing files are not
// rewritten.
func writePost(dir string, post content.Post) (string, error) {
	doc := struct {
		Posts []content.Post `yaml:"posts"`
	}{Posts: []content.Post{post}}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode post: %w", err)
	}

	path := filepath.Join(dir, "posts", post.Slug+".yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func defaultAuthor(store *content.Store) string {
	if team := store.Team(); len(team) > 0 {
		return team[0].Name
	}
	return ""
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
