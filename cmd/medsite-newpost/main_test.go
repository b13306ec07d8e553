package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-medsite/pkg/content"
)

type fakePrompter struct {
	answers map[string]string
	confirm bool
	asked   []string
}

func (f *fakePrompter) Input(_ context.Context, cfg inputConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message)
	answer, ok := f.answers[cfg.Message]
	if !ok {
		answer = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (f *fakePrompter) Select(_ context.Context, cfg selectConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message)
	return f.answers[cfg.Message], nil
}

func (f *fakePrompter) Multiline(_ context.Context, message string) (string, error) {
	f.asked = append(f.asked, message)
	return f.answers[message], nil
}

func (f *fakePrompter) Confirm(context.Context, string, bool) (bool, error) {
	return f.confirm, nil
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.CopyFS(dir, content.EmbeddedFS()); err != nil {
		t.Fatalf("copy fixtures: %v", err)
	}
	return dir
}

func answers() map[string]string {
	return map[string]string{
		"Title":           "Staying hydrated in Miami summers",
		"Category":        "prevention",
		"Summary":         "Simple habits for hot days.",
		"Author":          "Dr. Elena Rivera",
		"Tags":            "Heat, hydration, ",
		"Body (markdown)": "Drink water **before** you feel thirsty.\n",
	}
}

var now = time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)

func TestRunWritesLoadablePost(t *testing.T) {
	dir := fixtureDir(t)
	p := &fakePrompter{answers: answers(), confirm: true}

	path, err := run(context.Background(), p, dir, now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := filepath.Join(dir, "posts", "staying-hydrated-in-miami-summers.yaml"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}

	store, err := content.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	post, ok := store.Post("staying-hydrated-in-miami-summers")
	if !ok {
		t.Fatalf("new post not found")
	}
	if post.PublishedOn != "2024-07-15" || post.Category != "prevention" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if diff := cmp.Diff([]string{"heat", "hydration"}, post.Tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(post.HTML, "<strong>before</strong>") {
		t.Fatalf("body not rendered: %q", post.HTML)
	}
}

func TestRunDeclinedWritesNothing(t *testing.T) {
	dir := fixtureDir(t)
	p := &fakePrompter{answers: answers(), confirm: false}

	if _, err := run(context.Background(), p, dir, now); !errors.Is(err, errAborted) {
		t.Fatalf("expected errAborted, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "posts")); !os.IsNotExist(err) {
		t.Fatalf("expected no posts directory, got %v", err)
	}
}

func TestScaffoldRejectsDuplicateSlug(t *testing.T) {
	store, err := content.Default()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	existing := store.Posts()[0]
	a := answers()
	a["Slug"] = existing.Slug
	p := &fakePrompter{answers: a}

	if _, err := scaffold(context.Background(), p, store, now); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate slug error, got %v", err)
	}
}

func TestScaffoldRejectsUnknownCategory(t *testing.T) {
	store, err := content.Default()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	a := answers()
	a["Category"] = "gossip"

	if _, err := scaffold(context.Background(), &fakePrompter{answers: a}, store, now); err == nil {
		t.Fatalf("expected unknown category error")
	}
}

func TestScaffoldDefaultsEmptyBody(t *testing.T) {
	store, err := content.Default()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	a := answers()
	delete(a, "Body (markdown)")

	post, err := scaffold(context.Background(), &fakePrompter{answers: a}, store, now)
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if post.Body != "_Draft._\n" {
		t.Fatalf("body = %q", post.Body)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Back-to-school physicals: what to bring": "back-to-school-physicals-what-to-bring",
		"  COVID & flu shots  ":                   "covid-flu-shots",
		"Vacunas 2024":                            "vacunas-2024",
		"Niños sanos":                             "ni-os-sanos",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
