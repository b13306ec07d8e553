package content

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of a post's published date.
const DateLayout = "2006-01-02"

type documentFile struct {
	Practice   *Practice           `json:"practice" yaml:"practice"`
	Categories []Category          `json:"categories" yaml:"categories"`
	Posts      []Post              `json:"posts" yaml:"posts"`
	Services   []Service           `json:"services" yaml:"services"`
	Insurance  []InsurancePlan     `json:"insurance" yaml:"insurance"`
	Pricing    []PricingRow        `json:"pricing" yaml:"pricing"`
	Telehealth []TelehealthFeature `json:"telehealth" yaml:"telehealth"`
	Team       []TeamMember        `json:"team" yaml:"team"`
}

// LoadFS walks fsys and merges every JSON/YAML fixture into a Store. Slugs must
// be unique across files and the practice may be declared once.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		categoryIndex: make(map[string]int),
		postIndex:     make(map[string]int),
		serviceIndex:  make(map[string]int),
	}
	if fsys == nil {
		return store, nil
	}

	practiceSource := ""
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFixtureFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("content: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		if doc.Practice != nil {
			if practiceSource != "" {
				return fmt.Errorf("content: practice declared in %s and %s", practiceSource, path)
			}
			practiceSource = path
			store.practice = *doc.Practice
		}
		for _, category := range doc.Categories {
			if err := addUnique(store.categoryIndex, category.Slug, len(store.categories), "category", path); err != nil {
				return err
			}
			store.categories = append(store.categories, category)
		}
		for _, post := range doc.Posts {
			if err := addUnique(store.postIndex, post.Slug, len(store.posts), "post", path); err != nil {
				return err
			}
			store.posts = append(store.posts, post)
		}
		for _, service := range doc.Services {
			if err := addUnique(store.serviceIndex, service.Slug, len(store.services), "service", path); err != nil {
				return err
			}
			store.services = append(store.services, service)
		}
		store.insurance = append(store.insurance, doc.Insurance...)
		store.pricing = append(store.pricing, doc.Pricing...)
		store.telehealth = append(store.telehealth, doc.Telehealth...)
		store.team = append(store.team, doc.Team...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := store.finalise(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) finalise() error {
	for i := range s.posts {
		post := &s.posts[i]
		if _, ok := s.categoryIndex[post.Category]; !ok {
			return fmt.Errorf("content: post %q references unknown category %q", post.Slug, post.Category)
		}
		published, err := time.Parse(DateLayout, strings.TrimSpace(post.PublishedOn))
		if err != nil {
			return fmt.Errorf("content: post %q: invalid published date %q", post.Slug, post.PublishedOn)
		}
		post.Published = published
		post.HTML = RenderMarkdown(post.Body)
		if post.ReadingMinutes <= 0 {
			post.ReadingMinutes = readingMinutes(post.Body)
		}
	}
	for i := range s.services {
		s.services[i].HTML = RenderMarkdown(s.services[i].Body)
		s.services[i].Icon = SanitizeIcon(s.services[i].Icon)
	}
	for i := range s.telehealth {
		s.telehealth[i].Icon = SanitizeIcon(s.telehealth[i].Icon)
	}

	slices.SortStableFunc(s.posts, func(a, b Post) int {
		if c := b.Published.Compare(a.Published); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
	for i, post := range s.posts {
		s.postIndex[post.Slug] = i
	}
	return nil
}

func addUnique(index map[string]int, slug string, position int, kind, source string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return fmt.Errorf("content: file %s defines a %s with an empty slug", source, kind)
	}
	if _, exists := index[slug]; exists {
		return fmt.Errorf("content: duplicate %s %q (file %s)", kind, slug, source)
	}
	index[slug] = position
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("content: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("content: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("content: parse %s: %w", source, err)
	}
	return doc, nil
}

func isFixtureFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// readingMinutes estimates reading time at 200 words per minute.
func readingMinutes(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + 199) / 200
	return max(minutes, 1)
}
