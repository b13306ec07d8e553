package cms

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-medsite/pkg/content"
)

// Options configures the editor.
type Options struct {
	// Backend is the Decap backend name (defaults to git-gateway).
	Backend string
	Branch  string
	// SiteURL is set when the editor is opened from a preview deploy.
	SiteURL      string
	MediaFolder  string
	PublicFolder string
	// FixturesDir is the repository path of the content fixtures.
	FixturesDir string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Backend) == "" {
		o.Backend = "git-gateway"
	}
	if strings.TrimSpace(o.Branch) == "" {
		o.Branch = "main"
	}
	if strings.TrimSpace(o.MediaFolder) == "" {
		o.MediaFolder = "assets/images/uploads"
	}
	if strings.TrimSpace(o.PublicFolder) == "" {
		o.PublicFolder = "/assets/images/uploads"
	}
	if strings.TrimSpace(o.FixturesDir) == "" {
		o.FixturesDir = "pkg/content/fixtures"
	}
	o.FixturesDir = strings.TrimRight(o.FixturesDir, "/")
	return o
}

// Config mirrors the parts of Decap's config.yml the site uses.
type Config struct {
	Backend      Backend      `yaml:"backend"`
	SiteURL      string       `yaml:"site_url,omitempty"`
	MediaFolder  string       `yaml:"media_folder"`
	PublicFolder string       `yaml:"public_folder"`
	Collections  []Collection `yaml:"collections"`
}

type Backend struct {
	Name   string `yaml:"name"`
	Branch string `yaml:"branch"`
}

type Collection struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Files []File `yaml:"files"`
}

type File struct {
	Name   string  `yaml:"name"`
	Label  string  `yaml:"label"`
	File   string  `yaml:"file"`
	Fields []Field `yaml:"fields"`
}

type Field struct {
	Name     string   `yaml:"name"`
	Label    string   `yaml:"label"`
	Widget   string   `yaml:"widget"`
	Required *bool    `yaml:"required,omitempty"`
	Options  []string `yaml:"options,omitempty"`
	Format   string   `yaml:"format,omitempty"`
	Fields   []Field  `yaml:"fields,omitempty"`
}

// BuildConfig describes the editable fixture files. Category options come from
// the loaded store so the editor cannot introduce an unknown category.
func BuildConfig(opts Options, store *content.Store) Config {
	opts = opts.withDefaults()

	var categories []string
	if store != nil {
		for _, category := range store.Categories() {
			categories = append(categories, category.Slug)
		}
	}

	optional := false
	return Config{
		Backend:      Backend{Name: opts.Backend, Branch: opts.Branch},
		SiteURL:      strings.TrimSpace(opts.SiteURL),
		MediaFolder:  opts.MediaFolder,
		PublicFolder: opts.PublicFolder,
		Collections: []Collection{
			{
				Name:  "blog",
				Label: "Blog",
				Files: []File{{
					Name:  "posts",
					Label: "Posts",
					File:  opts.FixturesDir + "/blog.yaml",
					Fields: []Field{{
						Name:   "posts",
						Label:  "Posts",
						Widget: "list",
						Fields: []Field{
							{Name: "title", Label: "Title", Widget: "string"},
							{Name: "slug", Label: "Slug", Widget: "string"},
							{Name: "summary", Label: "Summary", Widget: "text"},
							{Name: "category", Label: "Category", Widget: "select", Options: categories},
							{Name: "author", Label: "Author", Widget: "string"},
							{Name: "published", Label: "Published", Widget: "datetime", Format: "YYYY-MM-DD"},
							{Name: "tags", Label: "Tags", Widget: "list", Required: &optional},
							{Name: "image", Label: "Image", Widget: "image", Required: &optional},
							{Name: "image_alt", Label: "Image description", Widget: "string", Required: &optional},
							{Name: "body", Label: "Body", Widget: "markdown"},
						},
					}},
				}},
			},
			{
				Name:  "services",
				Label: "Services",
				Files: []File{{
					Name:  "services",
					Label: "Services",
					File:  opts.FixturesDir + "/services.yaml",
					Fields: []Field{{
						Name:   "services",
						Label:  "Services",
						Widget: "list",
						Fields: []Field{
							{Name: "name", Label: "Name", Widget: "string"},
							{Name: "slug", Label: "Slug", Widget: "string"},
							{Name: "summary", Label: "Summary", Widget: "text"},
							{Name: "image", Label: "Image", Widget: "image", Required: &optional},
							{Name: "image_alt", Label: "Image description", Widget: "string", Required: &optional},
							{Name: "highlights", Label: "Highlights", Widget: "list", Required: &optional},
							{Name: "body", Label: "Body", Widget: "markdown"},
						},
					}},
				}},
			},
		},
	}
}

// YAML encodes the config the way Decap expects to fetch it.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("cms: encode config: %w", err)
	}
	return out, nil
}
