// Package seo holds the metadata each route advertises to search engines and
// social previews.
package seo

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-medsite/pkg/content"
)

// SiteName is appended to every page title.
const SiteName = "Brickell Family Medicine"

// Meta is the head metadata for one page.
type Meta struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Keywords    []string    `json:"keywords,omitempty"`
	Canonical   string      `json:"canonical,omitempty"`
	Type        string      `json:"type,omitempty"`
	Image       string      `json:"image,omitempty"`
	ImageAlt    string      `json:"image_alt,omitempty"`
	Locale      string      `json:"locale,omitempty"`
	Alternates  []Alternate `json:"alternates,omitempty"`
	NoIndex     bool        `json:"noindex,omitempty"`
}

// Alternate is a hreflang link.
type Alternate struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// KeywordList joins keywords for the meta tag.
func (m Meta) KeywordList() string {
	return strings.Join(m.Keywords, ", ")
}

// FullTitle is the title with the site name suffix.
func (m Meta) FullTitle() string {
	title := strings.TrimSpace(m.Title)
	if title == "" || title == SiteName {
		return SiteName
	}
	return title + " | " + SiteName
}

var pages = map[string]Meta{
	"/": {
		Title:       SiteName,
		Description: "Bilingual family medicine in Brickell, Miami. Primary care, pediatrics, women's health and telehealth visits.",
		Keywords:    []string{"Miami doctor", "family medicine Miami", "primary care Brickell", "bilingual doctor"},
	},
	"/about": {
		Title:       "About our practice",
		Description: "Meet the physicians and nurse practitioners caring for Miami families since 2009.",
		Keywords:    []string{"Miami physicians", "family doctor team", "Spanish speaking doctor"},
	},
	"/services": {
		Title:       "Medical services",
		Description: "Primary care, pediatrics, women's health, chronic disease management and preventive screenings in Miami.",
		Keywords:    []string{"medical services Miami", "pediatrician Miami", "women's health Miami"},
	},
	"/blog": {
		Title:       "Health blog",
		Description: "Practical health advice for Miami families from our clinicians.",
		Keywords:    []string{"health tips", "Miami health blog"},
		Type:        "blog",
	},
	"/contact": {
		Title:       "Contact us",
		Description: "Call, email or send us a message. Our Brickell office is open six days a week.",
		Keywords:    []string{"contact doctor Miami", "Brickell clinic phone"},
	},
	"/appointment": {
		Title:       "Request an appointment",
		Description: "Request a visit with a Brickell Family Medicine clinician. We confirm every request by phone.",
		Keywords:    []string{"book doctor Miami", "appointment request", "same day appointment Miami"},
	},
	"/insurance": {
		Title:       "Insurance and pricing",
		Description: "Insurance plans we accept and transparent self-pay prices.",
		Keywords:    []string{"doctor accepts Aetna Miami", "self-pay doctor Miami", "Medicare doctor Miami"},
	},
	"/telehealth": {
		Title:       "Telehealth visits",
		Description: "Secure video visits with your own clinician, in English or Spanish.",
		Keywords:    []string{"telehealth Miami", "online doctor Florida", "video visit"},
	},
	"/patient-portal": {
		Title:       "Patient portal",
		Description: "Our online patient portal is coming soon.",
		Keywords:    []string{"patient portal"},
		NoIndex:     true,
	},
	"/components": {
		Title:       "Component library",
		Description: "Buttons, cards, images and typography used across the site.",
		NoIndex:     true,
	},
	"/components/forms": {
		Title:       "Form components",
		Description: "Accessible text fields, selects, checkboxes, radios and text areas.",
		NoIndex:     true,
	},
	"/components/layout": {
		Title:       "Layout components",
		Description: "Container, grid, flex and section primitives.",
		NoIndex:     true,
	},
	"/form-example": {
		Title:       "Form example",
		Description: "A complete form built from the component library.",
		NoIndex:     true,
	},
}

// For returns the metadata declared for a static route.
func For(path string) (Meta, bool) {
	meta, ok := pages[normalisePath(path)]
	if !ok {
		return Meta{}, false
	}
	meta.Keywords = append([]string(nil), meta.Keywords...)
	return meta, true
}

// Paths lists the static routes with metadata.
func Paths() []string {
	out := make([]string, 0, len(pages))
	for path := range pages {
		out = append(out, path)
	}
	return out
}

// ForPost builds the metadata of a blog post.
func ForPost(post content.Post) Meta {
	return Meta{
		Title:       post.Title,
		Description: post.Summary,
		Keywords:    append([]string(nil), post.Tags...),
		Type:        "article",
		Image:       post.Image,
		ImageAlt:    post.ImageAlt,
	}
}

// ForService builds the metadata of a service page.
func ForService(service content.Service) Meta {
	return Meta{
		Title:       service.Name,
		Description: service.Summary,
		Keywords:    []string{service.Name + " Miami", strings.ToLower(service.Name)},
		Image:       service.Image,
		ImageAlt:    service.ImageAlt,
	}
}

// ForCategory builds the metadata of a blog category listing.
func ForCategory(category content.Category) Meta {
	return Meta{
		Title:       category.Name + " articles",
		Description: category.Description,
		Keywords:    []string{strings.ToLower(category.Name), "health blog"},
		Type:        "blog",
	}
}

// NotFound is the metadata of the 404 page.
func NotFound() Meta {
	return Meta{Title: "Page not found", Description: "The page you requested does not exist.", NoIndex: true}
}

// Resolve completes meta for a request: absolute canonical and image URLs,
// the content locale and the hreflang alternates of every supported locale.
func Resolve(meta Meta, baseURL, path, locale string, locales []string) Meta {
	path = normalisePath(path)
	if meta.Type == "" {
		meta.Type = "website"
	}
	meta.Locale = locale
	meta.Canonical = Absolute(baseURL, path)
	if meta.Image != "" {
		meta.Image = Absolute(baseURL, meta.Image)
	}
	meta.Alternates = nil
	for _, alt := range locales {
		meta.Alternates = append(meta.Alternates, Alternate{
			Hreflang: alt,
			Href:     Absolute(baseURL, path) + "?lang=" + url.QueryEscape(alt),
		})
	}
	if len(locales) > 0 {
		meta.Alternates = append(meta.Alternates, Alternate{Hreflang: "x-default", Href: meta.Canonical})
	}
	return meta
}

// Absolute joins baseURL and path. Absolute paths are returned unchanged.
func Absolute(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return base + normalisePath(path)
}

// StructuredData renders the schema.org description of the clinic as JSON-LD.
func StructuredData(practice content.Practice, baseURL string) (string, error) {
	hours := make([]string, 0, len(practice.Hours))
	for _, row := range practice.Hours {
		hours = append(hours, row.Days+" "+row.Open)
	}
	doc := map[string]any{
		"@context":  "https://schema.org",
		"@type":     "MedicalClinic",
		"name":      practice.Name,
		"url":       Absolute(baseURL, "/"),
		"telephone": practice.Phone,
		"email":     practice.Email,
		"address": map[string]string{
			"@type":           "PostalAddress",
			"streetAddress":   strings.TrimSpace(practice.Address.Street + " " + practice.Address.Suite),
			"addressLocality": practice.Address.City,
			"addressRegion":   practice.Address.State,
			"postalCode":      practice.Address.Zip,
			"addressCountry":  "US",
		},
		"openingHours":      hours,
		"availableLanguage": []string{"English", "Spanish"},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("seo: encode structured data: %w", err)
	}
	return string(raw), nil
}

func normalisePath(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}
