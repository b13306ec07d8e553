package content

import (
	"strings"
	"time"
)

// Practice describes the clinic itself.
type Practice struct {
	Name      string  `json:"name" yaml:"name"`
	Tagline   string  `json:"tagline" yaml:"tagline"`
	Phone     string  `json:"phone" yaml:"phone"`
	Email     string  `json:"email" yaml:"email"`
	Address   Address `json:"address" yaml:"address"`
	Hours     []Hours `json:"hours" yaml:"hours"`
	PortalURL string  `json:"portal_url" yaml:"portal_url"`
	MapURL    string  `json:"map_url" yaml:"map_url"`
	Social    []Link  `json:"social,omitempty" yaml:"social,omitempty"`
}

// Address is a postal address.
type Address struct {
	Street string `json:"street" yaml:"street"`
	Suite  string `json:"suite,omitempty" yaml:"suite,omitempty"`
	City   string `json:"city" yaml:"city"`
	State  string `json:"state" yaml:"state"`
	Zip    string `json:"zip" yaml:"zip"`
}

// String formats the address on one line.
func (a Address) String() string {
	street := a.Street
	if a.Suite != "" {
		street += ", " + a.Suite
	}
	parts := []string{street, a.City, strings.TrimSpace(a.State + " " + a.Zip)}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, ", ")
}

// Hours is one row of the opening hours table.
type Hours struct {
	Days string `json:"days" yaml:"days"`
	Open string `json:"open" yaml:"open"`
}

// Link is an external link.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Category groups blog posts.
type Category struct {
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Post is a blog article. Body is markdown; HTML is the sanitised rendering
// produced at load time.
type Post struct {
	Slug           string    `json:"slug" yaml:"slug"`
	Title          string    `json:"title" yaml:"title"`
	Summary        string    `json:"summary" yaml:"summary"`
	Category       string    `json:"category" yaml:"category"`
	Author         string    `json:"author" yaml:"author"`
	PublishedOn    string    `json:"published" yaml:"published"`
	Published      time.Time `json:"-" yaml:"-"`
	ReadingMinutes int       `json:"reading_minutes" yaml:"reading_minutes"`
	Tags           []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Image          string    `json:"image,omitempty" yaml:"image,omitempty"`
	ImageAlt       string    `json:"image_alt,omitempty" yaml:"image_alt,omitempty"`
	Body           string    `json:"body" yaml:"body"`
	HTML           string    `json:"-" yaml:"-"`
}

// Service is a clinical service with its own detail page.
type Service struct {
	Slug       string   `json:"slug" yaml:"slug"`
	Name       string   `json:"name" yaml:"name"`
	Summary    string   `json:"summary" yaml:"summary"`
	Icon       string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Image      string   `json:"image,omitempty" yaml:"image,omitempty"`
	ImageAlt   string   `json:"image_alt,omitempty" yaml:"image_alt,omitempty"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Body       string   `json:"body" yaml:"body"`
	HTML       string   `json:"-" yaml:"-"`
}

// InsurancePlan is a carrier listed on the insurance page.
type InsurancePlan struct {
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Accepted bool   `json:"accepted" yaml:"accepted"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// PricingRow is a self-pay price.
type PricingRow struct {
	Service string `json:"service" yaml:"service"`
	SelfPay string `json:"self_pay" yaml:"self_pay"`
	Notes   string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// TelehealthFeature is a bullet on the telehealth page.
type TelehealthFeature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// TeamMember is a clinician or staff member on the about page.
type TeamMember struct {
	Slug      string   `json:"slug" yaml:"slug"`
	Name      string   `json:"name" yaml:"name"`
	Role      string   `json:"role" yaml:"role"`
	Bio       string   `json:"bio" yaml:"bio"`
	Image     string   `json:"image,omitempty" yaml:"image,omitempty"`
	ImageAlt  string   `json:"image_alt,omitempty" yaml:"image_alt,omitempty"`
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty"`
}
