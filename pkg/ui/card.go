package ui

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
)

// CardVariant selects the card surface.
type CardVariant string

const (
	CardElevated CardVariant = "elevated"
	CardOutlined CardVariant = "outlined"
	CardFlat     CardVariant = "flat"
)

var cardVariantClasses = map[CardVariant]string{
	CardElevated: "bg-[var(--color-background)] shadow-md hover:shadow-lg",
	CardOutlined: "bg-[var(--color-background)] border border-[var(--color-border)]",
	CardFlat:     "bg-[var(--color-surface)]",
}

// CardProps configures a Card. Body and Footer are trusted, pre-rendered
// markup; use Text for plain copy that must be escaped.
type CardProps struct {
	Title        string
	Eyebrow      string
	Text         string
	Body         string
	Footer       string
	Href         string
	Image        *ImageProps
	Variant      CardVariant
	HeadingLevel int
	Class        string
}

type cardView struct {
	Class        string `json:"class"`
	BodyClass    string `json:"body_class"`
	Title        string `json:"title,omitempty"`
	Eyebrow      string `json:"eyebrow,omitempty"`
	Body         string `json:"body,omitempty"`
	Footer       string `json:"footer,omitempty"`
	Href         string `json:"href,omitempty"`
	Media        string `json:"media,omitempty"`
	HeadingLevel int    `json:"heading_level"`
}

// CardClasses returns the outer class list for a card variant.
func CardClasses(variant CardVariant, linked bool) string {
	variantClass, ok := cardVariantClasses[variant]
	if !ok {
		variantClass = cardVariantClasses[CardElevated]
	}
	parts := []string{"flex flex-col overflow-hidden rounded-[var(--radius-lg)] transition-shadow", variantClass}
	if linked {
		parts = append(parts, "relative")
	}
	return classList(parts...)
}

func cardRenderer(ctx context.Context, buf *bytes.Buffer, props any, data ComponentData) error {
	p, ok := props.(CardProps)
	if !ok {
		return fmt.Errorf("ui: card expects CardProps, got %T", props)
	}
	href := strings.TrimSpace(p.Href)
	level := p.HeadingLevel
	if level < 2 || level > 6 {
		level = 3
	}
	body := p.Body
	if text := strings.TrimSpace(p.Text); text != "" {
		body = "<p>" + html.EscapeString(text) + "</p>" + body
	}
	view := cardView{
		Class:        classList(CardClasses(p.Variant, href != ""), p.Class),
		BodyClass:    "flex flex-1 flex-col gap-3 p-6",
		Title:        strings.TrimSpace(p.Title),
		Eyebrow:      strings.TrimSpace(p.Eyebrow),
		Body:         body,
		Footer:       p.Footer,
		Href:         href,
		HeadingLevel: level,
	}
	if p.Image != nil {
		if data.RenderChild == nil {
			return fmt.Errorf("ui: card image requires a child renderer")
		}
		media, err := data.RenderChild(ctx, NameImage, *p.Image)
		if err != nil {
			return fmt.Errorf("ui: card image: %w", err)
		}
		view.Media = media
	}
	return renderPartial(buf, data, "ui.card", map[string]any{"card": view})
}
