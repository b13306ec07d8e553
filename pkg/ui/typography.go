package ui

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// HeadingProps configures a Heading. Level picks the element (h1..h6); Size
// overrides the level's default type scale.
type HeadingProps struct {
	Level int
	Text  string
	Size  string
	ID    string
	Class string
}

// TextProps configures a block of body copy.
type TextProps struct {
	Text   string
	As     string
	Size   string
	Tone   string
	Weight string
	Class  string
}

var headingSizes = map[int]string{
	1: "text-4xl md:text-5xl",
	2: "text-3xl md:text-4xl",
	3: "text-2xl md:text-3xl",
	4: "text-xl md:text-2xl",
	5: "text-lg",
	6: "text-base",
}

var toneClasses = map[string]string{
	"default": "text-[var(--color-foreground)]",
	"muted":   "text-[var(--color-muted)]",
	"primary": "text-[var(--color-primary)]",
	"danger":  "text-[var(--color-danger)]",
	"success": "text-[var(--color-success)]",
	"inverse": "text-white",
}

var textTags = map[string]struct{}{"p": {}, "span": {}, "small": {}, "div": {}, "strong": {}}

// HeadingClasses returns the class list for a heading level, optionally
// overriding its size with one of the token type sizes ("xl", "3xl", ...).
func HeadingClasses(level int, size string) string {
	sizeClass, ok := headingSizes[level]
	if !ok {
		sizeClass = headingSizes[2]
	}
	if size = strings.TrimSpace(size); size != "" {
		sizeClass = "text-" + size
	}
	return "font-serif font-bold leading-tight tracking-tight text-[var(--color-foreground)] " + sizeClass
}

// TextClasses returns the class list for body copy.
func TextClasses(size, tone, weight string) string {
	parts := []string{"leading-relaxed"}
	if size = strings.TrimSpace(size); size != "" {
		parts = append(parts, "text-"+size)
	} else {
		parts = append(parts, "text-base")
	}
	toneClass, ok := toneClasses[tone]
	if !ok {
		toneClass = toneClasses["default"]
	}
	parts = append(parts, toneClass)
	if weight = strings.TrimSpace(weight); weight != "" {
		parts = append(parts, "font-"+weight)
	}
	return strings.Join(parts, " ")
}

func headingRenderer(_ context.Context, buf *bytes.Buffer, props any, _ ComponentData) error {
	p, ok := props.(HeadingProps)
	if !ok {
		return fmt.Errorf("ui: heading expects HeadingProps, got %T", props)
	}
	if strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("ui: heading text is required")
	}
	level := p.Level
	if level < 1 || level > 6 {
		level = 2
	}
	tag := "h" + strconv.Itoa(level)
	writeOpenTag(buf, tag, slug(p.ID), classList(HeadingClasses(level, p.Size), p.Class))
	buf.WriteString(html.EscapeString(p.Text))
	writeCloseTag(buf, tag)
	return nil
}

func textRenderer(_ context.Context, buf *bytes.Buffer, props any, _ ComponentData) error {
	p, ok := props.(TextProps)
	if !ok {
		return fmt.Errorf("ui: text expects TextProps, got %T", props)
	}
	tag := strings.ToLower(strings.TrimSpace(p.As))
	if _, ok := textTags[tag]; !ok {
		tag = "p"
	}
	writeOpenTag(buf, tag, "", classList(TextClasses(p.Size, p.Tone, p.Weight), p.Class))
	buf.WriteString(html.EscapeString(p.Text))
	writeCloseTag(buf, tag)
	return nil
}
