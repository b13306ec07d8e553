package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

const (
	English = "en"
	Spanish = "es"
)

// Supported lists the site's locales; the first entry is the default.
var Supported = []string{English, Spanish}

// Negotiator picks a supported locale from explicit requests and
// Accept-Language headers.
type Negotiator struct {
	supported []string
	fallback  string
	matcher   language.Matcher
}

// NewNegotiator builds a negotiator over supported. An empty fallback or one
// outside supported falls back to the first supported locale.
func NewNegotiator(supported []string, fallback string) *Negotiator {
	clean := make([]string, 0, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, locale := range supported {
		locale = strings.ToLower(strings.TrimSpace(locale))
		if locale == "" {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		clean = append(clean, locale)
		tags = append(tags, tag)
	}
	if len(clean) == 0 {
		clean = []string{English}
		tags = []language.Tag{language.English}
	}

	n := &Negotiator{supported: clean, fallback: clean[0]}
	if normalized, ok := n.Normalize(fallback); ok {
		n.fallback = normalized
		// the matcher treats its first tag as the default
		for idx, locale := range clean {
			if locale == normalized && idx != 0 {
				tags[0], tags[idx] = tags[idx], tags[0]
				clean[0], clean[idx] = clean[idx], clean[0]
				break
			}
		}
	}
	n.matcher = language.NewMatcher(tags)
	return n
}

// Default returns the fallback locale.
func (n *Negotiator) Default() string {
	return n.fallback
}

// Supported returns the configured locales, default first.
func (n *Negotiator) Supported() []string {
	return append([]string(nil), n.supported...)
}

// Normalize reduces a tag such as "es-MX" or "EN_us" to a supported base
// locale.
func (n *Negotiator) Normalize(tag string) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(tag, "_", "-")))
	if tag == "" {
		return "", false
	}
	if idx := strings.IndexByte(tag, '-'); idx > 0 {
		tag = tag[:idx]
	}
	for _, locale := range n.supported {
		if locale == tag {
			return locale, true
		}
	}
	return "", false
}

// Negotiate matches an Accept-Language header against the supported locales.
func (n *Negotiator) Negotiate(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return n.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return n.fallback
	}
	_, idx, confidence := n.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(n.supported) {
		return n.fallback
	}
	return n.supported[idx]
}

type localeKey struct{}

// WithLocale returns a child context carrying locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFromContext returns the locale stored by WithLocale, or "".
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}

// LocaleOr returns the context locale or fallback when none is set.
func LocaleOr(ctx context.Context, fallback string) string {
	if locale := LocaleFromContext(ctx); locale != "" {
		return locale
	}
	return fallback
}
