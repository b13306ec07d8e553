package i18n

import (
	"context"
	"fmt"
	"strings"
)

// Translate resolves key for locale, returning fallback (or key) when the
// translator is missing or fails. onMissing, when set, has the final word.
func Translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Localizer binds a translator to one locale.
type Localizer struct {
	Translator Translator
	Locale     string
}

// FromContext returns a Localizer for the locale carried by ctx.
func FromContext(ctx context.Context, t Translator, fallbackLocale string) Localizer {
	return Localizer{Translator: t, Locale: LocaleOr(ctx, fallbackLocale)}
}

// Text translates key, returning fallback when the key is unknown.
func (l Localizer) Text(key, fallback string) string {
	return Translate(l.Locale, key, fallback, l.Translator, nil)
}

// Format translates key and applies args. Unknown keys format fallback.
func (l Localizer) Format(key, fallback string, args ...any) string {
	if l.Translator != nil {
		if msg, err := l.Translator.Translate(l.Locale, key, args...); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	if len(args) > 0 && strings.Contains(fallback, "%") {
		return fmt.Sprintf(fallback, args...)
	}
	return fallback
}
