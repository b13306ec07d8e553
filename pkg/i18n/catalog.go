package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var bundledCatalogs embed.FS

var (
	// ErrMissingTranslation reports a key absent from every candidate locale.
	ErrMissingTranslation = errors.New("i18n: missing translation")
	// ErrMissingTranslator is passed to MissingTranslationHandler when no
	// translator is configured.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
)

// Translator resolves a message key for a locale. Extra args are applied with
// fmt.Sprintf semantics.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (f TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return f(locale, key, args...)
}

// MissingTranslationHandler decides what to show when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// MissingDefault returns the "default" entry of a map argument when present,
// otherwise the key itself.
func MissingDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// Catalog holds flattened message tables per locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

// NewCatalog returns an empty catalog that falls back to fallback for keys a
// locale does not define.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{
		fallback: strings.ToLower(strings.TrimSpace(fallback)),
		messages: make(map[string]map[string]string),
	}
}

// DefaultCatalog loads the bundled en/es catalogs.
func DefaultCatalog() (*Catalog, error) {
	catalog := NewCatalog(English)
	if err := catalog.LoadFS(bundledCatalogs, "catalogs"); err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadFS reads every <locale>.yaml (or .yml) file in dir. Nested maps are
// flattened into dotted keys.
func (c *Catalog) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("i18n: read catalogs: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}
		if err := c.Load(strings.TrimSuffix(entry.Name(), ext), raw); err != nil {
			return err
		}
	}
	return nil
}

// Load merges a YAML document into the messages for locale.
func (c *Catalog) Load(locale string, raw []byte) error {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return fmt.Errorf("i18n: catalog locale is required")
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("i18n: parse %s catalog: %w", locale, err)
	}
	flat := make(map[string]string)
	flatten("", doc, flat)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages[locale] == nil {
		c.messages[locale] = make(map[string]string, len(flat))
	}
	for key, value := range flat {
		c.messages[locale][key] = value
	}
	return nil
}

// Set registers a single message.
func (c *Catalog) Set(locale, key, message string) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages[locale] == nil {
		c.messages[locale] = make(map[string]string)
	}
	c.messages[locale][key] = message
}

// Locales returns the loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Keys returns every key defined for locale in sorted order.
func (c *Catalog) Keys(locale string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table := c.messages[strings.ToLower(locale)]
	out := make([]string, 0, len(table))
	for key := range table {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Translate looks key up in locale, then in the fallback locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrMissingTranslation
	}
	locale = strings.ToLower(strings.TrimSpace(locale))

	c.mu.RLock()
	message, ok := c.messages[locale][key]
	if !ok && c.fallback != "" {
		message, ok = c.messages[c.fallback][key]
	}
	c.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
	}
	if len(args) > 0 && strings.Contains(message, "%") {
		return fmt.Sprintf(message, args...), nil
	}
	return message, nil
}

func flatten(prefix string, node any, dest map[string]string) {
	switch value := node.(type) {
	case map[string]any:
		for key, child := range value {
			flatten(joinKey(prefix, key), child, dest)
		}
	case nil:
	default:
		if prefix != "" {
			dest[prefix] = fmt.Sprint(value)
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
