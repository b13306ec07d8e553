package i18n

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalogParity(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if diff := cmp.Diff([]string{English, Spanish}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(catalog.Keys(English), catalog.Keys(Spanish)); diff != "" {
		t.Fatalf("en and es catalogs define different keys (-en +es):\n%s", diff)
	}
}

func TestCatalogTranslate(t *testing.T) {
	catalog := NewCatalog(English)
	if err := catalog.Load(English, []byte("nav:\n  home: Home\nforms:\n  required: \"%s is required\"\nonly_en: yes-en\n")); err != nil {
		t.Fatalf("load en: %v", err)
	}
	if err := catalog.Load(Spanish, []byte("nav:\n  home: Inicio\nforms:\n  required: \"%s es obligatorio\"\n")); err != nil {
		t.Fatalf("load es: %v", err)
	}

	got, err := catalog.Translate("ES", "nav.home")
	if err != nil || got != "Inicio" {
		t.Fatalf("nav.home es: %q %v", got, err)
	}
	got, err = catalog.Translate(Spanish, "forms.required", "Email")
	if err != nil || got != "Email es obligatorio" {
		t.Fatalf("formatted: %q %v", got, err)
	}
	got, err = catalog.Translate(Spanish, "only_en")
	if err != nil || got != "yes-en" {
		t.Fatalf("fallback locale: %q %v", got, err)
	}
	if _, err := catalog.Translate(Spanish, "missing.key"); !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
	if err := catalog.Load(English, []byte("nav: [broken")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTranslateFallbacks(t *testing.T) {
	catalog := NewCatalog(English)
	catalog.Set(Spanish, "nav.home", "Inicio")

	if got := Translate(Spanish, "nav.home", "Home", catalog, nil); got != "Inicio" {
		t.Fatalf("translated: %q", got)
	}
	if got := Translate(Spanish, "nav.about", "About", catalog, nil); got != "About" {
		t.Fatalf("fallback text: %q", got)
	}
	if got := Translate(Spanish, "nav.about", "", catalog, nil); got != "nav.about" {
		t.Fatalf("key fallback: %q", got)
	}
	if got := Translate(Spanish, "nav.home", "Home", nil, MissingDefault); got != "Home" {
		t.Fatalf("missing translator: %q", got)
	}

	loc := FromContext(WithLocale(context.Background(), Spanish), catalog, English)
	if got := loc.Text("nav.home", "Home"); got != "Inicio" {
		t.Fatalf("localizer text: %q", got)
	}
	if got := loc.Format("forms.required", "%s is required", "Name"); got != "Name is required" {
		t.Fatalf("localizer format fallback: %q", got)
	}
}

func TestTemplateFuncs(t *testing.T) {
	catalog := NewCatalog(English)
	catalog.Set(Spanish, "nav.home", "Inicio")
	funcs := TemplateFuncs(catalog, TemplateConfig{})

	translate := funcs["translate"].(func(any, string, ...any) string)
	if got := translate(map[string]any{"locale": Spanish}, "nav.home"); got != "Inicio" {
		t.Fatalf("map locale: %q", got)
	}
	if got := translate(Spanish, "nav.missing", map[string]any{"default": "Fallback"}); got != "Fallback" {
		t.Fatalf("default param: %q", got)
	}
	if got := translate(Spanish, " "); got != "" {
		t.Fatalf("blank key: %q", got)
	}

	current := funcs["current_locale"].(func(any) string)
	if got := current(map[string]string{"locale": English}); got != English {
		t.Fatalf("current_locale: %q", got)
	}
}
