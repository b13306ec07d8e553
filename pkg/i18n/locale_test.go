package i18n

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNegotiatorNormalize(t *testing.T) {
	n := NewNegotiator(Supported, English)
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"es":    {want: Spanish, ok: true},
		"es-MX": {want: Spanish, ok: true},
		"EN_us": {want: English, ok: true},
		"fr":    {},
		"":      {},
	}
	for input, tc := range cases {
		got, ok := n.Normalize(input)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Normalize(%q) = %q, %v; want %q, %v", input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNegotiatorAcceptLanguage(t *testing.T) {
	n := NewNegotiator(Supported, English)
	cases := map[string]string{
		"":                          English,
		"es-MX,es;q=0.9,en;q=0.8":   Spanish,
		"en-US,en;q=0.9":            English,
		"fr-FR,es;q=0.5":            Spanish,
		"de":                        English,
		"not a header;;;q=invalid!": English,
	}
	for header, want := range cases {
		if got := n.Negotiate(header); got != want {
			t.Fatalf("Negotiate(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestNegotiatorDefaultFirst(t *testing.T) {
	n := NewNegotiator(Supported, Spanish)
	if n.Default() != Spanish {
		t.Fatalf("default: %q", n.Default())
	}
	if diff := cmp.Diff([]string{Spanish, English}, n.Supported()); diff != "" {
		t.Fatalf("supported mismatch (-want +got):\n%s", diff)
	}
	if got := n.Negotiate("de"); got != Spanish {
		t.Fatalf("unmatched header should use default, got %q", got)
	}
}

func TestLocaleContext(t *testing.T) {
	ctx := context.Background()
	if got := LocaleFromContext(ctx); got != "" {
		t.Fatalf("empty context locale: %q", got)
	}
	if got := LocaleOr(ctx, English); got != English {
		t.Fatalf("fallback: %q", got)
	}
	ctx = WithLocale(ctx, Spanish)
	if got := LocaleOr(ctx, English); got != Spanish {
		t.Fatalf("context locale: %q", got)
	}
}
