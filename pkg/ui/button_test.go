package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-medsite/pkg/testsupport"
)

func newTestLibrary(t *testing.T, opts ...Option) *Library {
	t.Helper()
	lib, err := New(opts...)
	if err != nil {
		t.Fatalf("new library: %v", err)
	}
	return lib
}

func TestResolveButtonKind(t *testing.T) {
	cases := []struct {
		name  string
		props ButtonProps
		want  ButtonKind
	}{
		{name: "plain", props: ButtonProps{Label: "Go"}, want: Clickable},
		{name: "disabled without href", props: ButtonProps{Label: "Go", Disabled: true}, want: Clickable},
		{name: "link", props: ButtonProps{Label: "Go", Href: "/contact"}, want: Navigable},
		{name: "disabled link", props: ButtonProps{Label: "Go", Href: "/contact", Disabled: true}, want: Inert},
		{name: "loading link", props: ButtonProps{Label: "Go", Href: "/contact", Loading: true}, want: Inert},
		{name: "blank href", props: ButtonProps{Label: "Go", Href: "   "}, want: Clickable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveButtonKind(tc.props); got != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestButtonDisabledLinkNeverRendersAnchor(t *testing.T) {
	lib := newTestLibrary(t)

	out, err := lib.Button(context.Background(), ButtonProps{
		Label:    "Book now",
		Href:     "/appointment",
		Disabled: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := testsupport.MustParseHTML(t, out)
	if doc.Find("a").Length() != 0 {
		t.Fatalf("disabled link rendered an anchor: %s", out)
	}
	if strings.Contains(out, "href=") {
		t.Fatalf("disabled link leaked href: %s", out)
	}
	span := testsupport.MustFind(t, doc, `span[role="link"]`)
	if got := testsupport.MustAttr(t, span, "aria-disabled"); got != "true" {
		t.Fatalf("aria-disabled: %q", got)
	}
	if testsupport.Text(span) != "Book now" {
		t.Fatalf("label: %q", testsupport.Text(span))
	}
}

func TestButtonNavigableLink(t *testing.T) {
	lib := newTestLibrary(t)

	out, err := lib.Button(context.Background(), ButtonProps{
		Label:    "Patient portal",
		Href:     "https://portal.example.com",
		External: true,
		Variant:  ButtonOutline,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := testsupport.MustParseHTML(t, out)
	a := testsupport.MustFind(t, doc, "a")
	if got := testsupport.MustAttr(t, a, "href"); got != "https://portal.example.com" {
		t.Fatalf("href: %q", got)
	}
	if got := testsupport.MustAttr(t, a, "rel"); got != "noopener noreferrer" {
		t.Fatalf("rel: %q", got)
	}
	if !strings.Contains(testsupport.MustAttr(t, a, "class"), "min-h-[44px]") {
		t.Fatalf("missing touch target class")
	}
}

func TestButtonDisabledAndLoading(t *testing.T) {
	lib := newTestLibrary(t)

	out, err := lib.Button(context.Background(), ButtonProps{Label: "Send", Type: "submit", Disabled: true})
	if err != nil {
		t.Fatalf("render disabled: %v", err)
	}
	doc := testsupport.MustParseHTML(t, out)
	btn := testsupport.MustFind(t, doc, "button")
	if _, ok := btn.Attr("disabled"); !ok {
		t.Fatalf("expected disabled attribute: %s", out)
	}
	if got := testsupport.MustAttr(t, btn, "aria-disabled"); got != "true" {
		t.Fatalf("aria-disabled: %q", got)
	}
	if got := testsupport.MustAttr(t, btn, "type"); got != "submit" {
		t.Fatalf("type: %q", got)
	}

	out, err = lib.Button(context.Background(), ButtonProps{Label: "Send", Loading: true, LoadingLabel: "Sending..."})
	if err != nil {
		t.Fatalf("render loading: %v", err)
	}
	doc = testsupport.MustParseHTML(t, out)
	btn = testsupport.MustFind(t, doc, "button")
	if got := testsupport.MustAttr(t, btn, "aria-busy"); got != "true" {
		t.Fatalf("aria-busy: %q", got)
	}
	if btn.Find("svg[data-spinner]").Length() != 1 {
		t.Fatalf("expected spinner: %s", out)
	}
	if testsupport.Text(btn) != "Sending..." {
		t.Fatalf("loading label: %q", testsupport.Text(btn))
	}
}

func TestButtonRequiresAccessibleName(t *testing.T) {
	lib := newTestLibrary(t)
	if _, err := lib.Button(context.Background(), ButtonProps{}); err == nil {
		t.Fatalf("expected error for unlabelled button")
	}
}

func TestButtonUnknownTypeFallsBack(t *testing.T) {
	view := newButtonView(ButtonProps{Label: "x", Type: "explode"})
	if view.Type != "button" {
		t.Fatalf("type: %q", view.Type)
	}
}
