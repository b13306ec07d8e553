package cms

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-medsite/pkg/content"
	"github.com/goliatone/go-medsite/pkg/render/template/gotemplate"
	"github.com/goliatone/go-medsite/pkg/testsupport"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	store, err := content.Default()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	return NewHandler(engine, BuildConfig(Options{}, store), WithSiteName("Brickell Family Medicine"))
}

func TestIncludeIdentity(t *testing.T) {
	cases := []struct {
		enabled bool
		path    string
		want    bool
	}{
		{enabled: true, path: "/", want: true},
		{enabled: true, path: "/blog/some-post", want: true},
		{enabled: true, path: "/administration", want: true},
		{enabled: true, path: "/admin", want: false},
		{enabled: true, path: "/admin/", want: false},
		{enabled: true, path: "/admin/config.yml", want: false},
		{enabled: false, path: "/", want: false},
	}
	for _, tc := range cases {
		if got := IncludeIdentity(tc.enabled, tc.path); got != tc.want {
			t.Errorf("IncludeIdentity(%v, %q) = %v, want %v", tc.enabled, tc.path, got, tc.want)
		}
	}
}

func TestLoaderPage(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	doc := testsupport.MustParseHTML(t, rec.Body.String())
	scripts := doc.Find("script[src]")
	var srcs []string
	scripts.Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		srcs = append(srcs, src)
	})
	if diff := cmp.Diff([]string{IdentityWidgetURL, EditorScriptURL}, srcs); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}
	if got := testsupport.MustAttr(t, doc.Find(`meta[name="robots"]`), "content"); got != "noindex, nofollow" {
		t.Fatalf("robots: %q", got)
	}
	if !strings.Contains(doc.Find("title").Text(), "Brickell Family Medicine") {
		t.Fatalf("title: %q", doc.Find("title").Text())
	}
}

func TestConfigYAML(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/config.yml", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cfg Config
	if err := yaml.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Backend.Name != "git-gateway" || cfg.Backend.Branch != "main" {
		t.Fatalf("backend: %+v", cfg.Backend)
	}
	if len(cfg.Collections) != 2 || cfg.Collections[0].Files[0].File != "pkg/content/fixtures/blog.yaml" {
		t.Fatalf("collections: %+v", cfg.Collections)
	}

	var category Field
	for _, field := range cfg.Collections[0].Files[0].Fields[0].Fields {
		if field.Name == "category" {
			category = field
		}
	}
	if diff := cmp.Diff([]string{"prevention", "family-health", "clinic-news"}, category.Options); diff != "" {
		t.Fatalf("category options mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerRoutes(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/secret", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestIdentitySnippet(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	out, err := IdentitySnippet(engine, true, "/contact")
	if err != nil {
		t.Fatalf("snippet: %v", err)
	}
	if !strings.Contains(out, IdentityWidgetURL) || !strings.Contains(out, `"/admin/"`) {
		t.Fatalf("unexpected snippet: %s", out)
	}

	out, err = IdentitySnippet(engine, true, "/admin/")
	if err != nil || out != "" {
		t.Fatalf("admin path should skip the widget, got %q %v", out, err)
	}
}
