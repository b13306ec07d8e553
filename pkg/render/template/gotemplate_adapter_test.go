package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-medsite/pkg/render/template/gotemplate"
	"github.com/goliatone/go-medsite/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	golden := filepath.Join("testdata", "hello.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, result); diff != "" {
		t.Fatalf("render template mismatch result (-want +got):\n%s", diff)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	golden := filepath.Join("testdata", "use-global.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, result); diff != "" {
		t.Fatalf("render template mismatch result (-want +got):\n%s", diff)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	golden := filepath.Join("testdata", "use-filter.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, result); diff != "" {
		t.Fatalf("render template mismatch result (-want +got):\n%s", diff)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_BuiltinFilters(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.RenderTemplate("use-builtins", map[string]any{
		"base":  "rounded  px-4 rounded",
		"extra": "text-sm",
		"ids":   []string{"email-error", "", "email-hint"},
		"token": "color-primary",
		"body":  "<b>bold</b>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := testsupport.MustParseHTML(t, out)
	p := testsupport.MustFind(t, doc, "p")
	if got := testsupport.MustAttr(t, p, "class"); got != "rounded px-4 text-sm" {
		t.Fatalf("classes filter: %q", got)
	}
	if got := testsupport.MustAttr(t, p, "aria-describedby"); got != "email-error email-hint" {
		t.Fatalf("idrefs filter: %q", got)
	}
	if got := testsupport.MustAttr(t, p, "style"); got != "color: var(--color-primary)" {
		t.Fatalf("cssvar filter: %q", got)
	}
	if strings.Contains(out, "<b>") {
		t.Fatalf("expected autoescaped body, got %s", out)
	}
}

func TestGoTemplateEngine_RenderDispatchAndHasTemplate(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.Render("{{ greeting }}, {{ name }}", map[string]any{"greeting": "Hola", "name": "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "Hola, Ada" {
		t.Fatalf("unexpected inline render: %q", out)
	}

	if !engine.HasTemplate("hello") {
		t.Fatalf("expected hello template to exist")
	}
	if engine.HasTemplate("missing") {
		t.Fatalf("missing template reported as present")
	}
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error rendering missing template")
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestJoinClasses(t *testing.T) {
	got := gotemplate.JoinClasses("a b", "", "b  c", "a")
	if got != "a b c" {
		t.Fatalf("JoinClasses: %q", got)
	}
}

func TestGoTemplateEngine_BaseDirOverridesFallThrough(t *testing.T) {
	embedded := fstest.MapFS{
		"templates/page.tmpl":    {Data: []byte(`<p>{% include "templates/part.tmpl" %}</p>`)},
		"templates/part.tmpl":    {Data: []byte(`embedded part`)},
		"templates/sibling.tmpl": {Data: []byte(`[{% include "templates/part.tmpl" %}]`)},
	}
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, "templates", name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("page.tmpl", `<div>{% include "templates/part.tmpl" %}</div>`)

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(embedded), gotemplate.WithReload(true))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("templates/page", nil)
	if err != nil {
		t.Fatalf("render overridden page: %v", err)
	}
	if got != "<div>embedded part</div>" {
		t.Fatalf("overridden page should include the embedded part, got %q", got)
	}

	write("part.tmpl", `disk part`)
	got, err = engine.RenderTemplate("templates/sibling", nil)
	if err != nil {
		t.Fatalf("render embedded page: %v", err)
	}
	if got != "[disk part]" {
		t.Fatalf("embedded page should include the overriding part, got %q", got)
	}
}

func TestGoTemplateEngine_BaseDirMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := gotemplate.New(gotemplate.WithBaseDir(missing)); err == nil {
		t.Fatalf("expected error for missing base dir")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
