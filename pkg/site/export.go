package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/pkg/cms"
)

// ExportOptions configures Export.
type ExportOptions struct {
	// Dir receives the exported files. It is created when missing.
	Dir string
	// Concurrency bounds the pages rendered at once. Defaults to 4.
	Concurrency int
	// CheckLinks verifies that every internal link of every page resolves
	// to an exported file.
	CheckLinks bool
}

// BrokenLink is an internal reference that does not resolve.
type BrokenLink struct {
	Page string `json:"page"`
	Href string `json:"href"`
}

// ExportReport summarises an export.
type ExportReport struct {
	Pages       []string     `json:"pages"`
	Files       int          `json:"files"`
	BrokenLinks []BrokenLink `json:"broken_links,omitempty"`
}

// ErrBrokenLinks is returned by Export when link checking finds references
// that do not resolve. The report lists them.
var ErrBrokenLinks = errors.New("site: broken internal links")

// Export renders every route, the 404 page, the CMS loader, theme variables,
// sitemap and robots.txt into opts.Dir and copies the static assets. Sites
// built for export should set WithStatic so forms do not depend on the
// server.
func (s *Site) Export(ctx context.Context, opts ExportOptions) (ExportReport, error) {
	var report ExportReport
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		return report, errors.New("site: export directory is required")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if !s.opts.Static {
		s.logger.Warn("exporting a site that is not configured for static hosting")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return report, fmt.Errorf("site: create export dir: %w", err)
	}

	handler := s.Handler()
	routes := s.Routes()
	pages := make(map[string][]byte, len(routes))
	var mu sync.Mutex
	var files int

	p := pool.New().WithMaxGoroutines(opts.Concurrency).WithContext(ctx).WithCancelOnError()
	for _, route := range routes {
		p.Go(func(ctx context.Context) error {
			body, err := fetch(ctx, handler, route, http.StatusOK)
			if err != nil {
				return err
			}
			if err := writeFile(dir, pageFile(route), body); err != nil {
				return err
			}
			mu.Lock()
			pages[route] = body
			files++
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return report, err
	}

	extras := []struct {
		route  string
		file   string
		status int
	}{
		{route: "/__not-found__", file: "404.html", status: http.StatusNotFound},
		{route: s.themeStylesheet(), file: "theme.css", status: http.StatusOK},
		{route: cms.AdminPath, file: "admin/index.html", status: http.StatusOK},
		{route: cms.AdminPath + "config.yml", file: "admin/config.yml", status: http.StatusOK},
		{route: "/sitemap.xml", file: "sitemap.xml", status: http.StatusOK},
		{route: "/robots.txt", file: "robots.txt", status: http.StatusOK},
	}
	for _, extra := range extras {
		body, err := fetch(ctx, handler, extra.route, extra.status)
		if err != nil {
			return report, err
		}
		if err := writeFile(dir, extra.file, body); err != nil {
			return report, err
		}
		files++
	}

	copied, err := copyAssets(dir)
	if err != nil {
		return report, err
	}
	files += copied

	report.Pages = routes
	report.Files = files
	s.logger.Info("site exported", zap.String("dir", dir), zap.Int("pages", len(routes)), zap.Int("files", files))

	if !opts.CheckLinks {
		return report, nil
	}
	for _, route := range routes {
		broken, err := brokenLinks(dir, route, pages[route])
		if err != nil {
			return report, err
		}
		report.BrokenLinks = append(report.BrokenLinks, broken...)
	}
	if len(report.BrokenLinks) > 0 {
		return report, fmt.Errorf("%w: %d found", ErrBrokenLinks, len(report.BrokenLinks))
	}
	return report, nil
}

func fetch(ctx context.Context, handler http.Handler, target string, want int) ([]byte, error) {
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != want {
		return nil, fmt.Errorf("site: export %s: status %d", target, rec.Code)
	}
	return rec.Body.Bytes(), nil
}

// pageFile maps a route onto its index.html.
func pageFile(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return "index.html"
	}
	return path.Join(route, "index.html")
}

func writeFile(dir, name string, data []byte) error {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("site: export %s: %w", name, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("site: export %s: %w", name, err)
	}
	return nil
}

func copyAssets(dir string) (int, error) {
	static := StaticFS()
	count := 0
	err := fs.WalkDir(static, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, name)
		if err != nil {
			return err
		}
		count++
		return writeFile(dir, path.Join("assets", name), data)
	})
	if err != nil {
		return count, fmt.Errorf("site: copy assets: %w", err)
	}
	return count, nil
}

var linkAttrs = []struct{ selector, attr string }{
	{"a[href]", "href"},
	{"link[href]", "href"},
	{"script[src]", "src"},
	{"img[src]", "src"},
	{"form[action]", "action"},
}

// brokenLinks parses a page and reports the same-site references that do not
// resolve to a file under dir.
func brokenLinks(dir, route string, body []byte) ([]BrokenLink, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("site: parse %s: %w", route, err)
	}
	var broken []BrokenLink
	for _, la := range linkAttrs {
		doc.Find(la.selector).Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr(la.attr)
			target, ok := internalPath(href)
			if !ok || resolves(dir, target) {
				return
			}
			link := BrokenLink{Page: route, Href: href}
			if !slices.Contains(broken, link) {
				broken = append(broken, link)
			}
		})
	}
	return broken, nil
}

// internalPath returns the path of a same-site reference. Fragments, external
// URLs and other schemes are skipped.
func internalPath(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	parsed, err := url.Parse(href)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return "", false
	}
	if parsed.Path == "" || !strings.HasPrefix(parsed.Path, "/") {
		return "", false
	}
	return parsed.Path, true
}

func resolves(dir, target string) bool {
	name := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(target, "/")))
	if info, err := os.Stat(name); err == nil {
		if !info.IsDir() {
			return true
		}
		name = filepath.Join(name, "index.html")
	} else {
		name = filepath.Join(name, "index.html")
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
