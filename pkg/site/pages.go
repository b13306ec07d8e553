package site

import (
	"context"
	"net/http"

	"github.com/goliatone/go-medsite/pkg/i18n"
	"github.com/goliatone/go-medsite/pkg/seo"
	"github.com/goliatone/go-medsite/pkg/ui"
)

// page is a routed template. path is empty for routes with wildcards; those
// are expanded from the content store by Routes.
type page struct {
	pattern string
	path    string
	form    string
	build   func(*pageRequest) (pageResult, error)
}

type pageRequest struct {
	ctx  context.Context
	req  *http.Request
	path string
	loc  i18n.Localizer
	ui   *composer
	// form is set on pages that embed a form.
	form *formOutcome
}

type pageResult struct {
	template string
	data     map[string]any
	meta     seo.Meta
}

func (s *Site) registry() []page {
	return []page{
		{pattern: "/{$}", path: "/", build: s.homePage},
		{pattern: "/about", path: "/about", build: s.aboutPage},
		{pattern: "/services", path: "/services", build: s.servicesPage},
		{pattern: "/services/{slug}", build: s.servicePage},
		{pattern: "/blog", path: "/blog", build: s.blogPage},
		{pattern: "/blog/category/{category}", build: s.categoryPage},
		{pattern: "/blog/{slug}", build: s.postPage},
		{pattern: "/contact", path: "/contact", form: "contact", build: s.contactPage},
		{pattern: "/appointment", path: "/appointment", form: "appointment", build: s.appointmentPage},
		{pattern: "/insurance", path: "/insurance", build: s.insurancePage},
		{pattern: "/telehealth", path: "/telehealth", build: s.telehealthPage},
		{pattern: "/patient-portal", path: "/patient-portal", build: s.portalPage},
		{pattern: "/components", path: "/components", build: s.componentsPage},
		{pattern: "/components/forms", path: "/components/forms", build: s.componentFormsPage},
		{pattern: "/components/layout", path: "/components/layout", build: s.componentLayoutPage},
		{pattern: "/form-example", path: "/form-example", form: "example", build: s.formExamplePage},
	}
}

// Routes lists every page path the site serves, including one entry per
// service, blog category and post.
func (s *Site) Routes() []string {
	var out []string
	for _, p := range s.pages {
		if p.path != "" {
			out = append(out, p.path)
		}
	}
	for _, service := range s.content.Services() {
		out = append(out, "/services/"+service.Slug)
	}
	for _, category := range s.content.Categories() {
		out = append(out, "/blog/category/"+category.Slug)
	}
	for _, post := range s.content.Posts() {
		out = append(out, "/blog/"+post.Slug)
	}
	return out
}

// NoIndex reports whether path asks search engines not to index it.
func (s *Site) NoIndex(path string) bool {
	meta, ok := seo.For(path)
	return ok && meta.NoIndex
}

func (s *Site) newPageRequest(r *http.Request) *pageRequest {
	ctx := ui.WithCollector(r.Context(), ui.NewCollector())
	return &pageRequest{
		ctx:  ctx,
		req:  r,
		path: r.URL.Path,
		loc:  s.localizer(ctx),
		ui:   newComposer(ctx, s.library),
	}
}

func (s *Site) pageHandler(p page) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pr := s.newPageRequest(r)
		status := http.StatusOK

		if p.form != "" {
			outcome, err := s.formForRequest(w, pr, p.form)
			if err != nil {
				s.renderError(w, r, err)
				return
			}
			pr.form = outcome
			status = outcome.status
		}

		result, err := p.build(pr)
		if err == nil {
			err = pr.ui.Err()
		}
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		s.writePage(w, pr, result, status)
	})
}

func staticMeta(path string) seo.Meta {
	if meta, ok := seo.For(path); ok {
		return meta
	}
	return seo.Meta{Title: seo.SiteName}
}
