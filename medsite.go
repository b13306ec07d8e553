// Package medsite serves the marketing website of a Miami medical practice:
// content pages, appointment and contact forms, a bilingual interface and a
// static export for hosts without a Go runtime.
//
// Most callers only need New:
//
//	s, err := medsite.New(site.WithBaseURL("https://www.example.com"))
//	if err != nil {
//		return err
//	}
//	http.ListenAndServe(":8080", s.Handler())
package medsite

import (
	"io/fs"

	"github.com/goliatone/go-medsite/pkg/site"
)

// New builds the site with the embedded content, catalogs and templates.
func New(options ...site.Option) (*site.Site, error) {
	return site.New(options...)
}

// TemplatesFS exposes the page templates so callers can override or extend
// them.
func TemplatesFS() fs.FS {
	return site.TemplatesFS()
}

// AssetsFS exposes the stylesheet, script and images the pages reference
// under /assets/.
//
// Typical mount when embedding the pages in another server:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(medsite.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return site.StaticFS()
}
