package site

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/pkg/seo"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders sitemap.xml for every indexable route.
func (s *Site) Sitemap() ([]byte, error) {
	lastMod := make(map[string]string)
	for _, post := range s.content.Posts() {
		lastMod["/blog/"+post.Slug] = post.PublishedOn
	}

	set := urlSet{NS: sitemapNS}
	for _, path := range s.Routes() {
		if s.NoIndex(path) {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: seo.Absolute(s.opts.BaseURL, path), LastMod: lastMod[path]})
	}
	raw, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("site: encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), raw...), nil
}

func (s *Site) handleSitemap(w http.ResponseWriter, _ *http.Request) {
	raw, err := s.Sitemap()
	if err != nil {
		s.logger.Error("sitemap", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(raw)
}
