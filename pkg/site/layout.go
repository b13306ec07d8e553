package site

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/pkg/cms"
	"github.com/goliatone/go-medsite/pkg/content"
	"github.com/goliatone/go-medsite/pkg/forms"
	"github.com/goliatone/go-medsite/pkg/nav"
	"github.com/goliatone/go-medsite/pkg/seo"
	"github.com/goliatone/go-medsite/pkg/tokens"
	"github.com/goliatone/go-medsite/pkg/ui"
	"github.com/goliatone/go-medsite/pkg/vitals"
)

type scriptView struct {
	Src    string `json:"src,omitempty"`
	Type   string `json:"type,omitempty"`
	Inline string `json:"inline,omitempty"`
	Async  bool   `json:"async"`
	Defer  bool   `json:"defer"`
	Module bool   `json:"module"`
}

type layoutView struct {
	Lang           string       `json:"lang"`
	Title          string       `json:"title"`
	Meta           seo.Meta     `json:"meta"`
	Keywords       string       `json:"keywords,omitempty"`
	Stylesheets    []string     `json:"stylesheets"`
	Scripts        []scriptView `json:"scripts"`
	StructuredData string       `json:"structured_data,omitempty"`
	Identity       string       `json:"identity,omitempty"`
	SkipLink       string       `json:"skip_link"`
	Header         string       `json:"header"`
	Footer         string       `json:"footer"`
	Body           string       `json:"body"`
	VitalsEndpoint string       `json:"vitals_endpoint,omitempty"`
	ResetDelay     int64        `json:"reset_delay"`
	Static         bool         `json:"static"`
	ThemeVariant   string       `json:"theme_variant"`
	ScrollLocked   bool         `json:"scroll_locked"`
}

type headerView struct {
	Brand        string         `json:"brand"`
	Tagline      string         `json:"tagline"`
	NavLabel     string         `json:"nav_label"`
	OpenLabel    string         `json:"open_label"`
	CloseLabel   string         `json:"close_label"`
	Items        []nav.ItemView `json:"items"`
	Actions      string         `json:"actions"`
	Phone        string         `json:"phone"`
	PhoneHref    string         `json:"phone_href"`
	SwitchLabel  string         `json:"switch_label"`
	SwitchHref   string         `json:"switch_href"`
	SwitchLang   string         `json:"switch_lang"`
	LanguageName string         `json:"language_name"`
	MenuOpen     bool           `json:"menu_open"`
	MenuHref     string         `json:"menu_href"`
}

type footerView struct {
	Name      string            `json:"name"`
	Tagline   string            `json:"tagline"`
	Sections  []nav.SectionView `json:"sections"`
	Address   string            `json:"address"`
	MapURL    string            `json:"map_url,omitempty"`
	Phone     string            `json:"phone"`
	PhoneHref string            `json:"phone_href"`
	Email     string            `json:"email"`
	Hours     []content.Hours   `json:"hours"`
	HoursHead string            `json:"hours_head"`
	Social    []content.Link    `json:"social,omitempty"`
	Emergency string            `json:"emergency"`
	Rights    string            `json:"rights"`
}

// writePage renders result inside the layout. The body, header and footer are
// rendered first so every component they use is collected before the asset
// list is built.
func (s *Site) writePage(w http.ResponseWriter, pr *pageRequest, result pageResult, status int) {
	body, err := s.templates.RenderTemplate(result.template, map[string]any{
		"page":   result.data,
		"locale": pr.loc.Locale,
	})
	if err != nil {
		s.renderError(w, pr.req, fmt.Errorf("site: render %s: %w", result.template, err))
		return
	}

	out, err := s.renderLayout(pr, result.meta, body)
	if err != nil {
		s.renderError(w, pr.req, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if result.meta.NoIndex {
		w.Header().Set("X-Robots-Tag", "noindex")
	}
	w.WriteHeader(status)
	if _, err := io.WriteString(w, out); err != nil && !isClientGone(err) {
		s.logger.Debug("write page", zap.String("path", pr.path), zap.Error(err))
	}
}

func (s *Site) renderLayout(pr *pageRequest, meta seo.Meta, body string) (string, error) {
	loc := pr.loc
	meta = seo.Resolve(meta, s.opts.BaseURL, pr.path, loc.Locale, s.negotiator.Supported())

	state := headerState(pr.req)
	header, err := s.templates.RenderTemplate(s.theme.Partials["layout.header"], map[string]any{
		"header": s.header(pr, state),
		"locale": loc.Locale,
	})
	if err != nil {
		return "", fmt.Errorf("site: render header: %w", err)
	}
	if err := pr.ui.Err(); err != nil {
		return "", err
	}
	footer, err := s.templates.RenderTemplate(s.theme.Partials["layout.footer"], map[string]any{
		"footer": s.footer(pr),
		"locale": loc.Locale,
	})
	if err != nil {
		return "", fmt.Errorf("site: render footer: %w", err)
	}

	structured, err := seo.StructuredData(s.content.Practice(), s.opts.BaseURL)
	if err != nil {
		s.logger.Warn("structured data", zap.Error(err))
	}
	identity, err := cms.IdentitySnippet(s.templates, s.opts.IdentityEnabled, pr.path)
	if err != nil {
		s.logger.Warn("identity widget", zap.Error(err))
	}

	styles, scripts := s.assets(ui.CollectorFromContext(pr.ctx))
	view := layoutView{
		Lang:           loc.Locale,
		Title:          meta.FullTitle(),
		Meta:           meta,
		Keywords:       meta.KeywordList(),
		Stylesheets:    styles,
		Scripts:        scripts,
		StructuredData: structured,
		Identity:       identity,
		SkipLink:       loc.Text("site.skip_link", "Skip to main content"),
		ScrollLocked:   state.BodyScrollLocked(),
		Header:         header,
		Footer:         footer,
		Body:           body,
		ResetDelay:     s.opts.ResetDelay.Milliseconds(),
		Static:         s.opts.Static,
		ThemeVariant:   s.theme.Variant,
	}
	if !s.opts.Static {
		view.VitalsEndpoint = vitals.MountPath("/")
	}

	out, err := s.templates.RenderTemplate(s.theme.Partials["layout.base"], map[string]any{
		"layout": view,
		"locale": loc.Locale,
	})
	if err != nil {
		return "", fmt.Errorf("site: render layout: %w", err)
	}
	return out, nil
}

// assets lists the stylesheets and scripts of the page: theme variables, the
// site bundle and whatever the rendered components declared, without
// duplicates.
func (s *Site) assets(collector *ui.Collector) ([]string, []scriptView) {
	styles := []string{s.themeStylesheet()}
	if href := s.theme.AssetURL(tokens.AssetStylesheet); href != "" {
		styles = append(styles, href)
	}
	var scripts []scriptView
	if src := s.theme.AssetURL(tokens.AssetScript); src != "" {
		scripts = append(scripts, scriptView{Src: src, Defer: true})
	}

	var names []string
	if collector != nil {
		names = collector.Names()
	}
	extraStyles, extraScripts := s.library.Registry().Assets(names)
	for _, href := range extraStyles {
		if !slices.Contains(styles, href) {
			styles = append(styles, href)
		}
	}
	for _, script := range extraScripts {
		seen := script.Src != "" && slices.ContainsFunc(scripts, func(v scriptView) bool { return v.Src == script.Src })
		if seen {
			continue
		}
		scripts = append(scripts, scriptView{
			Src:    script.Src,
			Type:   script.Type,
			Inline: script.Inline,
			Async:  script.Async,
			Defer:  script.Defer,
			Module: script.Module,
		})
	}
	return styles, scripts
}

// headerState replays the toggles named in the query string, so the mobile
// menu (?menu=open) and services dropdown (?submenu=open) also open without
// JavaScript.
func headerState(req *http.Request) nav.State {
	var state nav.State
	if req == nil {
		return state
	}
	query := req.URL.Query()
	if query.Get("menu") == "open" {
		state = nav.Reduce(state, nav.ToggleMenu())
	}
	if query.Get("submenu") == "open" {
		state = nav.Reduce(state, nav.ToggleDropdown())
	}
	return state
}

func (s *Site) header(pr *pageRequest, state nav.State) headerView {
	loc := pr.loc
	practice := s.content.Practice()

	services := make([]nav.Item, 0, len(s.content.Services()))
	for _, service := range s.content.Services() {
		services = append(services, nav.Item{Label: service.Name, Href: "/services/" + service.Slug})
	}

	var actions []string
	for i, item := range nav.Actions() {
		variant := ui.ButtonOutline
		if i == len(nav.Actions())-1 {
			variant = ui.ButtonPrimary
		}
		actions = append(actions, pr.ui.Button(ui.ButtonProps{
			Label:   loc.Text(item.Key, item.Label),
			Href:    item.Href,
			Variant: variant,
			Size:    ui.SizeSmall,
		}))
	}

	other := s.otherLocale(loc.Locale)
	return headerView{
		Brand:        practice.Name,
		Tagline:      loc.Text("site.tagline", practice.Tagline),
		NavLabel:     loc.Text("nav.primary", "Primary"),
		OpenLabel:    loc.Text("nav.open_menu", "Open menu"),
		CloseLabel:   loc.Text("nav.close_menu", "Close menu"),
		Items:        nav.Build(nav.Primary(services...), pr.path, state, loc),
		Actions:      join(actions...),
		Phone:        practice.Phone,
		PhoneHref:    telHref(practice.Phone),
		SwitchLabel:  loc.Text("site.language", "Language"),
		SwitchHref:   pr.path + "?lang=" + url.QueryEscape(other),
		SwitchLang:   other,
		LanguageName: loc.Text("site.switch_language", other),
		MenuOpen:     state.MenuOpen,
		MenuHref:     menuHref(pr.path, state),
	}
}

// menuHref is the no-JS toggle target: the page with the menu in its other
// state.
func menuHref(path string, state nav.State) string {
	if state.MenuOpen {
		return path
	}
	return path + "?menu=open"
}

func (s *Site) footer(pr *pageRequest) footerView {
	loc := pr.loc
	practice := s.content.Practice()
	year := strconv.Itoa(time.Now().Year())
	return footerView{
		Name:      practice.Name,
		Tagline:   loc.Text("site.tagline", practice.Tagline),
		Sections:  nav.BuildFooter(nav.Footer(), pr.path, loc),
		Address:   practice.Address.String(),
		MapURL:    practice.MapURL,
		Phone:     practice.Phone,
		PhoneHref: telHref(practice.Phone),
		Email:     practice.Email,
		Hours:     practice.Hours,
		HoursHead: loc.Text("footer.hours_title", "Office hours"),
		Social:    practice.Social,
		Emergency: loc.Text("footer.emergency", "If this is a medical emergency, call 911."),
		Rights:    "© " + year + " " + practice.Name + ". " + loc.Text("footer.rights", "All rights reserved."),
	}
}

func (s *Site) otherLocale(current string) string {
	for _, locale := range s.negotiator.Supported() {
		if locale != current {
			return locale
		}
	}
	return current
}

func telHref(phone string) string {
	digits := forms.PhoneDigits(phone)
	if digits == "" {
		return ""
	}
	return "tel:+1" + digits
}

// renderError writes the error page for err. Rendering failures fall back to
// a plain text response.
func (s *Site) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if isClientGone(err) {
		return
	}
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}

	pr := s.newPageRequest(r)
	result := s.errorPage(pr, status)
	if cerr := pr.ui.Err(); cerr != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	body, rerr := s.templates.RenderTemplate(result.template, map[string]any{"page": result.data, "locale": pr.loc.Locale})
	if rerr != nil {
		s.logger.Error("render error page", zap.Error(rerr))
		http.Error(w, http.StatusText(status), status)
		return
	}
	out, rerr := s.renderLayout(pr, result.meta, body)
	if rerr != nil {
		s.logger.Error("render error layout", zap.Error(rerr))
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, out)
}
