package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/pkg/cms"
	"github.com/goliatone/go-medsite/pkg/content"
	"github.com/goliatone/go-medsite/pkg/forms"
	"github.com/goliatone/go-medsite/pkg/i18n"
	"github.com/goliatone/go-medsite/pkg/render/template/gotemplate"
	"github.com/goliatone/go-medsite/pkg/seo"
	"github.com/goliatone/go-medsite/pkg/tokens"
	"github.com/goliatone/go-medsite/pkg/ui"
	"github.com/goliatone/go-medsite/pkg/vitals"
)

// Site renders the practice website.
type Site struct {
	opts       Options
	templates  *gotemplate.Engine
	library    *ui.Library
	forms      *forms.Renderer
	content    *content.Store
	translator i18n.Translator
	negotiator *i18n.Negotiator
	selector   *tokens.Selector
	theme      *theme.RendererConfig
	backend    forms.Backend
	cms        *cms.Handler
	pages      []page
	logger     *zap.Logger
}

// New builds a Site. Without options it serves the embedded content in
// English with the simulated form backend.
func New(options ...Option) (*Site, error) {
	opts := defaultOptions()
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	logger := opts.Logger

	store := opts.Content
	if store == nil {
		loaded, err := content.Default()
		if err != nil {
			return nil, fmt.Errorf("site: load content: %w", err)
		}
		store = loaded
	}

	translator := opts.Translator
	if translator == nil {
		catalog, err := i18n.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("site: load catalogs: %w", err)
		}
		translator = catalog
	}
	negotiator := i18n.NewNegotiator(i18n.Supported, opts.DefaultLocale)
	opts.DefaultLocale = negotiator.Default()

	selector, err := tokens.NewSelector(tokens.Manifest(), opts.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("site: theme: %w", err)
	}
	selection, err := selector.Select("", "")
	if err != nil {
		return nil, fmt.Errorf("site: theme: %w", err)
	}
	themeConfig := tokens.RendererConfig(selection, tokens.DefaultPartials())

	engineOptions := []gotemplate.Option{
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithFS(ui.TemplatesFS()),
		gotemplate.WithFS(forms.TemplatesFS()),
		gotemplate.WithFS(cms.TemplatesFS()),
		gotemplate.WithTemplateFunc(i18n.TemplateFuncs(translator, i18n.TemplateConfig{})),
		gotemplate.WithGlobalData(map[string]any{"site_name": seo.SiteName}),
		gotemplate.WithLogger(logger),
	}
	if opts.TemplateDir != "" {
		engineOptions = append(engineOptions, gotemplate.WithBaseDir(opts.TemplateDir), gotemplate.WithReload(true))
	}
	engine, err := gotemplate.New(engineOptions...)
	if err != nil {
		return nil, fmt.Errorf("site: templates: %w", err)
	}

	images := opts.Images
	if images == nil {
		images = ui.ChainResolver{
			ui.FSResolver{FS: StaticFS(), Prefix: "/assets"},
			ui.NewHTTPResolver(nil, 2*time.Second),
		}
	}
	library, err := ui.New(
		ui.WithTemplateRenderer(engine),
		ui.WithPartials(themeConfig.Partials),
		ui.WithImageResolver(images),
		ui.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("site: components: %w", err)
	}

	formOptions := []forms.RendererOption{
		forms.WithLibrary(library),
		forms.WithTemplates(engine),
		forms.WithTranslator(translator, opts.DefaultLocale),
		forms.WithRendererLogger(logger),
	}
	if opts.Static {
		formOptions = append(formOptions, forms.WithAPIBase(""))
	}
	formRenderer, err := forms.NewRenderer(formOptions...)
	if err != nil {
		return nil, fmt.Errorf("site: forms: %w", err)
	}

	backend := opts.Backend
	if backend == nil {
		backend = forms.NewSimulatedBackend(forms.DefaultSubmitDelay)
	}

	s := &Site{
		opts:       opts,
		templates:  engine,
		library:    library,
		forms:      formRenderer,
		content:    store,
		translator: translator,
		negotiator: negotiator,
		selector:   selector,
		theme:      themeConfig,
		backend:    backend,
		cms: cms.NewHandler(engine, cms.BuildConfig(cms.Options{SiteURL: opts.BaseURL}, store),
			cms.WithSiteName(seo.SiteName),
			cms.WithLogger(logger),
		),
		logger: logger,
	}
	s.pages = s.registry()
	return s, nil
}

// Content returns the content store the site renders.
func (s *Site) Content() *content.Store {
	return s.content
}

// Handler returns the site's HTTP handler with its middleware applied.
func (s *Site) Handler() http.Handler {
	mux := http.NewServeMux()

	for _, p := range s.pages {
		mux.Handle("GET "+p.pattern, s.pageHandler(p))
		if p.form != "" {
			mux.Handle("POST "+p.pattern, s.pageHandler(p))
		}
	}
	mux.HandleFunc("POST /api/forms/{name}", s.handleFormAPI)
	mux.Handle(cms.AdminPath, s.cms)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(StaticFS())))
	mux.HandleFunc("GET /theme.css", s.handleTheme)
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /robots.txt", s.handleRobots)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if _, err := vitals.RegisterRoutes(mux, "/",
		vitals.WithSink(s.opts.VitalsSink),
		vitals.WithGuard(vitals.SameOriginGuard(hostOf(s.opts.BaseURL))),
		vitals.WithLogger(s.logger),
	); err != nil {
		s.logger.Error("register vitals route", zap.Error(err))
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, errNotFound)
	})

	return Chain(mux,
		Recover(s.logger),
		RequestLogger(s.logger),
		SecurityHeaders(),
		i18n.Middleware(i18n.MiddlewareConfig{
			Negotiator: s.negotiator,
			Store:      s.opts.Preferences,
			Logger:     s.logger,
			Secure:     strings.HasPrefix(s.opts.BaseURL, "https://"),
		}),
	)
}

func (s *Site) handleTheme(w http.ResponseWriter, r *http.Request) {
	selection, err := s.selector.Select("", r.URL.Query().Get("variant"))
	if err != nil {
		s.logger.Error("select theme", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	cfg := tokens.RendererConfig(selection, nil)
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(tokens.Stylesheet(cfg.CSSVars)))
}

func (s *Site) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nDisallow: %s\nSitemap: %s\n", cms.AdminPath, seo.Absolute(s.opts.BaseURL, "/sitemap.xml"))
}

func (s *Site) themeStylesheet() string {
	if s.theme.Variant == "" || s.theme.Variant == tokens.VariantDefault {
		return "/theme.css"
	}
	return "/theme.css?variant=" + url.QueryEscape(s.theme.Variant)
}

func (s *Site) localizer(ctx context.Context) i18n.Localizer {
	return i18n.FromContext(ctx, s.translator, s.opts.DefaultLocale)
}

func hostOf(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

// isClientGone reports whether err comes from the visitor leaving.
func isClientGone(err error) bool {
	return errors.Is(err, context.Canceled)
}
