package site

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/pkg/content"
	"github.com/goliatone/go-medsite/pkg/forms"
	"github.com/goliatone/go-medsite/pkg/i18n"
	"github.com/goliatone/go-medsite/pkg/tokens"
	"github.com/goliatone/go-medsite/pkg/ui"
	"github.com/goliatone/go-medsite/pkg/vitals"
)

// Options configures a Site.
type Options struct {
	BaseURL       string
	ThemeVariant  string
	DefaultLocale string
	Content       *content.Store
	Translator    i18n.Translator
	Backend       forms.Backend
	ResetDelay    time.Duration
	// CSRF protects form posts. Nil disables the check.
	CSRF        *forms.CSRF
	Preferences i18n.PreferenceStore
	// IdentityEnabled includes the CMS identity widget on public pages.
	IdentityEnabled bool
	VitalsSink      vitals.Sink
	Images          ui.ImageResolver
	// Static renders pages for a host without this server. Forms carry no
	// API endpoint or CSRF token and are acknowledged in the browser.
	Static bool
	// TemplateDir overrides embedded templates with files from disk, mirroring
	// the embedded "templates/" tree. Overrides are re-read on every render.
	TemplateDir string
	Logger      *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		BaseURL:       "http://localhost:8080",
		ThemeVariant:  tokens.VariantDefault,
		DefaultLocale: i18n.English,
		ResetDelay:    forms.DefaultResetDelay,
		Logger:        zap.NewNop(),
	}
}

func WithBaseURL(url string) Option {
	return func(o *Options) {
		if url = strings.TrimRight(strings.TrimSpace(url), "/"); url != "" {
			o.BaseURL = url
		}
	}
}

func WithThemeVariant(variant string) Option {
	return func(o *Options) {
		o.ThemeVariant = strings.TrimSpace(variant)
	}
}

func WithDefaultLocale(locale string) Option {
	return func(o *Options) {
		o.DefaultLocale = strings.TrimSpace(locale)
	}
}

func WithContent(store *content.Store) Option {
	return func(o *Options) {
		o.Content = store
	}
}

func WithTranslator(t i18n.Translator) Option {
	return func(o *Options) {
		o.Translator = t
	}
}

// WithBackend sets where valid form submissions go. The default is the
// simulated backend.
func WithBackend(backend forms.Backend) Option {
	return func(o *Options) {
		o.Backend = backend
	}
}

func WithResetDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.ResetDelay = d
		}
	}
}

func WithCSRF(csrf *forms.CSRF) Option {
	return func(o *Options) {
		o.CSRF = csrf
	}
}

func WithPreferenceStore(store i18n.PreferenceStore) Option {
	return func(o *Options) {
		o.Preferences = store
	}
}

func WithIdentity(enabled bool) Option {
	return func(o *Options) {
		o.IdentityEnabled = enabled
	}
}

func WithVitalsSink(sink vitals.Sink) Option {
	return func(o *Options) {
		o.VitalsSink = sink
	}
}

func WithImageResolver(resolver ui.ImageResolver) Option {
	return func(o *Options) {
		o.Images = resolver
	}
}

func WithStatic(static bool) Option {
	return func(o *Options) {
		o.Static = static
	}
}

func WithTemplateDir(dir string) Option {
	return func(o *Options) {
		o.TemplateDir = strings.TrimSpace(dir)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
