package i18n

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// QueryParam switches the language for the current and later requests.
	QueryParam = "lang"
	// LocaleCookie mirrors the preference for clients without a visitor id.
	LocaleCookie = "medsite_lang"
	// VisitorCookie identifies the visitor in the PreferenceStore.
	VisitorCookie = "medsite_vid"
)

// MiddlewareConfig configures Middleware.
type MiddlewareConfig struct {
	Negotiator *Negotiator
	Store      PreferenceStore
	Logger     *zap.Logger
	// CookieMaxAge defaults to one year.
	CookieMaxAge time.Duration
	// Secure marks the cookies Secure.
	Secure bool
}

// Middleware resolves the request locale and stores it on the context. The
// precedence is ?lang=, the stored preference, the locale cookie, and finally
// Accept-Language. An explicit ?lang= is persisted.
func Middleware(cfg MiddlewareConfig) func(http.Handler) http.Handler {
	negotiator := cfg.Negotiator
	if negotiator == nil {
		negotiator = NewNegotiator(Supported, English)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxAge := cfg.CookieMaxAge
	if maxAge <= 0 {
		maxAge = 365 * 24 * time.Hour
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			visitor := visitorID(r)
			if visitor == "" {
				visitor = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    visitor,
					Path:     "/",
					MaxAge:   int(maxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			locale := ""
			if requested, ok := negotiator.Normalize(r.URL.Query().Get(QueryParam)); ok {
				locale = requested
				if cfg.Store != nil {
					if err := cfg.Store.Set(ctx, visitor, locale); err != nil {
						logger.Warn("persist language preference", zap.String("locale", locale), zap.Error(err))
					}
				}
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleCookie,
					Value:    locale,
					Path:     "/",
					MaxAge:   int(maxAge.Seconds()),
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if locale == "" && cfg.Store != nil {
				stored, err := cfg.Store.Get(ctx, visitor)
				switch {
				case err == nil:
					locale, _ = negotiator.Normalize(stored)
				case !errors.Is(err, ErrNoPreference):
					logger.Warn("load language preference", zap.Error(err))
				}
			}

			if locale == "" {
				if cookie, err := r.Cookie(LocaleCookie); err == nil {
					locale, _ = negotiator.Normalize(cookie.Value)
				}
			}

			if locale == "" {
				locale = negotiator.Negotiate(r.Header.Get("Accept-Language"))
			}

			w.Header().Add("Vary", "Accept-Language, Cookie")
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(WithLocale(ctx, locale)))
		})
	}
}

func visitorID(r *http.Request) string {
	cookie, err := r.Cookie(VisitorCookie)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return ""
	}
	return id.String()
}
