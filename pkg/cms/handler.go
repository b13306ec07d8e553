package cms

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	rendertemplate "github.com/goliatone/go-medsite/pkg/render/template"
)

const (
	adminTemplate    = "templates/cms/admin.tmpl"
	identityTemplate = "templates/cms/identity.tmpl"
)

// Handler serves the editor loader page and its config.yml under AdminPath.
type Handler struct {
	renderer rendertemplate.TemplateRenderer
	config   Config
	siteName string
	logger   *zap.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

func WithSiteName(name string) HandlerOption {
	return func(h *Handler) {
		h.siteName = strings.TrimSpace(name)
	}
}

func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler builds the editor handler. The renderer must be able to load the
// templates from TemplatesFS.
func NewHandler(renderer rendertemplate.TemplateRenderer, config Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		renderer: renderer,
		config:   config,
		siteName: "Site",
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	switch strings.TrimPrefix(r.URL.Path, strings.TrimSuffix(AdminPath, "/")) {
	case "", "/", "/index.html":
		h.serveLoader(w)
	case "/config.yml":
		h.serveConfig(w)
	default:
		http.NotFound(w, r)
	}
}

// Loader renders the editor page.
func (h *Handler) Loader() (string, error) {
	return h.renderer.RenderTemplate(adminTemplate, map[string]any{
		"site_name":    h.siteName,
		"identity_url": IdentityWidgetURL,
		"editor_url":   EditorScriptURL,
	})
}

func (h *Handler) serveLoader(w http.ResponseWriter) {
	page, err := h.Loader()
	if err != nil {
		h.logger.Error("render cms loader", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Robots-Tag", "noindex")
	_, _ = w.Write([]byte(page))
}

func (h *Handler) serveConfig(w http.ResponseWriter) {
	out, err := h.config.YAML()
	if err != nil {
		h.logger.Error("encode cms config", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/yaml; charset=utf-8")
	_, _ = w.Write(out)
}

// IdentitySnippet renders the widget include for a public page, or "" when
// IncludeIdentity rules it out.
func IdentitySnippet(renderer rendertemplate.TemplateRenderer, enabled bool, path string) (string, error) {
	if !IncludeIdentity(enabled, path) {
		return "", nil
	}
	return renderer.RenderTemplate(identityTemplate, map[string]any{
		"identity_url": IdentityWidgetURL,
		"admin_path":   AdminPath,
	})
}
