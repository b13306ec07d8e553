package ui

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	rendertemplate "github.com/goliatone/go-medsite/pkg/render/template"
	"github.com/goliatone/go-medsite/pkg/render/template/gotemplate"
)

// Option configures a Library.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *Registry
	partials         map[string]string
	images           ImageResolver
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate component template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a template renderer, typically one shared with
// the page layer so overrides and filters stay in one place.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry replaces the default component registry with a copy of
// registry taken when the option is applied.
func WithRegistry(registry *Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry.Clone()
		}
	}
}

// WithPartials overrides template paths per partial key ("ui.button", ...),
// usually from a theme's renderer config.
func WithPartials(partials map[string]string) Option {
	return func(cfg *config) {
		cfg.partials = maps.Clone(partials)
	}
}

// WithImageResolver sets the resolver images use to pick their state.
func WithImageResolver(resolver ImageResolver) Option {
	return func(cfg *config) {
		cfg.images = resolver
	}
}

// WithLogger sets the logger used for render failures.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Library renders registered components to HTML.
type Library struct {
	templates rendertemplate.TemplateRenderer
	registry  *Registry
	partials  map[string]string
	images    ImageResolver
	logger    *zap.Logger
}

// New constructs a Library applying any provided options.
func New(options ...Option) (*Library, error) {
	cfg := config{templateFS: TemplatesFS(), logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithLogger(cfg.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("ui: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Library{
		templates: renderer,
		registry:  cfg.registry,
		partials:  cfg.partials,
		images:    cfg.images,
		logger:    cfg.logger,
	}, nil
}

// Registry exposes the component registry for asset lookups.
func (l *Library) Registry() *Registry {
	return l.registry
}

// Render renders the named component with props. When ctx carries a Collector
// the component name is recorded for asset aggregation.
func (l *Library) Render(ctx context.Context, name string, props any) (string, error) {
	if l == nil || l.registry == nil {
		return "", fmt.Errorf("ui: library is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	descriptor, ok := l.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("ui: component %q not registered", name)
	}

	data := ComponentData{
		Template:    l.templates,
		Partials:    l.partials,
		Images:      l.images,
		RenderChild: l.Render,
	}

	var buf bytes.Buffer
	if err := descriptor.Renderer(ctx, &buf, props, data); err != nil {
		l.logger.Warn("component render failed", zap.String("component", descriptor.Name), zap.Error(err))
		return "", fmt.Errorf("ui: render %q: %w", descriptor.Name, err)
	}

	if collector := CollectorFromContext(ctx); collector != nil {
		collector.Add(descriptor.Name)
	}
	return buf.String(), nil
}

func (l *Library) Button(ctx context.Context, props ButtonProps) (string, error) {
	return l.Render(ctx, NameButton, props)
}

func (l *Library) TextField(ctx context.Context, props TextFieldProps) (string, error) {
	return l.Render(ctx, NameTextField, props)
}

func (l *Library) TextArea(ctx context.Context, props TextAreaProps) (string, error) {
	return l.Render(ctx, NameTextArea, props)
}

func (l *Library) Select(ctx context.Context, props SelectProps) (string, error) {
	return l.Render(ctx, NameSelect, props)
}

func (l *Library) Checkbox(ctx context.Context, props CheckboxProps) (string, error) {
	return l.Render(ctx, NameCheckbox, props)
}

func (l *Library) Radio(ctx context.Context, props RadioGroupProps) (string, error) {
	return l.Render(ctx, NameRadio, props)
}

func (l *Library) Card(ctx context.Context, props CardProps) (string, error) {
	return l.Render(ctx, NameCard, props)
}

func (l *Library) Image(ctx context.Context, props ImageProps) (string, error) {
	return l.Render(ctx, NameImage, props)
}

func (l *Library) Container(ctx context.Context, props ContainerProps) (string, error) {
	return l.Render(ctx, NameContainer, props)
}

func (l *Library) Grid(ctx context.Context, props GridProps) (string, error) {
	return l.Render(ctx, NameGrid, props)
}

func (l *Library) Flex(ctx context.Context, props FlexProps) (string, error) {
	return l.Render(ctx, NameFlex, props)
}

func (l *Library) Section(ctx context.Context, props SectionProps) (string, error) {
	return l.Render(ctx, NameSection, props)
}

func (l *Library) Heading(ctx context.Context, props HeadingProps) (string, error) {
	return l.Render(ctx, NameHeading, props)
}

func (l *Library) Text(ctx context.Context, props TextProps) (string, error) {
	return l.Render(ctx, NameText, props)
}

// Collector records which components a request rendered so the page can emit
// only the assets it needs.
type Collector struct {
	mu    sync.Mutex
	names []string
	seen  map[string]struct{}
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]struct{})}
}

// Add records a component name once.
func (c *Collector) Add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = struct{}{}
	c.names = append(c.names, name)
}

// Names returns the recorded names in sorted order.
func (c *Collector) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := slices.Clone(c.names)
	slices.Sort(out)
	return out
}

type collectorKey struct{}

// WithCollector attaches c to ctx.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// CollectorFromContext returns the collector attached to ctx, if any.
func CollectorFromContext(ctx context.Context) *Collector {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}
