package template

import (
	"io"
)

// TemplateRenderer is the contract components and pages render through. Every
// render method returns the output and also writes it to any writers passed.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// TemplateChecker is implemented by renderers that can report whether a named
// template is available. Callers use it to fall back to bundled partials when
// a theme override is missing.
type TemplateChecker interface {
	HasTemplate(name string) bool
}
