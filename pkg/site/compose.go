package site

import (
	"context"
	"strings"

	"github.com/goliatone/go-medsite/pkg/ui"
)

// composer renders components for one page and keeps the first error, so
// builders can assemble markup without checking every call.
type composer struct {
	ctx context.Context
	lib *ui.Library
	err error
}

func newComposer(ctx context.Context, lib *ui.Library) *composer {
	return &composer{ctx: ctx, lib: lib}
}

func (c *composer) Err() error {
	return c.err
}

func (c *composer) do(render func(context.Context) (string, error)) string {
	if c.err != nil {
		return ""
	}
	out, err := render(c.ctx)
	if err != nil {
		c.err = err
		return ""
	}
	return out
}

func (c *composer) Button(p ui.ButtonProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Button(ctx, p) })
}

func (c *composer) Card(p ui.CardProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Card(ctx, p) })
}

func (c *composer) Image(p ui.ImageProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Image(ctx, p) })
}

func (c *composer) Heading(p ui.HeadingProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Heading(ctx, p) })
}

func (c *composer) Text(p ui.TextProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Text(ctx, p) })
}

func (c *composer) Container(p ui.ContainerProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Container(ctx, p) })
}

func (c *composer) Grid(p ui.GridProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Grid(ctx, p) })
}

func (c *composer) Flex(p ui.FlexProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Flex(ctx, p) })
}

func (c *composer) Section(p ui.SectionProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Section(ctx, p) })
}

func (c *composer) TextField(p ui.TextFieldProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.TextField(ctx, p) })
}

func (c *composer) TextArea(p ui.TextAreaProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.TextArea(ctx, p) })
}

func (c *composer) Select(p ui.SelectProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Select(ctx, p) })
}

func (c *composer) Checkbox(p ui.CheckboxProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Checkbox(ctx, p) })
}

func (c *composer) Radio(p ui.RadioGroupProps) string {
	return c.do(func(ctx context.Context) (string, error) { return c.lib.Radio(ctx, p) })
}

func join(parts ...string) string {
	return strings.Join(parts, "\n")
}
