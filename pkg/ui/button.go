package ui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-medsite/pkg/tokens"
)

// ButtonVariant selects the visual treatment of a button.
type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonOutline   ButtonVariant = "outline"
	ButtonGhost     ButtonVariant = "ghost"
	ButtonDanger    ButtonVariant = "danger"
	ButtonLink      ButtonVariant = "link"
)

// Size is shared by buttons and form controls.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// ButtonKind is the element a button resolves to.
type ButtonKind int

const (
	// Clickable renders a <button>.
	Clickable ButtonKind = iota
	// Navigable renders an <a href>.
	Navigable
	// Inert renders a non-interactive <span role="link" aria-disabled="true">.
	Inert
)

func (k ButtonKind) String() string {
	switch k {
	case Navigable:
		return "navigable"
	case Inert:
		return "inert"
	default:
		return "clickable"
	}
}

// ButtonProps configures a Button.
type ButtonProps struct {
	ID           string
	Label        string
	AriaLabel    string
	Variant      ButtonVariant
	Size         Size
	Href         string
	External     bool
	Type         string
	Name         string
	Value        string
	Disabled     bool
	Loading      bool
	LoadingLabel string
	FullWidth    bool
	Class        string
}

// ResolveButtonKind decides once which element a button renders as. A link is
// only navigable while it is neither disabled nor loading; otherwise it degrades
// to an inert element so it can never be followed.
func ResolveButtonKind(props ButtonProps) ButtonKind {
	if strings.TrimSpace(props.Href) == "" {
		return Clickable
	}
	if props.Disabled || props.Loading {
		return Inert
	}
	return Navigable
}

var buttonVariantClasses = map[ButtonVariant]string{
	ButtonPrimary:   "bg-[var(--color-primary)] text-[var(--color-primary-contrast)] hover:bg-[var(--color-primary-hover)]",
	ButtonSecondary: "bg-[var(--color-secondary)] text-white hover:bg-[var(--color-secondary-hover)]",
	ButtonOutline:   "border border-[var(--color-primary)] text-[var(--color-primary)] bg-transparent hover:bg-[var(--color-surface-muted)]",
	ButtonGhost:     "bg-transparent text-[var(--color-foreground)] hover:bg-[var(--color-surface-muted)]",
	ButtonDanger:    "bg-[var(--color-danger)] text-white hover:opacity-90",
	ButtonLink:      "bg-transparent text-[var(--color-primary)] underline-offset-4 hover:underline",
}

var buttonSizeClasses = map[Size]string{
	SizeSmall:  "px-3 text-sm",
	SizeMedium: "px-4 text-base",
	SizeLarge:  "px-6 text-lg",
}

// ButtonClasses returns the class list for a button of the given variant, size
// and kind.
func ButtonClasses(variant ButtonVariant, size Size, kind ButtonKind, disabled, fullWidth bool) string {
	variantClasses, ok := buttonVariantClasses[variant]
	if !ok {
		variantClasses = buttonVariantClasses[ButtonPrimary]
	}
	sizeClasses, ok := buttonSizeClasses[size]
	if !ok {
		sizeClasses = buttonSizeClasses[SizeMedium]
	}
	parts := []string{
		"inline-flex items-center justify-center gap-2 rounded-[var(--radius-md)] font-medium transition-colors",
		"min-h-[44px] min-w-[44px]",
		tokens.Focus.Classes,
		variantClasses,
		sizeClasses,
	}
	if fullWidth {
		parts = append(parts, "w-full")
	}
	if kind == Inert || disabled {
		parts = append(parts, "opacity-60 cursor-not-allowed pointer-events-none")
	}
	return classList(parts...)
}

type buttonView struct {
	Kind         string `json:"kind"`
	ID           string `json:"id,omitempty"`
	Label        string `json:"label"`
	AriaLabel    string `json:"aria_label,omitempty"`
	Class        string `json:"class"`
	Href         string `json:"href,omitempty"`
	Target       string `json:"target,omitempty"`
	Rel          string `json:"rel,omitempty"`
	Type         string `json:"type,omitempty"`
	Name         string `json:"name,omitempty"`
	Value        string `json:"value,omitempty"`
	Disabled     bool   `json:"disabled"`
	Loading      bool   `json:"loading"`
	LoadingLabel string `json:"loading_label,omitempty"`
}

func newButtonView(props ButtonProps) buttonView {
	kind := ResolveButtonKind(props)
	disabled := props.Disabled || props.Loading
	view := buttonView{
		Kind:      kind.String(),
		ID:        slug(props.ID),
		Label:     strings.TrimSpace(props.Label),
		AriaLabel: strings.TrimSpace(props.AriaLabel),
		Class:     classList(ButtonClasses(props.Variant, props.Size, kind, disabled, props.FullWidth), props.Class),
		Disabled:  disabled,
		Loading:   props.Loading,
	}
	if props.Loading {
		view.LoadingLabel = strings.TrimSpace(props.LoadingLabel)
		if view.LoadingLabel == "" {
			view.LoadingLabel = view.Label
		}
	}

	switch kind {
	case Navigable:
		view.Href = strings.TrimSpace(props.Href)
		if props.External {
			view.Target = "_blank"
			view.Rel = "noopener noreferrer"
		}
	case Clickable:
		view.Type = strings.ToLower(strings.TrimSpace(props.Type))
		switch view.Type {
		case "submit", "reset", "button":
		default:
			view.Type = "button"
		}
		view.Name = props.Name
		view.Value = props.Value
	}
	return view
}

func buttonRenderer(_ context.Context, buf *bytes.Buffer, props any, data ComponentData) error {
	p, ok := props.(ButtonProps)
	if !ok {
		return fmt.Errorf("ui: button expects ButtonProps, got %T", props)
	}
	if strings.TrimSpace(p.Label) == "" && strings.TrimSpace(p.AriaLabel) == "" {
		return fmt.Errorf("ui: button requires a label or aria label")
	}
	return renderPartial(buf, data, "ui.button", map[string]any{"button": newButtonView(p)})
}
