package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-medsite/pkg/tokens"
)

const (
	// SiteStylesheet and SiteScript are the shared bundles served from /assets.
	SiteStylesheet = "/assets/site.css"
	SiteScript     = "/assets/site.js"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	styles := []string{SiteStylesheet}
	runtime := []Script{{Src: SiteScript, Defer: true}}

	registry.MustRegister(NameButton, Descriptor{Renderer: buttonRenderer, Stylesheets: styles})
	registry.MustRegister(NameTextField, Descriptor{Renderer: textFieldRenderer, Stylesheets: styles, Scripts: runtime})
	registry.MustRegister(NameTextArea, Descriptor{Renderer: textAreaRenderer, Stylesheets: styles, Scripts: runtime})
	registry.MustRegister(NameSelect, Descriptor{Renderer: selectRenderer, Stylesheets: styles, Scripts: runtime})
	registry.MustRegister(NameCheckbox, Descriptor{Renderer: checkboxRenderer, Stylesheets: styles, Scripts: runtime})
	registry.MustRegister(NameRadio, Descriptor{Renderer: radioRenderer, Stylesheets: styles, Scripts: runtime})
	registry.MustRegister(NameCard, Descriptor{Renderer: cardRenderer, Stylesheets: styles})
	registry.MustRegister(NameImage, Descriptor{Renderer: imageRenderer, Stylesheets: styles, Scripts: runtime})
	registry.MustRegister(NameContainer, Descriptor{Renderer: containerRenderer, Stylesheets: styles})
	registry.MustRegister(NameGrid, Descriptor{Renderer: gridRenderer, Stylesheets: styles})
	registry.MustRegister(NameFlex, Descriptor{Renderer: flexRenderer, Stylesheets: styles})
	registry.MustRegister(NameSection, Descriptor{Renderer: sectionRenderer, Stylesheets: styles})
	registry.MustRegister(NameHeading, Descriptor{Renderer: headingRenderer, Stylesheets: styles})
	registry.MustRegister(NameText, Descriptor{Renderer: textRenderer, Stylesheets: styles})

	return registry
}

// renderPartial renders the template bound to partialKey, preferring a theme
// override over the bundled default.
func renderPartial(buf *bytes.Buffer, data ComponentData, partialKey string, payload map[string]any) error {
	templateName := tokens.DefaultPartials()[partialKey]
	if data.Partials != nil {
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			templateName = candidate
		}
	}
	if templateName == "" {
		return fmt.Errorf("ui: no template bound to %q", partialKey)
	}
	if data.Template == nil {
		return fmt.Errorf("ui: template renderer not configured for %q", templateName)
	}
	rendered, err := data.Template.RenderTemplate(templateName, payload)
	if err != nil {
		return fmt.Errorf("ui: render template %q: %w", templateName, err)
	}
	buf.WriteString(rendered)
	return nil
}
