// Package ui renders the site's presentational components: buttons, form
// controls, cards, images, layout primitives and typography.
//
// Form controls and media render through pongo2 templates bundled in
// TemplatesFS so a theme can swap markup per partial key. Layout and typography
// are class-lookup functions over the design tokens and render directly.
// Every form control carries a visible label, aria-invalid and
// aria-describedby wiring for its error and hint, an error message with
// role="alert" and a 44px minimum touch target.
package ui
