// Package template defines the template rendering seam shared by the UI
// components and the site pages. Implementations live in sub-packages so the
// rest of the module depends only on the TemplateRenderer interface.
package template
