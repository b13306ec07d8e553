package forms

import (
	"embed"
	"io/fs"
)

//go:embed templates/forms/*.tmpl
var templatesFS embed.FS

// TemplatesFS exposes the form templates, rooted so paths read
// "templates/forms/form.tmpl".
func TemplatesFS() fs.FS {
	return templatesFS
}
