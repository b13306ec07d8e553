package site

import (
	"embed"
	"io/fs"
)

//go:embed templates/layouts/*.tmpl templates/partials/*.tmpl templates/pages/*.tmpl
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

// TemplatesFS exposes the layout and page templates rooted at "templates/".
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// StaticFS exposes the files served under /assets.
func StaticFS() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
