package cms

import (
	"embed"
	"io/fs"
)

//go:embed templates/cms/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the editor templates rooted at "templates/cms/".
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
