package cms

import (
	"strings"
)

const (
	// AdminPath is where the editor is mounted.
	AdminPath = "/admin/"

	IdentityWidgetURL = "https://identity.netlify.com/v1/netlify-identity-widget.js"
	EditorScriptURL   = "https://unpkg.com/decap-cms@^3.0.0/dist/decap-cms.js"
)

// IsAdminPath reports whether path belongs to the editor.
func IsAdminPath(path string) bool {
	path = strings.TrimSpace(path)
	return path == "/admin" || strings.HasPrefix(path, AdminPath)
}

// IncludeIdentity reports whether a public page at path loads the identity
// widget. The widget only handles the login redirect back to the editor, so it
// is skipped when disabled and on the editor itself, which loads it directly.
func IncludeIdentity(enabled bool, path string) bool {
	return enabled && !IsAdminPath(path)
}
