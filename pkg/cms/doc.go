// Package cms wires the third-party content editor: the /admin/ loader page
// that boots Decap CMS, its generated config.yml, and the rule for when the
// identity widget is included on public pages.
//
// Content is edited in the repository's fixture files; nothing here stores or
// authenticates anything.
package cms
