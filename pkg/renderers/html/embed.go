package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// PageTemplate is the template rendered for the contact page.
const PageTemplate = "templates/contact.tmpl"

// TemplatesFS exposes the embedded template bundle so callers can copy or
// extend it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
