package views

import (
	"embed"
	"html/template"
)

//go:embed *.html
var FS embed.FS

// Load parses the embedded pages. Each template is named after its file.
func Load() (*template.Template, error) {
	return template.New("").ParseFS(FS, "*.html")
}
