package http

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

func mustTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
