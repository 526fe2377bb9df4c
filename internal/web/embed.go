// Package web provides the embedded page template and browser script.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

// PageTemplate is the name of the uploader page template.
const PageTemplate = "index.html"

// Templates parses the embedded HTML templates.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFiles, "templates/*.html")
}

// Static returns the embedded static assets with static/ as root.
func Static() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}
