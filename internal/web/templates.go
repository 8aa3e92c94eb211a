package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates
var templateFiles embed.FS

// pageTemplates lists the pages rendered inside layout.html.
var pageTemplates = []string{"page.html", "edit.html", "login.html", "admin.html"}

// ParseTemplates builds one isolated template set per page so that each page
// can define its own "title" and "content" blocks.
func ParseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		t, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return templates, nil
}
