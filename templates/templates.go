// Package templates embeds the HTML pages.
package templates

import (
	"embed"
	"html/template"
	"time"
)

//go:embed *.html
var FS embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Local().Format("2006-01-02 15:04") },
	"datep": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
}

// Parse loads every page. Each page executes "header" and "footer" from layout.html.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "*.html")
}
