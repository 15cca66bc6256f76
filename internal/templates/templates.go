// Package templates bundles the HTML views and static assets into the binary.
package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed views/*.html
var views embed.FS

//go:embed static
var static embed.FS

// Funcs are available in every view.
var Funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("02 January 2006")
	},
	"datetime": func(t time.Time) string {
		return t.Format(time.RFC3339)
	},
}

// Load parses all views. Each page is addressed by its file name, e.g. "home.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(views, "views/*.html")
}

// Static returns the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
