// Package views holds the embedded page templates and static assets.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"friendsxi-web/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

//go:embed site.yml
var DefaultSiteConfig []byte

// Page is the data every template receives.
type Page struct {
	Site        models.SiteConfig
	Title       string
	Description string
	Image       string // og:image
	Path        string
	Preview     bool
	Year        int
	Data        any
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"upper":     strings.ToUpper,
		"richText":  RichText,
		"markdown":  Markdown,
		"longDate":  func(t time.Time) string { return formatDate(t, "January 02, 2006") },
		"monthYear": func(t time.Time) string { return formatDate(t, "January 2006") },
		"isoDate":   func(t time.Time) string { return formatDate(t, time.RFC3339) },
		"active": func(current, link string) bool {
			if link == "/" {
				return current == "/"
			}
			return strings.HasPrefix(current, link)
		},
	}
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

// Templates parses every page template together with the shared partials.
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return t, nil
}

// Static returns the static asset tree rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
