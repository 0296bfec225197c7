package views

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in the source is omitted since goldmark is not configured as unsafe.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown converts an article body to HTML.
func Markdown(input string) template.HTML {
	if input == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(buf.String())
}
