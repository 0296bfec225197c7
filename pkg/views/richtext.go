package views

import (
	"html"
	"html/template"
	"net/url"
	"strings"

	"friendsxi-web/pkg/models"
)

var headingTags = map[string]string{
	models.NodeHeading1: "h1",
	models.NodeHeading2: "h2",
	models.NodeHeading3: "h3",
	models.NodeHeading4: "h4",
}

var blockTags = map[string]string{
	models.NodeParagraph: "p",
	models.NodeULList:    "ul",
	models.NodeOLList:    "ol",
	models.NodeListItem:  "li",
	models.NodeQuote:     "blockquote",
}

// RichText renders a rich text document. Every text value is escaped and
// only http(s), mailto and site-relative hyperlinks are emitted as links.
func RichText(doc *models.RichText) template.HTML {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	renderNode(&b, *doc)
	return template.HTML(b.String())
}

func renderNode(b *strings.Builder, n models.RichText) {
	switch n.NodeType {
	case models.NodeText:
		renderText(b, n)
	case models.NodeHR:
		b.WriteString("<hr>")
	case models.NodeEmbeddedAsset:
		renderAsset(b, n.Data.TargetAsset())
	case models.NodeHyperlink:
		if safeURL(n.Data.URI) {
			b.WriteString(`<a href="` + html.EscapeString(n.Data.URI) + `" rel="noopener">`)
			renderChildren(b, n)
			b.WriteString("</a>")
		} else {
			renderChildren(b, n)
		}
	default:
		tag, ok := headingTags[n.NodeType]
		if !ok {
			tag, ok = blockTags[n.NodeType]
		}
		if !ok {
			renderChildren(b, n)
			return
		}
		class := ""
		if _, heading := headingTags[n.NodeType]; heading {
			class = ` class="rt-heading"`
		}
		b.WriteString("<" + tag + class + ">")
		renderChildren(b, n)
		b.WriteString("</" + tag + ">")
	}
}

func renderChildren(b *strings.Builder, n models.RichText) {
	for _, child := range n.Content {
		renderNode(b, child)
	}
}

func renderText(b *strings.Builder, n models.RichText) {
	marks := []struct{ mark, tag string }{
		{models.MarkBold, "strong"},
		{models.MarkItalic, "em"},
		{models.MarkUnderline, "u"},
		{models.MarkCode, "code"},
	}
	var open []string
	for _, m := range marks {
		if n.HasMark(m.mark) {
			b.WriteString("<" + m.tag + ">")
			open = append(open, m.tag)
		}
	}
	text := html.EscapeString(n.Value)
	b.WriteString(strings.ReplaceAll(text, "\n", "<br>"))
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
}

func renderAsset(b *strings.Builder, a *models.Asset) {
	if a == nil || !a.IsImage() || !safeURL(a.URL) {
		return
	}
	alt := a.Description
	if alt == "" {
		alt = a.Title
	}
	b.WriteString(`<figure class="rt-asset"><img src="` + html.EscapeString(a.URL) + `" alt="` + html.EscapeString(alt) + `" loading="lazy">`)
	if a.Title != "" {
		b.WriteString("<figcaption>" + html.EscapeString(a.Title) + "</figcaption>")
	}
	b.WriteString("</figure>")
}

func safeURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return true
	case "":
		return strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//")
	}
	return false
}
