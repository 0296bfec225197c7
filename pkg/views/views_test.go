package views

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendsxi-web/pkg/models"
	"friendsxi-web/pkg/services"
)

func TestRichText(t *testing.T) {
	doc := `{
		"nodeType": "document",
		"content": [
			{"nodeType": "heading-2", "content": [{"nodeType": "text", "value": "Match <report>"}]},
			{"nodeType": "paragraph", "content": [
				{"nodeType": "text", "value": "Won by ", "marks": []},
				{"nodeType": "text", "value": "5 wickets", "marks": [{"type": "bold"}, {"type": "italic"}]},
				{"nodeType": "hyperlink", "data": {"uri": "https://example.com/card"}, "content": [{"nodeType": "text", "value": "scorecard"}]},
				{"nodeType": "hyperlink", "data": {"uri": "javascript:alert(1)"}, "content": [{"nodeType": "text", "value": "bad"}]}
			]},
			{"nodeType": "unordered-list", "content": [
				{"nodeType": "list-item", "content": [{"nodeType": "paragraph", "content": [{"nodeType": "text", "value": "one"}]}]}
			]},
			{"nodeType": "hr"},
			{"nodeType": "embedded-asset-block", "data": {"target": {"fields": {"title": "Team", "file": {"url": "//images.example.com/team.jpg", "contentType": "image/jpeg"}}}}}
		]
	}`
	var rt models.RichText
	require.NoError(t, json.Unmarshal([]byte(doc), &rt))

	out := string(RichText(&rt))
	assert.Contains(t, out, `<h2 class="rt-heading">Match &lt;report&gt;</h2>`)
	assert.Contains(t, out, "<strong><em>5 wickets</em></strong>")
	assert.Contains(t, out, `<a href="https://example.com/card" rel="noopener">scorecard</a>`)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "bad")
	assert.Contains(t, out, "<ul><li><p>one</p></li></ul>")
	assert.Contains(t, out, "<hr>")
	assert.Contains(t, out, `<img src="https://images.example.com/team.jpg" alt="Team" loading="lazy">`)
	assert.Contains(t, out, "<figcaption>Team</figcaption>")
}

func TestRichTextNil(t *testing.T) {
	assert.Empty(t, RichText(nil))
}

func TestMarkdown(t *testing.T) {
	out := string(Markdown("# Season opener\n\nA **big** win.\n\n<script>alert(1)</script>\n"))
	assert.Contains(t, out, "<h1>Season opener</h1>")
	assert.Contains(t, out, "<strong>big</strong>")
	assert.NotContains(t, out, "<script>")
	assert.Empty(t, Markdown(""))
}

func TestDefaultSiteConfig(t *testing.T) {
	site, err := services.ParseSiteConfig(DefaultSiteConfig, "yml")
	require.NoError(t, err)
	assert.Equal(t, "Friends XI e.V.", site.Name)
	assert.Equal(t, "2012", site.Founded)
	assert.NotEmpty(t, site.Nav)
	assert.Len(t, site.Social, 2)
}

func TestStaticAssets(t *testing.T) {
	_, err := fs.Stat(Static(), "site.css")
	assert.NoError(t, err)
}

func TestTemplatesRender(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	site, err := services.ParseSiteConfig(DefaultSiteConfig, "yml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "404.html", Page{Site: site, Title: "Not Found", Path: "/missing", Year: 2024}))
	out := buf.String()
	assert.Contains(t, out, "Bowled Out!")
	assert.Contains(t, out, "<title>Not Found | Friends XI e.V.</title>")
	assert.Contains(t, out, "https://www.facebook.com/FriendsXIbochum/")

	buf.Reset()
	article := models.Article{
		Title:    "Rain Delay",
		Slug:     "rain-delay",
		Date:     time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
		ReadTime: 4,
		Body:     "Play **abandoned**.",
	}
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "article.html", Page{Site: site, Title: article.Title, Data: article}))
	out = buf.String()
	assert.Contains(t, out, "June 02, 2024")
	assert.Contains(t, out, "4 min read")
	assert.Contains(t, out, "<strong>abandoned</strong>")
}

func TestActive(t *testing.T) {
	active := funcs()["active"].(func(string, string) bool)
	assert.True(t, active("/", "/"))
	assert.False(t, active("/news", "/"))
	assert.True(t, active("/news/rain-delay", "/news"))
}

func TestSquadCardFallsBackToInitial(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	type card struct {
		Player    models.Player
		Expanded  bool
		ToggleURL string
	}
	data := struct {
		Cards []card
		Stats services.SquadStats
	}{
		Cards: []card{
			{Player: models.Player{ID: "p1", Name: "Asha", Picture: &models.Asset{URL: "https://x/cv.pdf", ContentType: "application/pdf"}}},
			{Player: models.Player{ID: "p2", Name: "Ben", Picture: &models.Asset{URL: "https://x/ben.jpg", ContentType: "image/jpeg"}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "squad.html", Page{Site: models.SiteConfig{Name: "Friends XI e.V."}, Data: data}))
	out := buf.String()
	assert.Contains(t, out, `<span class="initial">A</span>`)
	assert.NotContains(t, out, "cv.pdf")
	assert.Contains(t, out, `<img src="https://x/ben.jpg"`)
	assert.NotContains(t, out, `<span class="initial">B</span>`)
}
