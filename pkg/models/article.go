package models

import "time"

// Article is a news post.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Cover       *Asset    `json:"cover,omitempty"`
	Category    string    `json:"category,omitempty"`
	Date        time.Time `json:"date"`
	PublishDate time.Time `json:"publishDate"`
	ReadTime    int       `json:"readTime,omitempty"`
	Content     *RichText `json:"content,omitempty"`
	Body        string    `json:"body,omitempty"` // markdown, set by file sources
	Slug        string    `json:"slug"`
}

// SortDate is the date used to order articles most recent first.
func (a Article) SortDate() time.Time {
	if !a.Date.IsZero() {
		return a.Date
	}
	return a.PublishDate
}

// ArticleFromEntry decodes a blogs entry. slugify derives the slug from the
// title so links and lookups share one definition.
func ArticleFromEntry(e Entry, slugify func(string) string) Article {
	f := e.Fields
	category := f.Text("type")
	if category == "" {
		category = f.Text("category")
	}
	publish := f.Time("publishDate")
	if publish.IsZero() {
		publish = e.Sys.CreatedAt
	}
	title := f.Text("title")
	return Article{
		ID:          e.Sys.ID,
		Title:       title,
		Excerpt:     f.Text("excerpt"),
		Cover:       f.Asset("cover"),
		Category:    category,
		Date:        f.Time("date"),
		PublishDate: publish,
		ReadTime:    f.Int("readTime"),
		Content:     f.RichText("content"),
		Body:        f.Text("body"),
		Slug:        slugify(title),
	}
}
