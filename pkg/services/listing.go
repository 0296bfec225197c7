package services

import (
	"strings"

	"friendsxi-web/pkg/models"
)

const (
	NewsPageSize  = 10
	AllCategories = "All"
)

// ListState is the query state of the news list.
type ListState struct {
	SearchText string
	Category   string
	Page       int
}

// ListEvent is a user action on the news list.
type ListEvent interface {
	apply(l *ArticleList, s ListState) ListState
}

type (
	SearchChanged    struct{ Text string }
	CategorySelected struct{ Category string }
	PageSelected     struct{ Page int }
	NextPage         struct{}
	PrevPage         struct{}
)

func (e SearchChanged) apply(l *ArticleList, s ListState) ListState {
	return l.SetSearchText(s, e.Text)
}

func (e CategorySelected) apply(l *ArticleList, s ListState) ListState {
	return l.SetCategory(s, e.Category)
}

func (e PageSelected) apply(l *ArticleList, s ListState) ListState {
	return l.SetPage(s, e.Page)
}

func (NextPage) apply(l *ArticleList, s ListState) ListState { return l.SetPage(s, s.Page+1) }
func (PrevPage) apply(l *ArticleList, s ListState) ListState { return l.SetPage(s, s.Page-1) }

// ArticleList filters and pages an already loaded, already ordered set of
// articles. It never reorders them.
type ArticleList struct {
	items      []models.Article
	categories []string
	pageSize   int
}

func NewArticleList(items []models.Article, pageSize int) *ArticleList {
	if pageSize <= 0 {
		pageSize = NewsPageSize
	}
	categories := []string{AllCategories}
	seen := map[string]bool{}
	for _, a := range items {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		categories = append(categories, a.Category)
	}
	return &ArticleList{items: items, categories: categories, pageSize: pageSize}
}

// Categories returns "All" followed by the distinct categories in
// first-seen order.
func (l *ArticleList) Categories() []string {
	return l.categories
}

func (l *ArticleList) Len() int { return len(l.items) }

func (l *ArticleList) Initial() ListState {
	return ListState{Category: AllCategories, Page: 1}
}

func (l *ArticleList) Apply(s ListState, events ...ListEvent) ListState {
	for _, ev := range events {
		s = ev.apply(l, s)
	}
	return s
}

func (l *ArticleList) SetSearchText(s ListState, text string) ListState {
	s.SearchText = text
	s.Page = 1
	return s
}

// SetCategory ignores categories that are not in Categories().
func (l *ArticleList) SetCategory(s ListState, category string) ListState {
	if !l.hasCategory(category) {
		return s
	}
	s.Category = category
	s.Page = 1
	return s
}

func (l *ArticleList) SetPage(s ListState, page int) ListState {
	s.Page = max(1, min(page, l.PageCount(s)))
	return s
}

func (l *ArticleList) hasCategory(category string) bool {
	for _, c := range l.categories {
		if c == category {
			return true
		}
	}
	return false
}

// Visible returns the articles matching both the search text and the
// category, in load order.
func (l *ArticleList) Visible(s ListState) []models.Article {
	needle := strings.ToLower(s.SearchText)
	var out []models.Article
	for _, a := range l.items {
		matchesSearch := strings.Contains(strings.ToLower(a.Title), needle) ||
			(a.Excerpt != "" && strings.Contains(strings.ToLower(a.Excerpt), needle))
		matchesCategory := s.Category == AllCategories || s.Category == "" || a.Category == s.Category
		if matchesSearch && matchesCategory {
			out = append(out, a)
		}
	}
	return out
}

func (l *ArticleList) PageCount(s ListState) int {
	n := len(l.Visible(s))
	return (n + l.pageSize - 1) / l.pageSize
}

// PageItems returns the window of the current page. A page past the end
// yields an empty slice.
func (l *ArticleList) PageItems(s ListState) []models.Article {
	visible := l.Visible(s)
	start := (s.Page - 1) * l.pageSize
	if start < 0 || start >= len(visible) {
		return []models.Article{}
	}
	end := min(start+l.pageSize, len(visible))
	return visible[start:end]
}

// PageLink is one slot of the pager: a page number or an ellipsis.
type PageLink struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// PageLinks lists the first and last page and the pages next to the
// current one, with an ellipsis two pages away from it.
func (l *ArticleList) PageLinks(s ListState) []PageLink {
	total := l.PageCount(s)
	var links []PageLink
	for n := 1; n <= total; n++ {
		switch {
		case n == 1 || n == total || abs(n-s.Page) <= 1:
			links = append(links, PageLink{Number: n, Current: n == s.Page})
		case n == s.Page-2 || n == s.Page+2:
			links = append(links, PageLink{Number: n, Ellipsis: true})
		}
	}
	return links
}

func (l *ArticleList) HasPrev(s ListState) bool { return s.Page > 1 }
func (l *ArticleList) HasNext(s ListState) bool { return s.Page < l.PageCount(s) }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
