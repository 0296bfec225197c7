package services

import (
	"regexp"
	"strings"

	"friendsxi-web/pkg/models"
)

var (
	slugStrip    = regexp.MustCompile(`[^0-9A-Za-z_\s-]`)
	slugSeparate = regexp.MustCompile(`[\s_-]+`)
)

// Slugify turns a title into the URL segment used for article links.
// Only ASCII letters and digits survive; runs of whitespace, underscores and
// hyphens collapse into a single hyphen.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSeparate.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FindBySlug returns the first article, in the given order, whose title
// slugifies to slug. Colliding titles are not disambiguated.
func FindBySlug(articles []models.Article, slug string) (models.Article, bool) {
	for _, a := range articles {
		if Slugify(a.Title) == slug {
			return a, true
		}
	}
	return models.Article{}, false
}
