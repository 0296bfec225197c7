package services

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"friendsxi-web/pkg/models"
)

// ContentClient fetches entries of one content type from the content store.
type ContentClient interface {
	Entries(ctx context.Context, q models.Query) ([]models.Entry, error)
}

// Loader shapes content store entries into page data. Fetch failures are
// logged and degrade to empty collections so pages always render.
type Loader struct {
	client ContentClient
	log    logrus.FieldLogger
}

func NewLoader(client ContentClient, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{client: client, log: log}
}

// HomeData is the input of the home page.
type HomeData struct {
	Articles []models.Article `json:"articles"`
	Honors   []models.Honor   `json:"honors"`
}

// ArticleData is the input of a news detail page.
type ArticleData struct {
	Article models.Article `json:"article"`
	Found   bool           `json:"found"`
}

func (l *Loader) HomeData(ctx context.Context) HomeData {
	articles := l.articles(ctx, "")
	sortArticles(articles)

	honors := l.honors(ctx)
	slices.SortStableFunc(honors, func(a, b models.Honor) int {
		return newestFirst(a.Date, b.Date)
	})
	return HomeData{Articles: articles, Honors: honors}
}

func (l *Loader) NewsList(ctx context.Context) []models.Article {
	articles := l.articles(ctx, "-sys.createdAt")
	sortArticles(articles)
	return articles
}

// Article resolves a slug against every known article title.
func (l *Loader) Article(ctx context.Context, slug string) ArticleData {
	article, found := FindBySlug(l.articles(ctx, ""), slug)
	return ArticleData{Article: article, Found: found}
}

func (l *Loader) Squad(ctx context.Context) []models.Player {
	entries := l.fetch(ctx, models.Query{ContentType: models.TypePlayer, Order: "fields.name"})
	players := make([]models.Player, 0, len(entries))
	for _, e := range entries {
		players = append(players, models.PlayerFromEntry(e))
	}
	return players
}

func (l *Loader) articles(ctx context.Context, order string) []models.Article {
	entries := l.fetch(ctx, models.Query{ContentType: models.TypeArticle, Order: order})
	articles := make([]models.Article, 0, len(entries))
	for _, e := range entries {
		articles = append(articles, models.ArticleFromEntry(e, Slugify))
	}
	return articles
}

func (l *Loader) honors(ctx context.Context) []models.Honor {
	entries := l.fetch(ctx, models.Query{ContentType: models.TypeHonor})
	honors := make([]models.Honor, 0, len(entries))
	for _, e := range entries {
		honors = append(honors, models.HonorFromEntry(e))
	}
	return honors
}

func (l *Loader) fetch(ctx context.Context, q models.Query) []models.Entry {
	entries, err := l.client.Entries(ctx, q)
	if err != nil {
		l.log.WithError(err).WithField("content_type", q.ContentType).Error("fetching content failed, rendering empty")
		return nil
	}
	return entries
}

// sortArticles orders by the date field, falling back to the publish date,
// most recent first. Articles with neither keep their relative order at the end.
func sortArticles(articles []models.Article) {
	slices.SortStableFunc(articles, func(a, b models.Article) int {
		return newestFirst(a.SortDate(), b.SortDate())
	})
}

func newestFirst(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return b.Compare(a)
}
