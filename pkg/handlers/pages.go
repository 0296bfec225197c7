package handlers

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"friendsxi-web/pkg/config"
	"friendsxi-web/pkg/models"
	"friendsxi-web/pkg/services"
	"friendsxi-web/pkg/views"
)

// Pages renders the public site.
type Pages struct {
	live    *services.Loader
	preview *services.Loader
	cache   *services.Cache
	site    models.SiteConfig
	tmpl    *template.Template
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewPages(opts Options, tmpl *template.Template) *Pages {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pages{
		live:    opts.Live,
		preview: opts.Preview,
		cache:   opts.Cache,
		site:    opts.Site,
		tmpl:    tmpl,
		log:     log,
		now:     time.Now,
	}
}

// source picks the loader for the request. Preview requests read drafts and
// skip the cache.
func (p *Pages) source(c *gin.Context) (*services.Loader, *services.Cache) {
	if p.preview != nil && previewEnabled(c) {
		return p.preview, nil
	}
	return p.live, p.cache
}

func (p *Pages) Home(c *gin.Context) {
	loader, cache := p.source(c)
	data := services.Cached(c.Request.Context(), cache, services.KeyForPath("/"), config.HomeRevalidate, loader.HomeData)
	p.render(c, http.StatusOK, "home.html", views.Page{Data: data})
}

type newsQuery struct {
	Q        string `form:"q" binding:"max=200"`
	Category string `form:"category" binding:"max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
}

type categoryLink struct {
	Name   string
	URL    string
	Active bool
}

type pagerLink struct {
	services.PageLink
	URL string
}

type newsView struct {
	Items      []models.Article
	Categories []categoryLink
	Pager      []pagerLink
	PageCount  int
	PrevURL    string
	NextURL    string
	Search     string
	Category   string
}

func (p *Pages) News(c *gin.Context) {
	loader, cache := p.source(c)
	articles := services.Cached(c.Request.Context(), cache, "news", config.NewsRevalidate, loader.NewsList)

	list := services.NewArticleList(articles, services.NewsPageSize)
	state := list.Initial()
	var q newsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		p.log.WithError(err).Debug("invalid news query, showing first page")
	} else {
		state = list.Apply(state, newsEvents(q)...)
	}

	view := newsView{
		Items:     list.PageItems(state),
		PageCount: list.PageCount(state),
		Search:    state.SearchText,
		Category:  state.Category,
	}
	for _, name := range list.Categories() {
		view.Categories = append(view.Categories, categoryLink{
			Name:   name,
			URL:    newsURL(list.SetCategory(state, name)),
			Active: name == state.Category,
		})
	}
	for _, link := range list.PageLinks(state) {
		view.Pager = append(view.Pager, pagerLink{PageLink: link, URL: newsURL(list.SetPage(state, link.Number))})
	}
	if list.HasPrev(state) {
		view.PrevURL = newsURL(list.Apply(state, services.PrevPage{}))
	}
	if list.HasNext(state) {
		view.NextURL = newsURL(list.Apply(state, services.NextPage{}))
	}
	p.render(c, http.StatusOK, "news.html", views.Page{Title: "News", Data: view})
}

// newsEvents replays a query string as list events. Search and category
// come first since both reset the page.
func newsEvents(q newsQuery) []services.ListEvent {
	var events []services.ListEvent
	if q.Q != "" {
		events = append(events, services.SearchChanged{Text: q.Q})
	}
	if q.Category != "" {
		events = append(events, services.CategorySelected{Category: q.Category})
	}
	if q.Page > 0 {
		events = append(events, services.PageSelected{Page: q.Page})
	}
	return events
}

func newsURL(s services.ListState) string {
	v := url.Values{}
	if s.SearchText != "" {
		v.Set("q", s.SearchText)
	}
	if s.Category != "" && s.Category != services.AllCategories {
		v.Set("category", s.Category)
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if len(v) == 0 {
		return "/news"
	}
	return "/news?" + v.Encode()
}

func (p *Pages) Article(c *gin.Context) {
	slug := c.Param("slug")
	loader, cache := p.source(c)
	articles := services.Cached(c.Request.Context(), cache, services.KeyForPath(c.Request.URL.Path), config.ArticleRevalidate, loader.NewsList)
	a, found := services.FindBySlug(articles, slug)
	if !found {
		p.NotFound(c)
		return
	}
	page := views.Page{Title: a.Title, Description: a.Excerpt, Data: a}
	if a.Cover != nil {
		page.Image = a.Cover.URL
	}
	p.render(c, http.StatusOK, "article.html", page)
}

type squadQuery struct {
	Open []string `form:"open" binding:"max=50,dive,max=64"`
}

type playerCard struct {
	Player    models.Player
	Expanded  bool
	ToggleURL string
}

type squadView struct {
	Cards []playerCard
	Stats services.SquadStats
}

func (p *Pages) Squad(c *gin.Context) {
	loader, cache := p.source(c)
	players := services.Cached(c.Request.Context(), cache, "squad", config.SquadRevalidate, loader.Squad)

	var q squadQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		p.log.WithError(err).Debug("invalid squad query, collapsing all cards")
		q.Open = nil
	}
	state := services.NewRosterState(q.Open...)

	view := squadView{Stats: services.Stats(players), Cards: make([]playerCard, 0, len(players))}
	for _, pl := range players {
		toggle := "/squad"
		if qs := state.ToggleQuery(pl.ID); qs != "" {
			toggle += "?" + qs
		}
		view.Cards = append(view.Cards, playerCard{
			Player:    pl,
			Expanded:  state.IsExpanded(pl.ID),
			ToggleURL: toggle + "#player-" + pl.ID,
		})
	}
	p.render(c, http.StatusOK, "squad.html", views.Page{Title: "Squad", Data: view})
}

func (p *Pages) NotFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, "404.html", views.Page{Title: "Page Not Found"})
}

// Warm generates every cached page input once, so the first visitors get a
// stored snapshot. Article pages share the news snapshot. It returns the
// number of snapshots generated.
func (p *Pages) Warm(ctx context.Context) int {
	if p.cache == nil {
		return 0
	}
	services.Cached(ctx, p.cache, services.KeyForPath("/"), config.HomeRevalidate, p.live.HomeData)
	services.Cached(ctx, p.cache, "news", config.NewsRevalidate, p.live.NewsList)
	services.Cached(ctx, p.cache, "squad", config.SquadRevalidate, p.live.Squad)
	p.log.WithField("pages", 3).Info("page cache warmed")
	return 3
}

// render executes into a buffer so a failing template never leaves a
// half-written page.
func (p *Pages) render(c *gin.Context, status int, name string, page views.Page) {
	page.Site = p.site
	page.Path = c.Request.URL.Path
	page.Preview = p.preview != nil && previewEnabled(c)
	page.Year = p.now().Year()

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, page); err != nil {
		p.log.WithError(err).WithField("template", name).Error("rendering page failed")
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
