package handlers

import (
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"friendsxi-web/pkg/models"
	"friendsxi-web/pkg/services"
	"friendsxi-web/pkg/views"
)

// Options wires the router. Preview may be nil, which leaves preview
// sessions on published content.
type Options struct {
	Live    *services.Loader
	Preview *services.Loader
	Cache   *services.Cache
	Site    models.SiteConfig
	Log     logrus.FieldLogger

	SessionSecret    string
	PreviewSecret    string
	RevalidateSecret string
}

func NewRouter(opts Options) (*gin.Engine, *Pages, error) {
	if opts.Live == nil {
		return nil, nil, fmt.Errorf("handlers: no content loader")
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	tmpl, err := views.Templates()
	if err != nil {
		return nil, nil, err
	}
	pages := NewPages(opts, tmpl)

	secret := []byte(opts.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, nil, fmt.Errorf("generating session key: %w", err)
		}
		opts.Log.Warn("SESSION_SECRET not set, preview sessions will not survive a restart")
	}
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(opts.Log))
	r.Use(sessions.Sessions("friendsxi", store))

	r.StaticFS("/static", http.FS(views.Static()))

	r.GET("/", pages.Home)
	r.GET("/news", pages.News)
	r.GET("/news/:slug", pages.Article)
	r.GET("/squad", pages.Squad)
	r.GET("/healthz", Healthz)

	api := r.Group("/api")
	{
		api.GET("/preview", RequireSecret(opts.PreviewSecret), EnablePreview)
		api.GET("/preview/exit", ExitPreview)
		api.POST("/revalidate", RequireSecret(opts.RevalidateSecret), pages.Revalidate)
	}

	r.NoRoute(pages.NotFound)
	return r, pages, nil
}
