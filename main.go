package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"friendsxi-web/pkg/config"
	"friendsxi-web/pkg/content"
	"friendsxi-web/pkg/handlers"
	"friendsxi-web/pkg/models"
	"friendsxi-web/pkg/services"
	"friendsxi-web/pkg/views"
)

func main() {
	config.Init()

	flag.StringVar(&config.ListenAddr, "addr", config.ListenAddr, "listen address")
	flag.StringVar(&config.ContentSource, "source", config.ContentSource, "content source: contentful or files")
	flag.StringVar(&config.ContentDir, "content-dir", config.ContentDir, "content directory for the files source")
	flag.StringVar(&config.SiteConfig, "site-config", config.SiteConfig, "club details file (.yml, .toml or .json)")
	warm := flag.Bool("warm", true, "generate every page before serving")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if config.Debug {
		log.SetLevel(log.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := log.StandardLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	live, preview := contentClients(ctx)
	opts := handlers.Options{
		Live:             services.NewLoader(live, logger),
		Cache:            services.NewCache(cacheStore(ctx), logger),
		Site:             siteConfig(),
		Log:              logger,
		SessionSecret:    config.SessionSecret,
		PreviewSecret:    config.PreviewSecret,
		RevalidateSecret: config.RevalidateSecret,
	}
	if preview != nil {
		opts.Preview = services.NewLoader(preview, logger)
	}

	r, pages, err := handlers.NewRouter(opts)
	if err != nil {
		log.WithError(err).Fatal("building router")
	}
	if *warm {
		pages.Warm(ctx)
	}

	srv := &http.Server{
		Addr:              config.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(log.Fields{"addr": config.ListenAddr, "source": config.ContentSource}).Info("serving")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}

// contentClients returns the published content client and, when
// configured, the draft one.
func contentClients(ctx context.Context) (live, preview services.ContentClient) {
	switch config.ContentSource {
	case "files":
		return content.NewFiles(config.ContentDir), nil
	case "contentful":
	default:
		log.Warnf("unknown content source %q, using contentful", config.ContentSource)
	}
	if config.SpaceID == "" || config.AccessToken == "" {
		log.Warn("CONTENTFUL_SPACE_ID or CONTENTFUL_ACCESS_KEY not set, pages will render empty")
	}
	live = content.NewContentful(ctx, content.ContentfulOptions{
		Host:        config.DeliveryHost,
		SpaceID:     config.SpaceID,
		Environment: config.Environment,
		AccessToken: config.AccessToken,
	})
	if config.PreviewToken != "" {
		preview = content.NewContentful(ctx, content.ContentfulOptions{
			Host:        config.PreviewHost,
			SpaceID:     config.SpaceID,
			Environment: config.Environment,
			AccessToken: config.PreviewToken,
		})
	}
	return live, preview
}

func cacheStore(ctx context.Context) services.Store {
	if config.RedisURL == "" {
		return services.NewMemoryStore()
	}
	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		log.WithError(err).Warn("invalid REDIS_URL, using in-memory cache")
		return services.NewMemoryStore()
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable, cache reads will miss until it recovers")
	}
	return services.NewRedisStore(client, "friendsxi:page:", config.CacheMaxTTL, log.StandardLogger())
}

func siteConfig() models.SiteConfig {
	if config.SiteConfig != "" {
		site, err := services.LoadSiteConfig(config.SiteConfig)
		if err == nil {
			return site
		}
		log.WithError(err).Warn("site config unreadable, using built-in defaults")
	}
	site, err := services.ParseSiteConfig(views.DefaultSiteConfig, "yml")
	if err != nil {
		log.WithError(err).Fatal("built-in site config")
	}
	return site
}
