package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	ListenAddr = ":8080"
	Debug      = false

	// Content source settings
	ContentSource = "contentful" // contentful or files
	ContentDir    = "./content"
	SiteConfig    = ""

	// Contentful settings
	SpaceID      = ""
	AccessToken  = ""
	PreviewToken = ""
	Environment  = "master"
	DeliveryHost = "https://cdn.contentful.com"
	PreviewHost  = "https://preview.contentful.com"

	// Cache settings
	RedisURL    = ""
	CacheMaxTTL = 24 * time.Hour

	// Secrets guarding the preview and revalidation endpoints
	SessionSecret    = ""
	PreviewSecret    = ""
	RevalidateSecret = ""
)

// Revalidation windows per page. Content older than the window is
// regenerated on the next request.
const (
	HomeRevalidate    = 1 * time.Second
	NewsRevalidate    = 300 * time.Second
	ArticleRevalidate = 300 * time.Second
	SquadRevalidate   = 300 * time.Second
)

func Init() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found or error loading it.")
	}
	Load(os.Getenv)
}

// Load reads settings through getenv. Missing secrets stay empty so the
// content client fails the request instead of the process failing at boot.
func Load(getenv func(string) string) {
	getEnv := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	ListenAddr = getEnv("APP_ADDR", ":8080")
	if dbg, err := strconv.ParseBool(getenv("DEBUG")); err == nil {
		Debug = dbg
	}

	ContentSource = getEnv("CONTENT_SOURCE", "contentful")
	ContentDir = getEnv("CONTENT_DIR", "./content")
	SiteConfig = getEnv("SITE_CONFIG", "")

	SpaceID = getenv("CONTENTFUL_SPACE_ID")
	AccessToken = getenv("CONTENTFUL_ACCESS_KEY")
	PreviewToken = getenv("CONTENTFUL_PREVIEW_KEY")
	Environment = getEnv("CONTENTFUL_ENVIRONMENT", "master")
	DeliveryHost = getEnv("CONTENTFUL_HOST", "https://cdn.contentful.com")
	PreviewHost = getEnv("CONTENTFUL_PREVIEW_HOST", "https://preview.contentful.com")

	RedisURL = getenv("REDIS_URL")
	if v := getenv("CACHE_MAX_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			CacheMaxTTL = d
		} else {
			log.Warnf("invalid CACHE_MAX_TTL %q, keeping %s", v, CacheMaxTTL)
		}
	}

	SessionSecret = getenv("SESSION_SECRET")
	PreviewSecret = getenv("PREVIEW_SECRET")
	RevalidateSecret = getenv("REVALIDATE_SECRET")
}
