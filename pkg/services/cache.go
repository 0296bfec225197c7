package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Snapshot is one generated page input together with its generation time.
type Snapshot struct {
	Data        json.RawMessage `json:"data"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// Store keeps generated snapshots. Implementations treat their own
// failures as misses.
type Store interface {
	Load(ctx context.Context, key string) (Snapshot, bool)
	Save(ctx context.Context, key string, snap Snapshot)
	Delete(ctx context.Context, keys ...string)
	Clear(ctx context.Context)
}

// Cache regenerates page data once its revalidation window has passed.
// Concurrent requests for the same stale key share one generation.
type Cache struct {
	store Store
	group singleflight.Group
	now   func() time.Time
	log   logrus.FieldLogger
}

func NewCache(store Store, log logrus.FieldLogger) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Cache{store: store, now: time.Now, log: log}
}

// Cached returns the snapshot stored under key while it is younger than
// window, and otherwise generates, stores and returns a new one.
func Cached[T any](ctx context.Context, c *Cache, key string, window time.Duration, generate func(context.Context) T) T {
	if c == nil {
		return generate(ctx)
	}
	if snap, ok := c.store.Load(ctx, key); ok && c.now().Sub(snap.GeneratedAt) < window {
		var v T
		err := json.Unmarshal(snap.Data, &v)
		if err == nil {
			return v
		}
		c.log.WithError(err).WithField("key", key).Warn("discarding undecodable snapshot")
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		// Waiters share this generation, so it must outlive the caller that started it.
		detached := context.WithoutCancel(ctx)
		fresh := generate(detached)
		data, err := json.Marshal(fresh)
		if err != nil {
			c.log.WithError(err).WithField("key", key).Warn("snapshot not stored")
			return fresh, nil
		}
		c.store.Save(detached, key, Snapshot{Data: data, GeneratedAt: c.now()})
		c.log.WithField("key", key).Debug("page data regenerated")
		return fresh, nil
	})
	return v.(T)
}

// Invalidate drops the snapshots of the given site paths, or of every page
// when no path is given.
func (c *Cache) Invalidate(ctx context.Context, paths ...string) []string {
	if len(paths) == 0 {
		c.store.Clear(ctx)
		return nil
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, KeyForPath(p))
	}
	c.store.Delete(ctx, keys...)
	return keys
}

// KeyForPath maps a site path onto its cache key. Article pages are
// resolved from the news list, so "/news/rain-delay" maps to "news".
func KeyForPath(path string) string {
	key := strings.Trim(path, "/")
	if key == "" {
		return "home"
	}
	if strings.HasPrefix(key, "news/") {
		return "news"
	}
	return key
}
