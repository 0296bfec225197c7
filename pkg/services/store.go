package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Snapshot)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.entries[key]
	return snap, ok
}

func (m *MemoryStore) Save(_ context.Context, key string, snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = snap
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
}

func (m *MemoryStore) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Snapshot)
}

// RedisStore shares snapshots between instances through Redis. Keys expire
// after maxAge regardless of the revalidation window.
type RedisStore struct {
	redis  *redis.Client
	prefix string
	maxAge time.Duration
	log    logrus.FieldLogger
}

func NewRedisStore(client *redis.Client, prefix string, maxAge time.Duration, log logrus.FieldLogger) *RedisStore {
	if client == nil {
		panic("services.NewRedisStore: redis client is nil")
	}
	if prefix == "" {
		prefix = "page:"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RedisStore{redis: client, prefix: prefix, maxAge: maxAge, log: log}
}

func (r *RedisStore) Load(ctx context.Context, key string) (Snapshot, bool) {
	data, err := r.redis.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.WithError(err).WithField("key", key).Warn("redis load failed, treating as miss")
		}
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		_ = r.redis.Del(ctx, r.prefix+key).Err()
		return Snapshot{}, false
	}
	return snap, true
}

func (r *RedisStore) Save(ctx context.Context, key string, snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, r.prefix+key, data, r.maxAge).Err(); err != nil {
		r.log.WithError(err).WithField("key", key).Warn("redis save failed")
	}
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.prefix + k
	}
	if err := r.redis.Del(ctx, prefixed...).Err(); err != nil {
		r.log.WithError(err).Warn("redis delete failed")
	}
}

func (r *RedisStore) Clear(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := r.redis.Scan(ctx, cursor, r.prefix+"*", 100).Result()
		if err != nil {
			r.log.WithError(err).Warn("redis scan failed")
			return
		}
		if len(keys) > 0 {
			if err := r.redis.Del(ctx, keys...).Err(); err != nil {
				r.log.WithError(err).Warn("redis delete failed")
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
