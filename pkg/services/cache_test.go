package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(store Store) (*Cache, *clock) {
	clk := &clock{now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCache(store, nil)
	c.now = clk.Now
	return c, clk
}

func TestCachedServesFreshSnapshot(t *testing.T) {
	c, clk := newTestCache(NewMemoryStore())
	ctx := context.Background()

	var calls int
	gen := func(context.Context) []string {
		calls++
		return []string{"gen", time.Duration(calls).String()}
	}

	first := Cached(ctx, c, "news", 5*time.Minute, gen)
	clk.Advance(4 * time.Minute)
	second := Cached(ctx, c, "news", 5*time.Minute, gen)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	clk.Advance(time.Minute)
	third := Cached(ctx, c, "news", 5*time.Minute, gen)
	assert.Equal(t, 2, calls)
	assert.NotEqual(t, first, third)
}

func TestCachedKeysAreIndependent(t *testing.T) {
	c, _ := newTestCache(NewMemoryStore())
	ctx := context.Background()

	a := Cached(ctx, c, "news/a", time.Minute, func(context.Context) ArticleData { return ArticleData{Found: true} })
	b := Cached(ctx, c, "news/b", time.Minute, func(context.Context) ArticleData { return ArticleData{} })
	assert.True(t, a.Found)
	assert.False(t, b.Found)
}

func TestCachedCollapsesConcurrentGeneration(t *testing.T) {
	c, _ := newTestCache(NewMemoryStore())
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	gen := func(context.Context) int {
		calls.Add(1)
		<-release
		return 42
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = Cached(ctx, c, "squad", time.Hour, gen)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}

func TestCachedNilCacheGenerates(t *testing.T) {
	got := Cached(context.Background(), nil, "home", time.Hour, func(context.Context) string { return "direct" })
	assert.Equal(t, "direct", got)
}

func TestInvalidate(t *testing.T) {
	store := NewMemoryStore()
	c, _ := newTestCache(store)
	ctx := context.Background()

	for _, key := range []string{"home", "news", "squad"} {
		Cached(ctx, c, key, time.Hour, func(context.Context) string { return key })
	}

	keys := c.Invalidate(ctx, "/news/rain-delay", "/")
	assert.Equal(t, []string{"news", "home"}, keys)
	_, ok := store.Load(ctx, "news")
	assert.False(t, ok)
	_, ok = store.Load(ctx, "squad")
	assert.True(t, ok)

	c.Invalidate(ctx)
	_, ok = store.Load(ctx, "squad")
	assert.False(t, ok)
}

func TestKeyForPath(t *testing.T) {
	assert.Equal(t, "home", KeyForPath("/"))
	assert.Equal(t, "home", KeyForPath(""))
	assert.Equal(t, "news", KeyForPath("/news/"))
	assert.Equal(t, "news", KeyForPath("/news/rain-delay"))
	assert.Equal(t, "squad", KeyForPath("/squad"))
}

type ctxRecordingStore struct {
	*MemoryStore
	saveErr error
}

func (s *ctxRecordingStore) Save(ctx context.Context, key string, snap Snapshot) {
	s.saveErr = ctx.Err()
	s.MemoryStore.Save(ctx, key, snap)
}

func TestCachedSavesAfterCallerCancels(t *testing.T) {
	store := &ctxRecordingStore{MemoryStore: NewMemoryStore()}
	c, _ := newTestCache(store)
	ctx, cancel := context.WithCancel(context.Background())

	got := Cached(ctx, c, "news", time.Hour, func(context.Context) string {
		cancel()
		return "fresh"
	})
	assert.Equal(t, "fresh", got)
	assert.NoError(t, store.saveErr)
	_, ok := store.Load(context.Background(), "news")
	assert.True(t, ok)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "fxi:", time.Hour, nil), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	generated := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	store.Save(ctx, "squad", Snapshot{Data: []byte(`[1,2,3]`), GeneratedAt: generated})
	assert.True(t, mr.Exists("fxi:squad"))
	ttl := mr.TTL("fxi:squad")
	assert.True(t, ttl > 0 && ttl <= time.Hour, "unexpected TTL %v", ttl)

	snap, ok := store.Load(ctx, "squad")
	require.True(t, ok)
	assert.JSONEq(t, `[1,2,3]`, string(snap.Data))
	assert.True(t, generated.Equal(snap.GeneratedAt))

	_, ok = store.Load(ctx, "home")
	assert.False(t, ok)
}

func TestRedisStoreDropsCorruptSnapshot(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("fxi:home", "not json"))

	_, ok := store.Load(context.Background(), "home")
	assert.False(t, ok)
	assert.False(t, mr.Exists("fxi:home"))
}

func TestRedisStoreDeleteAndClear(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	for _, k := range []string{"home", "news", "squad"} {
		store.Save(ctx, k, Snapshot{Data: []byte(`{}`), GeneratedAt: time.Now()})
	}
	require.NoError(t, mr.Set("other:key", "keep"))

	store.Delete(ctx, "news")
	assert.False(t, mr.Exists("fxi:news"))
	assert.True(t, mr.Exists("fxi:home"))

	store.Clear(ctx)
	assert.False(t, mr.Exists("fxi:home"))
	assert.False(t, mr.Exists("fxi:squad"))
	assert.True(t, mr.Exists("other:key"))
}

func TestCachedWithRedisStore(t *testing.T) {
	store, _ := newRedisStore(t)
	c, clk := newTestCache(store)
	ctx := context.Background()

	var calls int
	gen := func(context.Context) HomeData {
		calls++
		return HomeData{}
	}
	Cached(ctx, c, "home", time.Second, gen)
	Cached(ctx, c, "home", time.Second, gen)
	assert.Equal(t, 1, calls)

	clk.Advance(2 * time.Second)
	Cached(ctx, c, "home", time.Second, gen)
	assert.Equal(t, 2, calls)
}

func TestRedisStoreUnavailableIsMiss(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	store.Save(context.Background(), "home", Snapshot{Data: []byte(`{}`)})
	_, ok := store.Load(context.Background(), "home")
	assert.False(t, ok)
}
