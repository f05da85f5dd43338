package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/jon4hz/reviewshelf/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSummary struct {
	Ratings []int   `json:"ratings"`
	Average float64 `json:"average"`
}

func TestPrefixedCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewPrefixedCache[testSummary](newMemoryCache(), "test-")

	_, err := c.Get(ctx, "dune")
	require.Error(t, err, "empty cache must miss")

	want := testSummary{Ratings: []int{5, 3}, Average: 4}
	require.NoError(t, c.Set(ctx, "dune", want))

	got, err := c.Get(ctx, "dune")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "dune"))
	_, err = c.Get(ctx, "dune")
	assert.Error(t, err)
}

func TestPrefixedCache_PrefixesIsolateEntries(t *testing.T) {
	ctx := context.Background()
	shared := newMemoryCache()
	a := NewPrefixedCache[testSummary](shared, "a-")
	b := NewPrefixedCache[testSummary](shared, "b-")

	require.NoError(t, a.Set(ctx, "key", testSummary{Average: 1}))

	_, err := b.Get(ctx, "key")
	assert.Error(t, err)

	got, err := a.Get(ctx, "key")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Average, 0.0001)
}

// stringStore keeps values as strings, the way redis returns them.
type stringStore struct {
	values map[string]string
}

func newStringStore() *stringStore {
	return &stringStore{values: make(map[string]string)}
}

func (s *stringStore) Get(_ context.Context, key any) (any, error) {
	v, ok := s.values[key.(string)]
	if !ok {
		return nil, store.NotFound{}
	}
	return v, nil
}

func (s *stringStore) GetWithTTL(ctx context.Context, key any) (any, time.Duration, error) {
	v, err := s.Get(ctx, key)
	return v, 0, err
}

func (s *stringStore) Set(_ context.Context, key any, value any, _ ...store.Option) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("expected []byte")
	}
	s.values[key.(string)] = string(b)
	return nil
}

func (s *stringStore) Delete(_ context.Context, key any) error {
	delete(s.values, key.(string))
	return nil
}

func (s *stringStore) Invalidate(context.Context, ...store.InvalidateOption) error {
	return nil
}

func (s *stringStore) Clear(context.Context) error {
	s.values = make(map[string]string)
	return nil
}

func (s *stringStore) GetType() string {
	return "string"
}

func TestPrefixedCache_StringValues(t *testing.T) {
	ctx := context.Background()
	backend := newStringStore()
	c := NewPrefixedCache[testSummary](cache.New[any](backend), "str-")

	want := testSummary{Ratings: []int{2, 4}, Average: 3}
	require.NoError(t, c.Set(ctx, "alien", want))
	assert.Contains(t, backend.values, "str-alien")

	got, err := c.Get(ctx, "alien")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	backend.values["str-broken"] = "not json"
	_, err = c.Get(ctx, "broken")
	assert.Error(t, err)
}

func TestPrefixedCache_Stats(t *testing.T) {
	ctx := context.Background()
	c := NewPrefixedCache[testSummary](newMemoryCache(), "stats-")

	_, _ = c.Get(ctx, "missing")
	require.NoError(t, c.Set(ctx, "present", testSummary{}))
	_, err := c.Get(ctx, "present")
	require.NoError(t, err)

	stats := c.GetStats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Miss)
	assert.Equal(t, 1, stats.SetSuccess)
}

func TestNewReviewSummaryCache(t *testing.T) {
	a := NewReviewSummaryCache[testSummary](&config.CacheConfig{Type: config.CacheTypeMemory})
	b := NewReviewSummaryCache[testSummary](nil)

	assert.True(t, strings.HasPrefix(a.prefix, ReviewSummaryCachePrefix))
	assert.NotEqual(t, a.prefix, b.prefix)
	assert.Equal(t, "cache", a.GetType())
}
