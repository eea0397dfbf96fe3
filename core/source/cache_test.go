package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource counts Load calls so cache tests can assert hits.
type countingSource struct {
	name    string
	records []Record
	err     error
	loads   int
}

func (s *countingSource) Name() string { return s.name }

func (s *countingSource) Load(ctx context.Context) ([]Record, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// TestCache_Hit tests that a fresh snapshot is reused.
func TestCache_Hit(t *testing.T) {
	src := &countingSource{name: "s", records: []Record{{"id": "a"}}}
	cache := NewCache()

	first, err := cache.Load(context.Background(), src, 5*time.Minute)
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, src.loads)

	second, err := cache.Load(context.Background(), src, 5*time.Minute)
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, src.loads)
}

// TestCache_Expiration tests that an expired snapshot is reloaded.
func TestCache_Expiration(t *testing.T) {
	src := &countingSource{name: "s", records: []Record{{"id": "a"}}}
	cache := NewCache()

	_, err := cache.Load(context.Background(), src, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, src.loads)

	time.Sleep(20 * time.Millisecond)

	_, err = cache.Load(context.Background(), src, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, src.loads)
}

// TestCache_ZeroTTLBypasses tests that a zero TTL always hits the source.
func TestCache_ZeroTTLBypasses(t *testing.T) {
	src := &countingSource{name: "s", records: []Record{}}
	cache := NewCache()

	for i := 0; i < 3; i++ {
		_, err := cache.Load(context.Background(), src, 0)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.loads)
}

// TestCache_Invalidate tests that invalidation forces a reload.
func TestCache_Invalidate(t *testing.T) {
	src := &countingSource{name: "s", records: []Record{}}
	cache := NewCache()

	_, err := cache.Load(context.Background(), src, time.Hour)
	require.NoError(t, err)
	cache.Invalidate("s")

	_, err = cache.Load(context.Background(), src, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, src.loads)
}

// TestCache_ErrorNotCached tests that a failed load is not stored.
func TestCache_ErrorNotCached(t *testing.T) {
	src := &countingSource{name: "s", err: errors.New("down")}
	cache := NewCache()

	_, err := cache.Load(context.Background(), src, time.Hour)
	require.Error(t, err)

	src.err = nil
	src.records = []Record{{"id": "a"}}
	records, err := cache.Load(context.Background(), src, time.Hour)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, src.loads)
}
