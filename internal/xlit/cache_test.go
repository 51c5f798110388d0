package xlit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

func buildStub(t *testing.T) BuildFunc {
	t.Helper()

	return func(_ context.Context, d domain.Direction) (*Engine, error) {
		return NewEngine(EngineParams{Direction: d, Decoder: scriptedDecoder("a")}, testLogger())
	}
}

func TestEngineCache_Get(t *testing.T) {
	t.Parallel()

	cache := NewEngineCache(buildStub(t))

	first, err := cache.Get(t.Context(), domain.DirectionRomanToGujarati)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := cache.Get(t.Context(), domain.DirectionRomanToGujarati)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestEngineCache_InvalidDirection(t *testing.T) {
	t.Parallel()

	cache := NewEngineCache(buildStub(t))

	_, err := cache.Get(t.Context(), "gu2fr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEngineCache_ConcurrentFirstGet(t *testing.T) {
	t.Parallel()

	var builds atomic.Int64
	cache := NewEngineCache(func(_ context.Context, d domain.Direction) (*Engine, error) {
		builds.Add(1)
		return NewEngine(EngineParams{Direction: d, Decoder: scriptedDecoder("a")}, testLogger())
	})

	const callers = 32
	engines := make([]*Engine, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := cache.Get(context.Background(), domain.DirectionRomanToGujarati)
			assert.NoError(t, err)
			engines[i] = e
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), builds.Load(), "concurrent first requests share one construction")
	for _, e := range engines {
		assert.Same(t, engines[0], e)
	}
}

func TestEngineCache_FailedBuildNotCached(t *testing.T) {
	t.Parallel()

	boom := errors.New("provisioning failed")
	var builds atomic.Int64
	cache := NewEngineCache(func(_ context.Context, d domain.Direction) (*Engine, error) {
		if builds.Add(1) == 1 {
			return nil, boom
		}
		return NewEngine(EngineParams{Direction: d, Decoder: scriptedDecoder("a")}, testLogger())
	})

	_, err := cache.Get(t.Context(), domain.DirectionGujaratiToRoman)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Empty(t, cache.Loaded())

	e, err := cache.Get(t.Context(), domain.DirectionGujaratiToRoman)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, int64(2), builds.Load())
}

func TestEngineCache_Loaded(t *testing.T) {
	t.Parallel()

	cache := NewEngineCache(buildStub(t))
	assert.Empty(t, cache.Loaded())

	_, err := cache.Get(t.Context(), domain.DirectionGujaratiToRoman)
	require.NoError(t, err)

	_, err = cache.Get(t.Context(), domain.DirectionRomanToGujarati)
	require.NoError(t, err)

	assert.Equal(t,
		[]domain.Direction{domain.DirectionRomanToGujarati, domain.DirectionGujaratiToRoman},
		cache.Loaded(),
		"stable direction order regardless of load order")
}
