package xlit

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

// BuildFunc constructs an engine for a direction. Construction is
// expensive: it is where model artifacts are provisioned and the word
// probability store is loaded, so the first request per direction can
// take minutes on a cold models directory.
type BuildFunc func(ctx context.Context, direction domain.Direction) (*Engine, error)

// EngineCache hands out one shared engine per direction, constructing
// it lazily on first request. Entries are never evicted: the direction
// space has two values and engines are immutable. The cache is an
// explicit dependency passed to its consumers, not package state.
type EngineCache struct {
	build BuildFunc

	group singleflight.Group

	mu      sync.RWMutex
	engines map[domain.Direction]*Engine
}

// NewEngineCache creates an empty cache around the given builder.
func NewEngineCache(build BuildFunc) *EngineCache {
	return &EngineCache{
		build:   build,
		engines: make(map[domain.Direction]*Engine),
	}
}

// Get returns the engine for the direction, building it first if this
// is the first request. Concurrent first requests share a single
// construction and observe the same instance. A failed construction is
// not cached; the next request tries again.
func (c *EngineCache) Get(ctx context.Context, direction domain.Direction) (*Engine, error) {
	if !direction.IsValid() {
		return nil, domain.NewValidationError("direction", "unknown direction "+string(direction))
	}

	c.mu.RLock()
	e := c.engines[direction]
	c.mu.RUnlock()
	if e != nil {
		return e, nil
	}

	v, err, _ := c.group.Do(direction.String(), func() (any, error) {
		// Re-check under the flight: a previous flight may have
		// populated the map between our read and Do.
		c.mu.RLock()
		e := c.engines[direction]
		c.mu.RUnlock()
		if e != nil {
			return e, nil
		}

		built, err := c.build(ctx, direction)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.engines[direction] = built
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Engine), nil
}

// Loaded lists the directions that have a constructed engine.
func (c *EngineCache) Loaded() []domain.Direction {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Direction, 0, len(c.engines))
	for _, d := range domain.Directions() {
		if _, ok := c.engines[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
