package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	return nil
}

func (e *EngineConfig) validate() error {
	if e.BeamWidth < 1 {
		return fmt.Errorf("beam_width must be >= 1 (got %d)", e.BeamWidth)
	}
	if e.Alpha <= 0 || e.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1] (got %v)", e.Alpha)
	}
	if e.DefaultTopK < 1 {
		return fmt.Errorf("default_top_k must be >= 1 (got %d)", e.DefaultTopK)
	}
	if e.MaxTopK < e.DefaultTopK {
		return fmt.Errorf("max_top_k must be >= default_top_k (got %d < %d)", e.MaxTopK, e.DefaultTopK)
	}
	if e.MaxBatchSize < 1 {
		return fmt.Errorf("max_batch_size must be >= 1 (got %d)", e.MaxBatchSize)
	}
	if _, err := ParsePreload(e.Preload); err != nil {
		return fmt.Errorf("preload: %w", err)
	}
	return nil
}

// ParsePreload parses a comma-separated list of directions (e.g.
// "en2gu,gu2en") into domain values. An empty string returns a nil
// slice.
func ParsePreload(raw string) ([]domain.Direction, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]domain.Direction, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := domain.ParseDirection(p)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, nil
}
