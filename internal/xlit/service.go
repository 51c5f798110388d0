package xlit

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

// Service is the caller-facing surface consumed by the CLI and the
// HTTP transport: the two transliteration operations keyed by
// direction, backed by the engine cache.
type Service struct {
	cache *EngineCache
	log   *slog.Logger
}

// NewService creates the transliteration service.
func NewService(cache *EngineCache, logger *slog.Logger) *Service {
	return &Service{cache: cache, log: logger.With("service", "xlit")}
}

// TranslitWord transliterates one word in the given direction,
// returning at most topK ranked candidates.
func (s *Service) TranslitWord(ctx context.Context, direction domain.Direction, word string, topK int) ([]string, error) {
	e, err := s.cache.Get(ctx, direction)
	if err != nil {
		return nil, err
	}
	return e.TranslitWord(ctx, word, topK)
}

// TranslitSentence transliterates a sentence word by word in the given
// direction.
func (s *Service) TranslitSentence(ctx context.Context, direction domain.Direction, sentence string) (string, error) {
	e, err := s.cache.Get(ctx, direction)
	if err != nil {
		return "", err
	}
	return e.TranslitSentence(ctx, sentence)
}

// Loaded reports which directions have a constructed engine, for
// health reporting.
func (s *Service) Loaded() []domain.Direction {
	return s.cache.Loaded()
}
