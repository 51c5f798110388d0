package xlit

import (
	"encoding/json"
	"fmt"
	"os"
)

// WordProbStore is an immutable word-frequency dictionary mapping a
// compact candidate string to a probability in [0,1]. Missing words
// map to 0. A nil store behaves like an empty one.
type WordProbStore struct {
	probs map[string]float64
}

// LoadWordProbStore reads a JSON object of word -> probability from
// path. The store is read-only after loading and safe for concurrent
// lookups.
func LoadWordProbStore(path string) (*WordProbStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("word prob store: open %s: %w", path, err)
	}
	defer f.Close()

	probs := make(map[string]float64)
	if err := json.NewDecoder(f).Decode(&probs); err != nil {
		return nil, fmt.Errorf("word prob store: decode %s: %w", path, err)
	}
	return &WordProbStore{probs: probs}, nil
}

// Lookup returns the probability for the compact form, or 0 if the
// word is unknown.
func (s *WordProbStore) Lookup(word string) float64 {
	if s == nil {
		return 0
	}
	return s.probs[word]
}

// Len reports how many words the store holds.
func (s *WordProbStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.probs)
}
