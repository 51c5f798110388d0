package xlit

import (
	"sort"
	"strings"
)

// RescoreMode states whether dictionary fusion is applied. It is
// decided once at engine construction and threaded explicitly through
// ranking calls.
type RescoreMode int

const (
	RescoreDisabled RescoreMode = iota
	RescoreEnabled
)

// DefaultAlpha is the model-score weight in the fused ranking; the
// dictionary contributes the remaining 1-alpha.
const DefaultAlpha = 0.9

// epsilon guards the normalization denominators against empty or
// zero-probability groups.
const epsilon = 1e-10

// Candidate is one ranked transliteration for a source word. Text is
// the compact form (internal whitespace removed). The scores are kept
// so rankings stay inspectable in tests and logs; callers that only
// want text read Text alone.
type Candidate struct {
	Text       string
	ModelScore float64 // model probability, normalized within the group
	DictScore  float64 // dictionary probability, normalized within the group
	Combined   float64
}

// Rank fuses normalized model scores with normalized dictionary
// probabilities and orders candidates by the combined score. With
// RescoreDisabled (or an empty store) the group's model-score order is
// kept and Combined carries the normalized model score alone. The sort
// is stable, so ties keep the group's model-score order. Hypotheses
// that collapse to the same compact form are kept as duplicates.
func Rank(group SourceGroup, store *WordProbStore, alpha float64, mode RescoreMode) []Candidate {
	cands := make([]Candidate, len(group.Hyps))

	totalModel := 0.0
	for _, h := range group.Hyps {
		totalModel += h.Prob
	}
	if totalModel <= epsilon {
		totalModel = epsilon
	}

	if mode != RescoreEnabled || store.Len() == 0 {
		for i, h := range group.Hyps {
			norm := h.Prob / totalModel
			cands[i] = Candidate{Text: compactForm(h.Text), ModelScore: norm, Combined: norm}
		}
		return cands
	}

	totalDict := 0.0
	for i, h := range group.Hyps {
		cands[i].Text = compactForm(h.Text)
		totalDict += store.Lookup(cands[i].Text)
	}
	if totalDict <= epsilon {
		totalDict = epsilon
	}

	for i, h := range group.Hyps {
		modelNorm := h.Prob / totalModel
		dictNorm := store.Lookup(cands[i].Text) / totalDict
		cands[i].ModelScore = modelNorm
		cands[i].DictScore = dictNorm
		cands[i].Combined = alpha*modelNorm + (1-alpha)*dictNorm
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Combined > cands[j].Combined
	})
	return cands
}

// compactForm strips the decoder's token separators from a hypothesis.
func compactForm(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
