package xlit

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// RawHypothesis is a single decoder hypothesis for one source word.
// Score is the raw log2-probability reported by the decoder; Prob is
// its linear form 2^Score.
type RawHypothesis struct {
	Text  string
	Score float64
	Prob  float64
}

// SourceGroup collects the hypotheses the decoder produced for one
// source word, sorted by descending probability. Equal probabilities
// keep the decoder's emission order.
type SourceGroup struct {
	Index  int
	Source string
	Hyps   []RawHypothesis
}

// ParseDecoderOutput converts the decoder's line-oriented output into
// source groups ordered by ascending source index. The decoder is free
// to emit lines in any order; only the embedded indices matter.
//
// Recognized records:
//
//	S-<i>\t<source>
//	H-<i>\t<log2 score>\t<space-tokenized hypothesis>
//
// Other record kinds the decoder emits (W-, D-, P-, A-) are ignored.
func ParseDecoderOutput(raw string) ([]SourceGroup, error) {
	groups := make(map[int]*SourceGroup)
	pending := make(map[int][]RawHypothesis)

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "S-"):
			idx, rest, err := splitRecord(line)
			if err != nil {
				return nil, err
			}
			groups[idx] = &SourceGroup{Index: idx, Source: rest}

		case strings.HasPrefix(line, "H-"):
			idx, rest, err := splitRecord(line)
			if err != nil {
				return nil, err
			}
			scoreField, text, ok := strings.Cut(rest, "\t")
			if !ok {
				return nil, &MalformedOutputError{Line: line, Reason: "hypothesis record needs score and text fields"}
			}
			score, err := strconv.ParseFloat(strings.TrimSpace(scoreField), 64)
			if err != nil {
				return nil, &MalformedOutputError{Line: line, Reason: "unparseable score"}
			}
			pending[idx] = append(pending[idx], RawHypothesis{
				Text:  text,
				Score: score,
				Prob:  math.Exp2(score),
			})
		}
	}

	for idx, hyps := range pending {
		g, ok := groups[idx]
		if !ok {
			return nil, &MalformedOutputError{
				Reason: fmt.Sprintf("hypothesis references source index %d with no S record", idx),
			}
		}
		g.Hyps = hyps
	}

	out := make([]SourceGroup, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.Hyps, func(i, j int) bool {
			return g.Hyps[i].Prob > g.Hyps[j].Prob
		})
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// splitRecord splits "S-3\t<rest>" into its index and payload.
func splitRecord(line string) (int, string, error) {
	tag, rest, ok := strings.Cut(line, "\t")
	if !ok {
		return 0, "", &MalformedOutputError{Line: line, Reason: "missing tab after record tag"}
	}
	_, idxField, ok := strings.Cut(tag, "-")
	if !ok {
		return 0, "", &MalformedOutputError{Line: line, Reason: "missing source index"}
	}
	idx, err := strconv.Atoi(idxField)
	if err != nil {
		return 0, "", &MalformedOutputError{Line: line, Reason: "unparseable source index"}
	}
	return idx, rest, nil
}
