package xlit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

// DefaultBeamWidth matches the beam the released models were evaluated
// with.
const DefaultBeamWidth = 4

// decoder is the neural decode oracle: a batch of preprocessed strings
// in, raw line-oriented hypotheses out. Implementations block for the
// duration of inference; cancellation is the caller's concern via ctx.
type decoder interface {
	Decode(ctx context.Context, batch []string) (string, error)
}

// Engine binds one direction to a decoder, a word-probability store
// and a rescore mode. It is immutable after construction and safe for
// concurrent use by any number of callers.
type Engine struct {
	direction domain.Direction
	dec       decoder
	store     *WordProbStore
	alpha     float64
	mode      RescoreMode
	log       *slog.Logger
}

// EngineParams carries everything an engine needs. Store may be nil:
// the engine then runs with rescoring disabled.
type EngineParams struct {
	Direction domain.Direction
	Decoder   decoder
	Store     *WordProbStore
	Alpha     float64
	Rescore   bool
}

// NewEngine constructs an engine. Requesting rescore without a usable
// store degrades to RescoreDisabled with a warning: a missing
// dictionary loses an enhancement, it does not break transliteration.
func NewEngine(p EngineParams, logger *slog.Logger) (*Engine, error) {
	if !p.Direction.IsValid() {
		return nil, domain.NewValidationError("direction", "unknown direction "+string(p.Direction))
	}
	if p.Decoder == nil {
		return nil, fmt.Errorf("engine %s: decoder is required", p.Direction)
	}
	if p.Alpha <= 0 || p.Alpha > 1 {
		p.Alpha = DefaultAlpha
	}

	mode := RescoreDisabled
	if p.Rescore {
		if p.Store.Len() > 0 {
			mode = RescoreEnabled
		} else {
			logger.Warn("word probability store unavailable, rescoring disabled",
				slog.String("direction", p.Direction.String()))
		}
	}

	return &Engine{
		direction: p.Direction,
		dec:       p.Decoder,
		store:     p.Store,
		alpha:     p.Alpha,
		mode:      mode,
		log:       logger.With("engine", p.Direction.String()),
	}, nil
}

// Direction returns the direction the engine is bound to.
func (e *Engine) Direction() domain.Direction { return e.direction }

// Rescoring reports whether dictionary fusion is active.
func (e *Engine) Rescoring() bool { return e.mode == RescoreEnabled }

// TranslitWord transliterates a single word and returns at most topK
// candidates in ranked order, compact forms only. An empty or
// whitespace-only word yields an empty result, not an error; fewer
// hypotheses than topK is not an error either.
func (e *Engine) TranslitWord(ctx context.Context, word string, topK int) ([]string, error) {
	if topK < 1 {
		return nil, domain.NewValidationError("topK", "must be at least 1")
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, nil
	}

	raw, err := e.dec.Decode(ctx, []string{Preprocess(word, e.direction.SourceScript())})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.direction, err)
	}

	groups, err := ParseDecoderOutput(raw)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, &MalformedOutputError{Reason: "no source record for input"}
	}

	cands := Rank(groups[0], e.store, e.alpha, e.mode)
	if len(cands) > topK {
		cands = cands[:topK]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out, nil
}

// TranslitSentence transliterates each whitespace-separated word
// independently with topK=1 and joins the results with single spaces.
// A word with no candidates passes through unchanged, so the output
// always carries as many words as the input. Words are decoded
// sequentially; rankings are independent, so order only matters for
// the final join.
func (e *Engine) TranslitSentence(ctx context.Context, sentence string) (string, error) {
	words := strings.Fields(sentence)
	if len(words) == 0 {
		return "", nil
	}

	out := make([]string, len(words))
	for i, w := range words {
		res, err := e.TranslitWord(ctx, w, 1)
		if err != nil {
			return "", err
		}
		if len(res) == 0 {
			out[i] = w
			continue
		}
		out[i] = res[0]
	}
	return strings.Join(out, " "), nil
}
