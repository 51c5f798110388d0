package xlit

import (
	"strings"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
	"github.com/heartmarshall/gujarati-xlit/internal/gujarati"
)

// langToken is the target-language marker the multilingual decoder was
// trained with. The engine is restricted to the en<->gu pair, so the
// token is fixed.
const langToken = "__gu__"

// Preprocess converts a single word into the exact form the decoder
// expects: script normalization (Unicode canonicalization for
// Gujarati, case folding for Roman), character-level tokenization with
// single spaces, and the language token prefix.
func Preprocess(word string, src domain.Script) string {
	if src == domain.ScriptGujarati {
		word = gujarati.Normalize(word)
	} else {
		word = strings.ToLower(word)
	}

	var b strings.Builder
	b.Grow(len(langToken) + 2*len(word))
	b.WriteString(langToken)
	for _, r := range word {
		b.WriteByte(' ')
		b.WriteRune(r)
	}
	return b.String()
}
