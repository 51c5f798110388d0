// Package gujarati provides Unicode helpers for Gujarati script text.
package gujarati

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Gujarati Unicode block.
const (
	blockLo = 0x0A80
	blockHi = 0x0AFF
)

// Invisible formatting code points that leak into user input from
// keyboards and copy-paste. The decoder was trained without them.
const (
	zwnj          = '‌'
	zwj           = '‍'
	zeroWidthSp   = '​'
	wordJoiner    = '⁠'
	softHyphen    = '­'
	byteOrderMark = '\uFEFF'
)

// Normalize canonicalizes a Gujarati word for the decoder: strips
// invisible formatting code points and applies NFC, which puts
// combining marks such as the nukta into canonical order.
func Normalize(word string) string {
	word = strings.Map(func(r rune) rune {
		switch r {
		case zwnj, zwj, zeroWidthSp, wordJoiner, softHyphen, byteOrderMark:
			return -1
		}
		return r
	}, word)
	return norm.NFC.String(word)
}

// IsGujarati reports whether text contains at least one code point
// from the Gujarati block.
func IsGujarati(text string) bool {
	for _, r := range text {
		if r >= blockLo && r <= blockHi {
			return true
		}
	}
	return false
}
