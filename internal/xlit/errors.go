package xlit

import (
	"fmt"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

// MalformedOutputError reports a decoder output line that violates the
// S-/H- record contract. It wraps domain.ErrMalformedOutput so callers
// can distinguish "bad upstream response" from "service unusable".
type MalformedOutputError struct {
	Line   string
	Reason string
}

func (e *MalformedOutputError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("malformed decoder output: %s", e.Reason)
	}
	return fmt.Sprintf("malformed decoder output: %s: %q", e.Reason, e.Line)
}

func (e *MalformedOutputError) Unwrap() error { return domain.ErrMalformedOutput }
