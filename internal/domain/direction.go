package domain

import "fmt"

// Script identifies a writing system handled by the engine.
type Script string

const (
	ScriptRoman    Script = "roman"
	ScriptGujarati Script = "gujarati"
)

func (s Script) String() string { return string(s) }

// Direction selects which script is the source and which is the target.
// It is fixed for the lifetime of an engine.
type Direction string

const (
	DirectionRomanToGujarati Direction = "en2gu"
	DirectionGujaratiToRoman Direction = "gu2en"
)

func (d Direction) String() string { return string(d) }

func (d Direction) IsValid() bool {
	switch d {
	case DirectionRomanToGujarati, DirectionGujaratiToRoman:
		return true
	}
	return false
}

// SourceScript returns the script the direction reads.
func (d Direction) SourceScript() Script {
	if d == DirectionGujaratiToRoman {
		return ScriptGujarati
	}
	return ScriptRoman
}

// TargetScript returns the script the direction produces.
func (d Direction) TargetScript() Script {
	if d == DirectionGujaratiToRoman {
		return ScriptRoman
	}
	return ScriptGujarati
}

// LangPair returns the fairseq language pair string for the direction.
func (d Direction) LangPair() string {
	if d == DirectionGujaratiToRoman {
		return "gu-en"
	}
	return "en-gu"
}

// ParseDirection validates a user-supplied direction string.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", NewValidationError("direction",
			fmt.Sprintf("must be %q or %q", DirectionRomanToGujarati, DirectionGujaratiToRoman))
	}
	return d, nil
}

// Directions lists all supported directions in a stable order.
func Directions() []Direction {
	return []Direction{DirectionRomanToGujarati, DirectionGujaratiToRoman}
}
