package xlit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

func TestParseDecoderOutput_SingleGroup(t *testing.T) {
	t.Parallel()

	raw := "S-0\t__gu__ n a m a s t e\n" +
		"W-0\t0.123\tseconds\n" +
		"H-0\t-0.1\tન મ સ્ તે\n" +
		"H-0\t-0.5\tન મ સ તે\n"

	groups, err := ParseDecoderOutput(raw)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, 0, g.Index)
	assert.Equal(t, "__gu__ n a m a s t e", g.Source)
	require.Len(t, g.Hyps, 2)

	// 2^-0.1 > 2^-0.5: best hypothesis first.
	assert.Equal(t, "ન મ સ્ તે", g.Hyps[0].Text)
	assert.Greater(t, g.Hyps[0].Prob, g.Hyps[1].Prob)
	assert.InDelta(t, 0.933, g.Hyps[0].Prob, 1e-3)
	assert.InDelta(t, 0.707, g.Hyps[1].Prob, 1e-3)
}

func TestParseDecoderOutput_ReordersByIndex(t *testing.T) {
	t.Parallel()

	// Lines deliberately out of input order.
	raw := "H-1\t-1.0\tb b\n" +
		"S-1\tsecond\n" +
		"S-0\tfirst\n" +
		"H-0\t-2.0\ta a\n"

	groups, err := ParseDecoderOutput(raw)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, 0, groups[0].Index)
	assert.Equal(t, "first", groups[0].Source)
	assert.Equal(t, 1, groups[1].Index)
	assert.Equal(t, "b b", groups[1].Hyps[0].Text)
}

func TestParseDecoderOutput_StableOnEqualScores(t *testing.T) {
	t.Parallel()

	raw := "S-0\tw\n" +
		"H-0\t-1.0\tfirst emitted\n" +
		"H-0\t-1.0\tsecond emitted\n"

	groups, err := ParseDecoderOutput(raw)
	require.NoError(t, err)
	require.Len(t, groups[0].Hyps, 2)

	// Equal probabilities keep emission order.
	assert.Equal(t, "first emitted", groups[0].Hyps[0].Text)
	assert.Equal(t, "second emitted", groups[0].Hyps[1].Text)
}

func TestParseDecoderOutput_GroupWithoutHypotheses(t *testing.T) {
	t.Parallel()

	groups, err := ParseDecoderOutput("S-0\tword\n")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Hyps)
}

func TestParseDecoderOutput_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"unparseable score", "S-0\tw\nH-0\tnot-a-number\tx y\n"},
		{"unparseable index", "S-abc\tw\n"},
		{"hypothesis without source", "H-3\t-1.0\tx y\n"},
		{"missing hypothesis text field", "S-0\tw\nH-0\t-1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDecoderOutput(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedOutput), "expected ErrMalformedOutput, got %v", err)

			var malformed *MalformedOutputError
			assert.True(t, errors.As(err, &malformed))
		})
	}
}

func TestParseDecoderOutput_IgnoresOtherRecords(t *testing.T) {
	t.Parallel()

	raw := "S-0\tw\n" +
		"W-0\t0.1\tseconds\n" +
		"H-0\t-1.0\ta b\n" +
		"D-0\t-1.0\tab\n" +
		"P-0\t-0.5 -0.5\n" +
		"A-0\t0-0 1-1\n"

	groups, err := ParseDecoderOutput(raw)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Hyps, 1)
}

func TestParseDecoderOutput_Empty(t *testing.T) {
	t.Parallel()

	groups, err := ParseDecoderOutput("")
	require.NoError(t, err)
	assert.Empty(t, groups)
}
