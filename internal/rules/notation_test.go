package rules_test

import (
	"testing"

	"turmites/internal/grids/hex"
	"turmites/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSquareAbsolute(t *testing.T) {
	r := rules.NewRule(2, 2)
	r.Set(0, 0, 1, 1, 1)
	r.Set(0, 1, 0, 3, 0)
	r.Set(1, 0, 1, 0, 0)
	r.Set(1, 1, 1, 4, 1)
	got := rules.Format(r, squareTopo(t, 2, false))
	assert.Equal(t, "{{{1,'E',1},{0,'N',0}},{{1,'',0},{1,'S',1}}}", got)
}

func TestFormatRelativeLabels(t *testing.T) {
	r := rules.NewRule(1, 3)
	r.Set(0, 0, 1, 6, 0)
	r.Set(0, 1, 2, 4, 0)
	r.Set(0, 2, 0, 0, 0)
	assert.Equal(t, "{{{1,32,0},{2,8,0},{0,0,0}}}", rules.Format(r, hex.New(true)))
}

func TestParseRoundTrip(t *testing.T) {
	topo := hex.New(true)
	text := "{{{1,16,0},{1,8,1},{1,2,1}},{{1,8,1},{1,16,0},{1,0,0}}}"
	r, err := rules.Parse(text, topo)
	require.NoError(t, err)
	assert.Equal(t, 2, r.States)
	assert.Equal(t, 3, r.Colors)
	assert.Equal(t, uint8(5), r.Move(0, 0))
	assert.Equal(t, uint8(0), r.Move(1, 2))
	assert.Equal(t, text, rules.Format(r, topo))

	line := "2893 (popn. 120): { {{1,16,0},{1,8,1},{1,2,1}}, {{1,8,1},{1,16,0},{1,0,0}} }"
	fromLine, err := rules.Parse(line, topo)
	require.NoError(t, err)
	assert.Equal(t, r, fromLine)
}

func TestParseErrors(t *testing.T) {
	topo := squareTopo(t, 2, false)
	for _, text := range []string{
		"",
		"{}",
		"{{{1,'E'}}}",
		"{{{1,'Q',0}}}",
		"{{{1,'E',0},{1,'E',0}},{{1,'E',0}}}",
		"{{{2,'E',0}}}",
		"{{{0,'E',1}}}",
		"{{{0,'E',0}}}x",
		"{{{0,'E',0}}",
	} {
		_, err := rules.Parse(text, topo)
		assert.ErrorIs(t, err, rules.ErrNotation, "input %q", text)
	}
}
