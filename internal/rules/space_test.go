package rules_test

import (
	"math/big"
	"testing"

	"turmites/internal/core"
	"turmites/internal/grids/hex"
	"turmites/internal/grids/square"
	"turmites/internal/grids/tri"
	"turmites/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareTopo(t *testing.T, dim int, relative bool) core.Topology {
	t.Helper()
	s, err := square.New(dim, relative)
	require.NoError(t, err)
	return s
}

func TestCanonicalFirstTriple(t *testing.T) {
	space, err := rules.NewSpace(squareTopo(t, 2, false), 2, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1}, space.Values(0))
	assert.Equal(t, []uint8{1}, space.Values(1))
	assert.Equal(t, []uint8{1}, space.Values(2))
	assert.Equal(t, []uint8{0, 1, 2, 3, 4}, space.Values(space.Slot(1, 1, rules.SlotMove)))
	assert.Equal(t, big.NewInt(8000), space.Total())

	rel, err := rules.NewSpace(squareTopo(t, 1, true), 2, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2}, rel.Values(1), "first moves are clipped to the 1D code range")

	trSpace, err := rules.NewSpace(mustTri(t), 2, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1}, trSpace.Values(0))
	assert.Equal(t, []uint8{1, 3}, trSpace.Values(1))

	hx, err := rules.NewSpace(hex.New(true), 2, 3, true)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 3, 5, 6}, hx.Values(1))
}

func TestHighStatesNeverHalt(t *testing.T) {
	space, err := rules.NewSpace(squareTopo(t, 2, false), 5, 2, false)
	require.NoError(t, err)
	for st := 0; st < 5; st++ {
		for c := 0; c < 2; c++ {
			moves := space.Values(space.Slot(st, c, rules.SlotMove))
			if st < 3 {
				assert.Equal(t, core.Halt, moves[0])
			} else {
				assert.NotContains(t, moves, core.Halt)
			}
		}
	}
}

func TestUncanonicalSpaceIsFullProduct(t *testing.T) {
	space, err := rules.NewSpace(squareTopo(t, 2, false), 2, 2, false)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(160000), space.Total())
}

func TestTotalExceedsUint64(t *testing.T) {
	space, err := rules.NewSpace(squareTopo(t, 4, false), 8, 8, true)
	require.NoError(t, err)
	want := big.NewInt(1)
	for i := 0; i < space.Len(); i++ {
		want.Mul(want, big.NewInt(int64(len(space.Values(i)))))
	}
	assert.False(t, space.Total().IsUint64())
	assert.Zero(t, want.Cmp(space.Total()))
}

func TestPolicyNeedsEnoughSymbols(t *testing.T) {
	_, err := rules.NewSpace(squareTopo(t, 2, false), 2, 1, true)
	require.ErrorIs(t, err, rules.ErrEmptySlot)
	_, err = rules.NewSpace(squareTopo(t, 2, false), 0, 2, true)
	require.ErrorIs(t, err, rules.ErrBadShape)

	space, err := rules.NewSpace(squareTopo(t, 2, false), 2, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 6, space.Len())
}

func TestAcceptShapes(t *testing.T) {
	space, err := rules.NewSpace(squareTopo(t, 2, false), 2, 2, true)
	require.NoError(t, err)
	accept := func(r rules.Rule) bool {
		t.Helper()
		tbl, err := space.Encode(r)
		require.NoError(t, err)
		return space.Accept(tbl)
	}

	r := rules.NewRule(2, 2)
	r.Set(0, 0, 1, 1, 1)
	r.Set(0, 1, 0, 3, 0)
	r.Set(1, 0, 1, 0, 0) // halt on the first blank cell
	r.Set(1, 1, 1, 4, 1)
	assert.True(t, accept(r), "halting in state 1 on the second step is canonical")

	wrongWrite := r.Clone()
	wrongWrite.Set(1, 0, 0, 0, 0)
	assert.False(t, accept(wrongWrite))

	wrongNext := r.Clone()
	wrongNext.Set(1, 0, 1, 0, 1)
	assert.False(t, accept(wrongNext))

	twoHalts := r.Clone()
	twoHalts.Set(1, 1, 1, 0, 0)
	assert.False(t, accept(twoHalts))

	zip := r.Clone()
	zip.Set(1, 0, 1, 3, 0) // back to state 0 heading North: zips off
	zip.Set(1, 1, 1, 0, 0)
	assert.False(t, accept(zip))

	home := zip.Clone()
	home.Set(1, 0, 1, 2, 0) // back to state 0 heading West onto the origin
	assert.True(t, accept(home))

	free, err := rules.NewSpace(squareTopo(t, 2, false), 2, 2, false)
	require.NoError(t, err)
	tbl, err := free.Encode(zip)
	require.NoError(t, err)
	assert.True(t, free.Accept(tbl), "zip-off pruning belongs to the canonical policy")
}

func TestEncodeRejectsIllegalValues(t *testing.T) {
	space, err := rules.NewSpace(squareTopo(t, 2, false), 2, 2, true)
	require.NoError(t, err)
	r := rules.NewRule(2, 2)
	r.Set(0, 0, 0, 1, 1)
	_, err = space.Encode(r)
	require.ErrorIs(t, err, rules.ErrIllegalValue)
	_, err = space.Encode(rules.NewRule(3, 2))
	require.ErrorIs(t, err, rules.ErrIllegalValue)
}

func TestResolveRoundTrip(t *testing.T) {
	space, err := rules.NewSpace(hex.New(false), 3, 2, true)
	require.NoError(t, err)
	e := rules.NewEnumerator(space)
	var r rules.Rule
	for i := 0; i < 5000 && e.Advance(); i++ {
		space.Resolve(e.Table(), &r)
		back, err := space.Encode(r)
		require.NoError(t, err)
		require.Equal(t, e.Table(), back)
	}
}

func mustTri(t *testing.T) core.Topology {
	t.Helper()
	tr, err := tri.New(true)
	require.NoError(t, err)
	return tr
}
