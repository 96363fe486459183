package search_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"turmites/internal/core"
	"turmites/internal/grids/square"
	"turmites/internal/rules"
	"turmites/internal/search"
	"turmites/internal/sim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	calls [][2]int
	err   error
}

func (f *fakeRenderer) Render(_ *core.Grid, steps, population int) error {
	f.calls = append(f.calls, [2]int{steps, population})
	return f.err
}

func TestTrackerReportsIndependentMaxima(t *testing.T) {
	topo, err := square.New(2, false)
	require.NoError(t, err)
	grid, err := core.NewGrid(2, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	renderer := &fakeRenderer{}
	tr := search.NewTracker(topo, &buf, renderer)
	r := rules.NewRule(1, 1)
	ctx := context.Background()

	steps, pop := tr.Best()
	assert.Equal(t, -1, steps)
	assert.Equal(t, -1, pop)

	outcomes := []struct {
		out    sim.Outcome
		record bool
	}{
		{sim.Outcome{Steps: 3, Population: 2, Halted: true}, true},
		{sim.Outcome{Steps: 3, Population: 2, Halted: true}, false},
		{sim.Outcome{Steps: 2, Population: 5, Halted: true}, true},
		{sim.Outcome{Steps: 7, Population: 1, Halted: true}, true},
		{sim.Outcome{Steps: 100, Population: 100, Escaped: true}, false},
		{sim.Outcome{Steps: 100, Population: 100}, false},
	}
	for _, o := range outcomes {
		_, ok, err := tr.Observe(ctx, o.out, r, grid)
		require.NoError(t, err)
		assert.Equal(t, o.record, ok, "%+v", o.out)
	}

	want := "New steps record:\nNew high score:\n3 (popn. 2): {{{0,'',0}}}\n" +
		"New high score:\n2 (popn. 5): {{{0,'',0}}}\n" +
		"New steps record:\n7 (popn. 1): {{{0,'',0}}}\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, [][2]int{{3, 2}, {2, 5}, {7, 1}}, renderer.calls)

	steps, pop = tr.Best()
	assert.Equal(t, 7, steps)
	assert.Equal(t, 5, pop)
	require.Len(t, tr.Records(), 3)
	assert.True(t, tr.Records()[1].ScoreBest)
	assert.False(t, tr.Records()[1].StepsBest)
}

func TestTrackerKeepsRuleCopies(t *testing.T) {
	topo, err := square.New(2, false)
	require.NoError(t, err)
	tr := search.NewTracker(topo, &bytes.Buffer{}, nil)

	r := rules.NewRule(1, 2)
	r.Set(0, 0, 1, 1, 0)
	_, ok, err := tr.Observe(context.Background(), sim.Outcome{Steps: 1, Population: 1, Halted: true}, r, nil)
	require.NoError(t, err)
	require.True(t, ok)

	r.Set(0, 0, 0, 0, 0)
	assert.Equal(t, uint8(1), tr.Records()[0].Rule.Write(0, 0))
}

func TestTrackerIgnoresRenderFailure(t *testing.T) {
	topo, err := square.New(1, false)
	require.NoError(t, err)
	grid, err := core.NewGrid(1, 2)
	require.NoError(t, err)
	renderer := &fakeRenderer{err: errors.New("no space left")}
	tr := search.NewTracker(topo, &bytes.Buffer{}, renderer)

	_, ok, err := tr.Observe(context.Background(), sim.Outcome{Steps: 4, Population: 1, Halted: true}, rules.NewRule(1, 1), grid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, renderer.calls, 1)
}
