package search

import (
	"context"
	"fmt"
	"io"

	"turmites/internal/core"
	"turmites/internal/ctxlog"
	"turmites/internal/rules"
	"turmites/internal/sim"
)

// Renderer receives the final grid of every record-setting machine.
type Renderer interface {
	Render(grid *core.Grid, steps, population int) error
}

// Record is a halting machine that beat the best steps, the best
// population, or both.
type Record struct {
	Steps      int
	Population int
	StepsBest  bool
	ScoreBest  bool
	Rule       rules.Rule
}

// Line renders r the way the results file shows it.
func (r Record) Line(topo core.Topology) string {
	return fmt.Sprintf("%d (popn. %d): %s", r.Steps, r.Population, rules.Format(r.Rule, topo))
}

// Tracker keeps the running maxima of a search and reports improvements.
type Tracker struct {
	topo     core.Topology
	out      io.Writer
	renderer Renderer

	bestSteps int
	bestPop   int
	records   []Record
}

// NewTracker reports records to out. renderer may be nil.
func NewTracker(topo core.Topology, out io.Writer, renderer Renderer) *Tracker {
	return &Tracker{topo: topo, out: out, renderer: renderer, bestSteps: -1, bestPop: -1}
}

// Best returns the best steps and population seen, -1 before any halt.
func (t *Tracker) Best() (steps, population int) { return t.bestSteps, t.bestPop }

// Records returns the reported records in order.
func (t *Tracker) Records() []Record { return t.records }

// Observe compares a finished run with the maxima. Non-halting outcomes and
// halts that beat neither maximum are ignored. The error is a failure to
// write the results; rendering failures are only logged.
func (t *Tracker) Observe(ctx context.Context, out sim.Outcome, r rules.Rule, grid *core.Grid) (Record, bool, error) {
	if !out.Halted {
		return Record{}, false, nil
	}
	rec := Record{
		Steps:      out.Steps,
		Population: out.Population,
		StepsBest:  out.Steps > t.bestSteps,
		ScoreBest:  out.Population > t.bestPop,
	}
	if !rec.StepsBest && !rec.ScoreBest {
		return Record{}, false, nil
	}
	rec.Rule = r.Clone()
	if rec.StepsBest {
		t.bestSteps = out.Steps
		if _, err := io.WriteString(t.out, "New steps record:\n"); err != nil {
			return rec, true, err
		}
	}
	if rec.ScoreBest {
		t.bestPop = out.Population
		if _, err := io.WriteString(t.out, "New high score:\n"); err != nil {
			return rec, true, err
		}
	}
	if _, err := fmt.Fprintln(t.out, rec.Line(t.topo)); err != nil {
		return rec, true, err
	}
	t.records = append(t.records, rec)

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Record found.", "steps", rec.Steps, "population", rec.Population, "steps_record", rec.StepsBest, "score_record", rec.ScoreBest)
	if t.renderer != nil && grid != nil {
		if err := t.renderer.Render(grid, rec.Steps, rec.Population); err != nil {
			logger.Warn("Snapshot failed.", "steps", rec.Steps, "population", rec.Population, "error", err)
		}
	}
	return rec, true, nil
}
