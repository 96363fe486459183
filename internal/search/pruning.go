package search

import (
	"context"
	"io"

	"turmites/internal/core"
	"turmites/internal/ctxlog"
)

// Comparison holds a pruned and an unpruned search over the same bounds.
type Comparison struct {
	Pruned   Summary
	Unpruned Summary
}

// Agree reports whether both searches found the same best steps and
// population. Disagreement means the pruning discarded a record holder.
func (c Comparison) Agree() bool {
	return c.Pruned.BestSteps == c.Unpruned.BestSteps && c.Pruned.BestPopulation == c.Unpruned.BestPopulation
}

// ComparePruning runs cfg with and without the first-transition rules. It
// is meant for small state and color counts; the unpruned space grows fast.
func ComparePruning(ctx context.Context, cfg Config, topo core.Topology) (Comparison, error) {
	var cmp Comparison
	for _, prune := range []bool{true, false} {
		c := cfg
		c.Prune = prune
		s, err := New(c, topo, io.Discard, nil, nil)
		if err != nil {
			return cmp, err
		}
		sum, err := s.Run(ctx)
		if err != nil {
			return cmp, err
		}
		if prune {
			cmp.Pruned = sum
		} else {
			cmp.Unpruned = sum
		}
	}
	ctxlog.FromContext(ctx).Info("Pruning comparison finished.",
		"pruned_total", cmp.Pruned.Total.String(), "unpruned_total", cmp.Unpruned.Total.String(),
		"pruned_best_steps", cmp.Pruned.BestSteps, "unpruned_best_steps", cmp.Unpruned.BestSteps,
		"pruned_best_population", cmp.Pruned.BestPopulation, "unpruned_best_population", cmp.Unpruned.BestPopulation,
		"agree", cmp.Agree())
	return cmp, nil
}
