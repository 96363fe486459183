package search

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"turmites/internal/core"
	"turmites/internal/ctxlog"
	"turmites/internal/rules"
	"turmites/internal/sim"
)

// Summary is the result of a search run.
type Summary struct {
	Total          *big.Int
	Tried          uint64
	Tested         uint64
	BestSteps      int
	BestPopulation int
	Records        []Record
	// Completed is false when the context ended the run early.
	Completed bool
}

// Search owns one enumeration and its simulator. It is not safe for
// concurrent use; run independent searches for parallelism.
type Search struct {
	cfg      Config
	topo     core.Topology
	space    *rules.Space
	sim      *sim.Simulator
	tracker  *Tracker
	results  io.Writer
	progress io.Writer
}

// New prepares a search over topo. The results log goes to results, the
// periodic progress line to progress (nil discards it). renderer may be nil.
func New(cfg Config, topo core.Topology, results, progress io.Writer, renderer Renderer) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	space, err := rules.NewSpace(topo, cfg.States, cfg.Colors, cfg.Prune)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(topo, cfg.States, cfg.Colors, cfg.Radius, cfg.MaxSteps)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Search{
		cfg:      cfg,
		topo:     topo,
		space:    space,
		sim:      s,
		tracker:  NewTracker(topo, results, renderer),
		results:  results,
		progress: progress,
	}, nil
}

// Space returns the rule space being enumerated.
func (s *Search) Space() *rules.Space { return s.space }

// Run enumerates the whole space. Cancelling ctx stops the run at the next
// progress report; the partial summary is returned with ctx's error.
func (s *Search) Run(ctx context.Context) (Summary, error) {
	logger := ctxlog.FromContext(ctx)
	sum := Summary{Total: s.space.Total()}
	if _, err := fmt.Fprintf(s.results, "Total number of machines: %s\n", sum.Total); err != nil {
		return sum, fmt.Errorf("writing results: %w", err)
	}
	logger.Info("Search started.", append([]any{"total", sum.Total.String()}, s.cfg.Parameters().LogAttrs()...)...)

	en := rules.NewEnumerator(s.space)
	var rule rules.Rule
	until := s.cfg.PrintEvery
	for en.Advance() {
		if en.Accept() {
			s.space.Resolve(en.Table(), &rule)
			out := s.sim.Run(rule)
			sum.Tested++
			if out.Halted {
				if _, _, err := s.tracker.Observe(ctx, out, rule, s.sim.Grid()); err != nil {
					s.fill(&sum, en)
					return sum, fmt.Errorf("writing results: %w", err)
				}
			}
		}
		until--
		if until > 0 {
			continue
		}
		until = s.cfg.PrintEvery
		s.fill(&sum, en)
		s.report(sum)
		if err := ctx.Err(); err != nil {
			logger.Warn("Search interrupted.", "tried", sum.Tried, "tested", sum.Tested)
			return sum, err
		}
	}
	s.fill(&sum, en)
	sum.Completed = true
	if _, err := fmt.Fprintf(s.results, "Run completed. If better machines exist then they take more than %d steps or move more than %d squares from the starting position.\n", s.cfg.MaxSteps, s.cfg.Radius); err != nil {
		return sum, fmt.Errorf("writing results: %w", err)
	}
	logger.Info("Search completed.", "tried", sum.Tried, "tested", sum.Tested, "best_steps", sum.BestSteps, "best_population", sum.BestPopulation)
	return sum, nil
}

func (s *Search) fill(sum *Summary, en *rules.Enumerator) {
	sum.Tried = en.Tried()
	sum.BestSteps, sum.BestPopulation = s.tracker.Best()
	sum.Records = s.tracker.Records()
}

func (s *Search) report(sum Summary) {
	fmt.Fprintf(s.progress, "Tried: %d (%s%%) Tested: %d Best steps: %d Best score: %d\n",
		sum.Tried, Percent(sum.Tried, sum.Total), sum.Tested, sum.BestSteps, sum.BestPopulation)
}

// Percent formats 100*tried/total with six significant digits.
func Percent(tried uint64, total *big.Int) string {
	if total.Sign() == 0 {
		return "0"
	}
	pct := new(big.Float).SetUint64(tried)
	pct.Mul(pct, big.NewFloat(100))
	pct.Quo(pct, new(big.Float).SetInt(total))
	return pct.Text('g', 6)
}
