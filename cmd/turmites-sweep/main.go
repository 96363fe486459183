package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"turmites/internal/core"
	"turmites/internal/ctxlog"
	_ "turmites/internal/grids/hex"
	_ "turmites/internal/grids/square"
	_ "turmites/internal/grids/tri"
	"turmites/internal/render"
	"turmites/internal/search"
)

type point struct {
	states int
	colors int
}

func (p point) String() string { return fmt.Sprintf("%ds %dc", p.states, p.colors) }

type pointResult struct {
	point   point
	summary search.Summary
	elapsed time.Duration
	err     error
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run searches every (states, colors) point of the grid concurrently, each
// point an independent search writing its own results file.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := search.DefaultConfig()
	cfg.Images = false
	fs := flag.NewFlagSet("turmites-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.Bind(fs)
	statesMin := fs.Int("states-min", 1, "smallest number of states")
	statesMax := fs.Int("states-max", 2, "largest number of states")
	colorsMin := fs.Int("colors-min", 2, "smallest number of colors")
	colorsMax := fs.Int("colors-max", 3, "largest number of colors")
	workers := fs.Int("workers", runtime.NumCPU(), "number of concurrent searches")
	logLevel := fs.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	logger, err := ctxlog.NewLogger(*logLevel, *logFormat, stderr)
	if err != nil {
		return err
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	if *workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", *workers)
	}
	var points []point
	for s := *statesMin; s <= *statesMax; s++ {
		for c := *colorsMin; c <= *colorsMax; c++ {
			points = append(points, point{states: s, colors: c})
		}
	}
	if len(points) == 0 {
		return errors.New("empty sweep: check the -states-* and -colors-* ranges")
	}
	topo, err := cfg.NewTopology()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Sweeping %d parameter points over %s (%d workers, %d steps, radius %d)\n",
		len(points), topo.Name(), *workers, cfg.MaxSteps, cfg.Radius)

	results := make([]pointResult, len(points))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	start := time.Now()
	for i, p := range points {
		g.Go(func() error {
			res := runPoint(gctx, cfg, topo, p)
			results[i] = res
			if errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded) {
				return res.err
			}
			if res.err != nil {
				logger.Warn("Sweep point failed.", "point", p.String(), "error", res.err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(stdout, "\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	var best *pointResult
	for i := range results {
		res := &results[i]
		if res.err != nil {
			fmt.Fprintf(stdout, "%s: error: %v\n", res.point, res.err)
			continue
		}
		sum := res.summary
		fmt.Fprintf(stdout, "%s: %s machines, tested %d, best steps %d, best score %d (%s)\n",
			res.point, sum.Total, sum.Tested, sum.BestSteps, sum.BestPopulation, res.elapsed.Round(time.Millisecond))
		if best == nil || sum.BestSteps > best.summary.BestSteps {
			best = res
		}
	}
	if best != nil {
		fmt.Fprintf(stdout, "\nBest overall: %s with %d steps (popn. %d)\n", best.point, best.summary.BestSteps, best.summary.BestPopulation)
	}
	return nil
}

func runPoint(ctx context.Context, base search.Config, topo core.Topology, p point) (res pointResult) {
	res.point = p
	start := time.Now()
	defer func() { res.elapsed = time.Since(start) }()

	cfg := base
	cfg.States, cfg.Colors = p.states, p.colors
	f, err := os.Create(filepath.Join(cfg.OutputDir, cfg.OutputName(topo)))
	if err != nil {
		res.err = err
		return res
	}
	defer f.Close()

	var renderer search.Renderer
	if cfg.Images {
		if exp, err := render.NewExporter(topo, cfg.OutputDir, cfg.States, cfg.Colors, cfg.CellSize); err == nil {
			renderer = exp
		}
	}
	s, err := search.New(cfg, topo, f, nil, renderer)
	if err != nil {
		res.err = err
		return res
	}
	res.summary, res.err = s.Run(ctx)
	if res.err == nil {
		res.err = f.Close()
	}
	return res
}
