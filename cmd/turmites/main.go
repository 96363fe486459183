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

	"turmites/internal/ctxlog"
	_ "turmites/internal/grids/hex"
	_ "turmites/internal/grids/square"
	_ "turmites/internal/grids/tri"
	"turmites/internal/render"
	"turmites/internal/search"
)

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

// run parses args and executes one search. Settings come from the defaults,
// then the -config file, then the flags given on the command line.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := search.DefaultConfig()
	fs := flag.NewFlagSet("turmites", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.Bind(fs)
	configPath := fs.String("config", "", "HCL file with search settings; command-line flags override it")
	logLevel := fs.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	compare := fs.Bool("compare-pruning", false, "run the pruned and the unpruned search and compare their records")
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

	if *configPath != "" {
		set := make(map[string]string)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
		if cfg, err = search.LoadFile(ctx, *configPath, search.DefaultConfig()); err != nil {
			return err
		}
		if err := cfg.Apply(set); err != nil {
			return err
		}
	}

	topo, err := cfg.NewTopology()
	if err != nil {
		return err
	}

	if *compare {
		res, err := search.ComparePruning(ctx, cfg, topo)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Pruned:   %s machines, best steps %d, best score %d\n", res.Pruned.Total, res.Pruned.BestSteps, res.Pruned.BestPopulation)
		fmt.Fprintf(stdout, "Unpruned: %s machines, best steps %d, best score %d\n", res.Unpruned.Total, res.Unpruned.BestSteps, res.Unpruned.BestPopulation)
		if !res.Agree() {
			return errors.New("pruning discarded a record holder")
		}
		return nil
	}

	name := filepath.Join(cfg.OutputDir, cfg.OutputName(topo))
	fmt.Fprintf(stdout, "Saving results to: %s\n", name)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	var renderer search.Renderer
	if cfg.Images {
		exp, err := render.NewExporter(topo, cfg.OutputDir, cfg.States, cfg.Colors, cfg.CellSize)
		if err != nil {
			logger.Warn("Snapshots disabled.", "error", err)
		} else {
			renderer = exp
		}
	}

	s, err := search.New(cfg, topo, io.MultiWriter(f, stdout), stdout, renderer)
	if err != nil {
		return err
	}
	if _, err := s.Run(ctx); err != nil {
		return err
	}
	return f.Close()
}
