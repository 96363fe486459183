// Package search drives the exhaustive busy-beaver hunt: it enumerates the
// pruned rule space, simulates every accepted table and keeps the records.
package search

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"turmites/internal/core"
	"turmites/internal/rules"
)

// ErrConfig reports an invalid search configuration.
var ErrConfig = errors.New("search: invalid configuration")

// Config holds the fixed parameters of one search run.
type Config struct {
	Topology   string
	Dim        int
	Relative   bool
	States     int
	Colors     int
	Radius     int
	MaxSteps   int
	PrintEvery int
	Prune      bool
	OutputDir  string
	Images     bool
	// CellSize is the snapshot edge length in pixels; 0 picks the topology default.
	CellSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Topology:   "square",
		Dim:        2,
		States:     2,
		Colors:     2,
		Radius:     20,
		MaxSteps:   10000,
		PrintEvery: 10000,
		Prune:      true,
		OutputDir:  ".",
		Images:     true,
	}
}

// FromMap populates a Config from a string map keyed by flag names.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	err := c.Apply(cfg)
	return c, err
}

// Apply overrides the fields named in cfg.
func (c *Config) Apply(cfg map[string]string) error {
	for key, v := range cfg {
		var err error
		switch key {
		case "topology":
			c.Topology = v
		case "dim":
			c.Dim, err = strconv.Atoi(v)
		case "relative":
			c.Relative, err = strconv.ParseBool(v)
		case "states":
			c.States, err = strconv.Atoi(v)
		case "colors":
			c.Colors, err = strconv.Atoi(v)
		case "radius":
			c.Radius, err = strconv.Atoi(v)
		case "max-steps":
			c.MaxSteps, err = strconv.Atoi(v)
		case "print-every":
			c.PrintEvery, err = strconv.Atoi(v)
		case "prune":
			c.Prune, err = strconv.ParseBool(v)
		case "out-dir":
			c.OutputDir = v
		case "images":
			c.Images, err = strconv.ParseBool(v)
		case "cell-size":
			c.CellSize, err = strconv.Atoi(v)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrConfig, key, v, err)
		}
	}
	return nil
}

// Bind registers one flag per field on fs, defaulting to the current values.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Topology, "topology", c.Topology, fmt.Sprintf("grid topology %v", core.TopologyNames()))
	fs.IntVar(&c.Dim, "dim", c.Dim, "number of dimensions (square grids only)")
	fs.BoolVar(&c.Relative, "relative", c.Relative, "relative (turn) movement instead of absolute directions")
	fs.IntVar(&c.States, "states", c.States, "number of machine states")
	fs.IntVar(&c.Colors, "colors", c.Colors, "number of cell colors")
	fs.IntVar(&c.Radius, "radius", c.Radius, "grid radius; machines moving further count as escaped")
	fs.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "step budget per machine")
	fs.IntVar(&c.PrintEvery, "print-every", c.PrintEvery, "report progress every N candidates")
	fs.BoolVar(&c.Prune, "prune", c.Prune, "apply the symmetry-breaking first-transition rules")
	fs.StringVar(&c.OutputDir, "out-dir", c.OutputDir, "directory for the results file and snapshots")
	fs.BoolVar(&c.Images, "images", c.Images, "write a PNG snapshot for every record (1D and 2D grids)")
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "snapshot cell size in pixels, 0 for the topology default")
}

// Validate checks ranges that do not depend on the topology.
func (c Config) Validate() error {
	switch {
	case c.Topology == "":
		return fmt.Errorf("%w: topology is required", ErrConfig)
	case c.States < 1 || c.States > rules.MaxSymbols:
		return fmt.Errorf("%w: states must lie in [1, %d], got %d", ErrConfig, rules.MaxSymbols, c.States)
	case c.Colors < 1 || c.Colors > rules.MaxSymbols:
		return fmt.Errorf("%w: colors must lie in [1, %d], got %d", ErrConfig, rules.MaxSymbols, c.Colors)
	case c.Dim < 1:
		return fmt.Errorf("%w: dim must be positive, got %d", ErrConfig, c.Dim)
	case c.Radius < 0:
		return fmt.Errorf("%w: radius must not be negative, got %d", ErrConfig, c.Radius)
	case c.MaxSteps < 0:
		return fmt.Errorf("%w: max-steps must not be negative, got %d", ErrConfig, c.MaxSteps)
	case c.PrintEvery < 1:
		return fmt.Errorf("%w: print-every must be positive, got %d", ErrConfig, c.PrintEvery)
	case c.CellSize < 0:
		return fmt.Errorf("%w: cell-size must not be negative, got %d", ErrConfig, c.CellSize)
	}
	return nil
}

// TopologyOptions returns the options handed to the topology factory.
func (c Config) TopologyOptions() map[string]string {
	return map[string]string{
		"dim":      strconv.Itoa(c.Dim),
		"relative": strconv.FormatBool(c.Relative),
	}
}

// NewTopology validates c and builds its topology.
func (c Config) NewTopology() (core.Topology, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return core.NewTopology(c.Topology, c.TopologyOptions())
}

// OutputName returns the results file name for a search over topo.
func (c Config) OutputName(topo core.Topology) string {
	movement := "absolute"
	if topo.Relative() {
		movement = "relative"
	}
	switch topo.Name() {
	case "square":
		return fmt.Sprintf("found_%dd_%s_%ds_%dc.txt", topo.Dim(), movement, c.States, c.Colors)
	case "tri":
		return fmt.Sprintf("found_tri_%dd_%ds_%dc.txt", topo.Dim(), c.States, c.Colors)
	}
	return fmt.Sprintf("found_%s_%dd_%s_%ds_%dc.txt", topo.Name(), topo.Dim(), movement, c.States, c.Colors)
}

// Parameters returns the configuration as a snapshot for logs and the viewer.
func (c Config) Parameters() core.ParameterSnapshot {
	itoa := strconv.Itoa
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "machine",
			Params: []core.Parameter{
				{Key: "topology", Label: "Topology", Type: core.ParamTypeString, Value: c.Topology},
				{Key: "dim", Label: "Dimensions", Type: core.ParamTypeInt, Value: itoa(c.Dim)},
				{Key: "relative", Label: "Relative", Type: core.ParamTypeBool, Value: strconv.FormatBool(c.Relative)},
				{Key: "states", Label: "States", Type: core.ParamTypeInt, Value: itoa(c.States)},
				{Key: "colors", Label: "Colors", Type: core.ParamTypeInt, Value: itoa(c.Colors)},
			},
		},
		{
			Name: "bounds",
			Params: []core.Parameter{
				{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Value: itoa(c.Radius)},
				{Key: "max-steps", Label: "Max steps", Type: core.ParamTypeInt, Value: itoa(c.MaxSteps)},
				{Key: "prune", Label: "Pruning", Type: core.ParamTypeBool, Value: strconv.FormatBool(c.Prune)},
			},
		},
	}}
}
