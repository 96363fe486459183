package app

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"turmites/internal/core"
	"turmites/internal/rules"
	"turmites/internal/sim"
)

// ErrNoRule reports a viewer started without a rule to replay.
var ErrNoRule = errors.New("app: no rule given, use -rule or -rule-file")

// Config holds the replay viewer settings.
type Config struct {
	Topology      string
	Dim           int
	Relative      bool
	Radius        int
	MaxSteps      int
	Rule          string
	RuleFile      string
	Scale         int
	CellSize      int
	TPS           int
	StepsPerFrame int
}

// NewConfig returns the default viewer configuration.
func NewConfig() Config {
	return Config{
		Topology:      "square",
		Dim:           2,
		Radius:        50,
		MaxSteps:      1000000,
		Scale:         4,
		TPS:           30,
		StepsPerFrame: 1,
	}
}

// Bind registers the viewer flags on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Topology, "topology", c.Topology, fmt.Sprintf("grid topology %v", core.TopologyNames()))
	fs.IntVar(&c.Dim, "dim", c.Dim, "number of dimensions (square grids only)")
	fs.BoolVar(&c.Relative, "relative", c.Relative, "relative (turn) movement instead of absolute directions")
	fs.IntVar(&c.Radius, "radius", c.Radius, "grid radius")
	fs.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "stop after this many steps")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule table, e.g. {{{1,'E',1},{1,'',0}},{{1,'',0},{1,'',0}}}")
	fs.StringVar(&c.RuleFile, "rule-file", c.RuleFile, "results file; the last record in it is replayed")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per image pixel")
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "hexagon side or triangle base in pixels, 0 for the default")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.StepsPerFrame, "steps", c.StepsPerFrame, "machine steps per tick")
}

// Load builds the topology, parses the rule and returns a simulator ready
// to step through it.
func (c Config) Load() (*sim.Simulator, rules.Rule, error) {
	topo, err := core.NewTopology(c.Topology, map[string]string{
		"dim":      strconv.Itoa(c.Dim),
		"relative": strconv.FormatBool(c.Relative),
	})
	if err != nil {
		return nil, rules.Rule{}, err
	}
	text := c.Rule
	if text == "" && c.RuleFile != "" {
		if text, err = LastRecord(c.RuleFile); err != nil {
			return nil, rules.Rule{}, err
		}
	}
	if text == "" {
		return nil, rules.Rule{}, ErrNoRule
	}
	r, err := rules.Parse(text, topo)
	if err != nil {
		return nil, rules.Rule{}, err
	}
	s, err := sim.New(topo, r.States, r.Colors, c.Radius, c.MaxSteps)
	if err != nil {
		return nil, rules.Rule{}, err
	}
	if err := s.Load(r); err != nil {
		return nil, rules.Rule{}, err
	}
	return s, r, nil
}

// LastRecord returns the last record line of a results file.
func LastRecord(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	var last string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if line := sc.Text(); strings.Contains(line, "(popn. ") {
			last = line
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if last == "" {
		return "", fmt.Errorf("%w: %s holds no records", ErrNoRule, path)
	}
	return last, nil
}

// StatusLines describes the running machine for the HUD.
func StatusLines(s *sim.Simulator) []string {
	lines := []string{
		fmt.Sprintf("Status: %s", s.Status()),
		fmt.Sprintf("Steps: %d", s.Steps()),
		fmt.Sprintf("Population: %d", s.Population()),
		fmt.Sprintf("State: %d", s.State()),
	}
	if s.Topology().Relative() {
		lines = append(lines, fmt.Sprintf("Heading: %d", s.Heading()))
	}
	pos := make([]string, len(s.Position()))
	for i, p := range s.Position() {
		pos[i] = strconv.Itoa(p - s.Grid().Radius)
	}
	return append(lines, "Position: ("+strings.Join(pos, ",")+")")
}
