package sim

import (
	"errors"
	"fmt"

	"turmites/internal/core"
	"turmites/internal/rules"
)

// ErrRuleShape reports a rule that does not fit the simulator.
var ErrRuleShape = errors.New("sim: rule does not fit simulator")

// Status is the state of a run.
type Status int

const (
	// Running means the machine may take another step.
	Running Status = iota
	// Halted means the machine executed its halt transition.
	Halted
	// Escaped means the head left the bounded grid.
	Escaped
	// Exhausted means the step budget ran out; the run is inconclusive.
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Escaped:
		return "escaped"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome summarizes one run.
type Outcome struct {
	Steps      int
	Population int
	Halted     bool
	Escaped    bool
}

// Simulator runs rule tables on a bounded grid. The grid is reused between
// runs and cleared on Reset.
type Simulator struct {
	topo     core.Topology
	geo      geometry
	grid     *core.Grid
	cells    []uint8
	strides  []int
	states   int
	colors   int
	maxSteps int

	rule       []uint8
	pos        []int
	cell       int
	state      uint8
	heading    uint8
	population int
	steps      int
	status     Status
}

// New allocates a simulator for tables of the given shape on a grid of
// side 2*radius+1. A grid too large to allocate yields core.ErrGridTooLarge.
func New(topo core.Topology, states, colors, radius, maxSteps int) (*Simulator, error) {
	if states < 1 || colors < 1 {
		return nil, fmt.Errorf("%w: %d states, %d colors", ErrRuleShape, states, colors)
	}
	if maxSteps < 0 {
		return nil, fmt.Errorf("sim: step budget must not be negative, got %d", maxSteps)
	}
	grid, err := core.NewGrid(topo.Dim(), radius)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		topo:     topo,
		geo:      compile(topo),
		grid:     grid,
		cells:    grid.Cells(),
		strides:  grid.Strides(),
		states:   states,
		colors:   colors,
		maxSteps: maxSteps,
		pos:      make([]int, topo.Dim()),
	}, nil
}

// Topology returns the simulated topology.
func (s *Simulator) Topology() core.Topology { return s.topo }

// Grid returns the grid of the current or last run.
func (s *Simulator) Grid() *core.Grid { return s.grid }

// Position returns the head coordinates. The slice must not be modified.
func (s *Simulator) Position() []int { return s.pos }

// State returns the machine state.
func (s *Simulator) State() uint8 { return s.state }

// Heading returns the head orientation; only relative topologies use it.
func (s *Simulator) Heading() uint8 { return s.heading }

// Steps returns the number of steps executed so far.
func (s *Simulator) Steps() int { return s.steps }

// Population returns the number of non-blank cells.
func (s *Simulator) Population() int { return s.population }

// Status returns the run status.
func (s *Simulator) Status() Status { return s.status }

// Outcome returns the summary of the current run.
func (s *Simulator) Outcome() Outcome {
	return Outcome{
		Steps:      s.steps,
		Population: s.population,
		Halted:     s.status == Halted,
		Escaped:    s.status == Escaped,
	}
}

// Load validates r and resets the simulator to run it.
func (s *Simulator) Load(r rules.Rule) error {
	if r.States != s.states || r.Colors != s.colors || len(r.Cells) != s.states*s.colors*rules.Slots {
		return fmt.Errorf("%w: rule is %dx%d, simulator is %dx%d", ErrRuleShape, r.States, r.Colors, s.states, s.colors)
	}
	for st := 0; st < r.States; st++ {
		for c := 0; c < r.Colors; c++ {
			if int(r.Write(st, c)) >= s.colors || int(r.Move(st, c)) >= s.geo.moves || int(r.Next(st, c)) >= s.states {
				return fmt.Errorf("%w: entry (%d,%d) out of range", ErrRuleShape, st, c)
			}
		}
	}
	s.Reset(r)
	return nil
}

// Reset clears the grid and places the head at the center in state 0. The
// rule must come from a rules.Space of the simulator's shape; use Load for
// untrusted input.
func (s *Simulator) Reset(r rules.Rule) {
	s.grid.Clear()
	s.grid.Center(s.pos)
	s.cell = s.grid.Index(s.pos)
	s.rule = r.Cells
	s.state = 0
	s.heading = s.geo.start
	s.population = 0
	s.steps = 0
	s.status = Running
}

// Run executes r until it halts, escapes or exhausts the step budget.
func (s *Simulator) Run(r rules.Rule) Outcome {
	s.Reset(r)
	for s.Step() == Running {
	}
	return s.Outcome()
}

// Step executes one transition: write, then halt or move, then adopt the
// new state and heading. A halting step counts; an escaping step does not.
func (s *Simulator) Step() Status {
	if s.status != Running {
		return s.status
	}
	if s.steps >= s.maxSteps {
		s.status = Exhausted
		return s.status
	}
	color := s.cells[s.cell]
	base := (int(s.state)*s.colors + int(color)) * rules.Slots
	write := s.rule[base+rules.SlotWrite]
	move := s.rule[base+rules.SlotMove]
	if write != color {
		s.cells[s.cell] = write
		if color == 0 {
			s.population++
		} else if write == 0 {
			s.population--
		}
	}
	if move == core.Halt {
		s.steps++
		s.status = Halted
		return s.status
	}
	parity := 0
	if s.geo.parities > 1 {
		parity = (s.pos[0] + s.pos[1]) & 1
	}
	d := s.geo.offset(parity, s.heading, move)
	side := s.grid.Side
	for axis, dv := range d {
		p := s.pos[axis] + dv
		if p < 0 || p >= side {
			s.status = Escaped
			return s.status
		}
	}
	for axis, dv := range d {
		s.pos[axis] += dv
		s.cell += dv * s.strides[axis]
	}
	s.state = s.rule[base+rules.SlotNext]
	s.heading = s.geo.heading[int(s.heading)*s.geo.moves+int(move)]
	s.steps++
	return s.status
}
