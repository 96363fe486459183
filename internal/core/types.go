package core

import (
	"errors"
	"fmt"
	"sort"
)

// Halt is the move code that stops the machine.
const Halt uint8 = 0

var (
	// ErrRelativeUnsupported reports relative movement requested for a
	// dimensionality without an orientation model.
	ErrRelativeUnsupported = errors.New("relative movement is only supported for 1D and 2D grids")
	// ErrAbsoluteUnsupported reports absolute movement requested for a
	// tessellation whose cells have no shared compass.
	ErrAbsoluteUnsupported = errors.New("absolute movement is not supported for this topology")
	// ErrUnknownTopology reports a topology name missing from the registry.
	ErrUnknownTopology = errors.New("unknown topology")
)

// Policy is the symmetry-breaking pruning applied to a topology's rule space.
// Empty First* lists leave the corresponding slot unrestricted.
type Policy struct {
	// HaltStates is the number of low-indexed states allowed to halt.
	// Zero leaves every state free to halt.
	HaltStates int

	FirstWrite []uint8
	FirstMove  []uint8
	FirstNext  []uint8

	// ZipOff enables rejection of tables whose (state 1, color 0) transition
	// returns to state 0 with a move other than ReturnMove or Halt.
	ZipOff     bool
	ReturnMove uint8
}

// Topology describes movement on one tessellation. Move code 0 always halts.
type Topology interface {
	Name() string
	Dim() int
	Relative() bool
	// Moves is the number of move (absolute) or turn (relative) codes,
	// including Halt. Headings share the same code space.
	Moves() int
	// Parities is 2 for tessellations whose offsets depend on (x+y) mod 2.
	Parities() int
	StartHeading() uint8
	// Resolve returns the heading adopted after applying move to heading.
	Resolve(heading, move uint8) uint8
	// Offset returns the position delta for move taken from a cell of the
	// given parity while facing heading. The slice must not be modified.
	Offset(parity int, heading, move uint8) []int
	// Label renders a move code in the external table notation.
	Label(move uint8) string
	Policy() Policy
}

// Factory constructs a Topology from flag-style options.
type Factory func(cfg map[string]string) (Topology, error)

var topologies = map[string]Factory{}

// RegisterTopology adds a topology factory under the provided name.
func RegisterTopology(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	topologies[name] = f
}

// TopologyNames lists the registered topology names in order.
func TopologyNames() []string {
	names := make([]string, 0, len(topologies))
	for name := range topologies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTopology builds the named topology.
func NewTopology(name string, cfg map[string]string) (Topology, error) {
	f, ok := topologies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownTopology, name, TopologyNames())
	}
	return f(cfg)
}

// LookupMove returns the move code whose label is label.
func LookupMove(t Topology, label string) (uint8, bool) {
	for m := 0; m < t.Moves(); m++ {
		if t.Label(uint8(m)) == label {
			return uint8(m), true
		}
	}
	return 0, false
}
