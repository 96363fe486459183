package square

import (
	"fmt"
	"strconv"

	"turmites/internal/core"
)

// MaxDim is the largest dimension whose 1+2*dim move codes fit in a byte.
const MaxDim = 127

// Config holds parameters for the hypercubic topology.
type Config struct {
	Dim      int
	Relative bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Dim: 2}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["dim"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Dim = parsed
		}
	}
	if v, ok := cfg["relative"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Relative = parsed
		}
	}
	return c
}

var absoluteLabels = [...]string{"''", "'E'", "'W'", "'N'", "'S'", "'U'", "'D'"}

// Ed Pegg Jr.'s turmite notation: 1=no turn, 4=u-turn, 2=right, 8=left.
var relativeLabels = [...]string{"0", "1", "4", "2", "8"}

// turnAfter[old][turn] for the 2D relative turmite; 1D uses the top-left 3x3.
var turnAfter = [5][5]uint8{
	{0, 0, 0, 0, 0},
	{0, 1, 2, 4, 3},
	{0, 2, 1, 3, 4},
	{0, 3, 4, 1, 2},
	{0, 4, 3, 2, 1},
}

// Square moves along the 2*Dim axis directions of a hypercubic lattice.
// Code 1+2i steps +1 along axis i and code 2+2i steps -1.
type Square struct {
	dim      int
	relative bool
	moves    int
	dirs     [][]int
	labels   []string
}

// New creates a square topology. Relative movement needs an orientation
// model, which only exists for one and two dimensions.
func New(dim int, relative bool) (*Square, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("square: dimension must be positive, got %d", dim)
	}
	if dim > MaxDim {
		return nil, fmt.Errorf("square: dimension must be at most %d, got %d", MaxDim, dim)
	}
	if relative && dim >= 3 {
		return nil, fmt.Errorf("square %dD: %w", dim, core.ErrRelativeUnsupported)
	}
	moves := 1 + 2*dim
	s := &Square{dim: dim, relative: relative, moves: moves}
	s.dirs = make([][]int, moves)
	s.dirs[0] = make([]int, dim)
	for axis := 0; axis < dim; axis++ {
		pos := make([]int, dim)
		neg := make([]int, dim)
		pos[axis] = 1
		neg[axis] = -1
		s.dirs[1+2*axis] = pos
		s.dirs[2+2*axis] = neg
	}
	s.labels = make([]string, moves)
	for m := 0; m < moves; m++ {
		switch {
		case relative:
			s.labels[m] = relativeLabels[m]
		case m < len(absoluteLabels):
			s.labels[m] = absoluteLabels[m]
		default:
			axis := (m - 1) / 2
			sign := "+"
			if (m-1)%2 == 1 {
				sign = "-"
			}
			s.labels[m] = strconv.Itoa(axis+1) + sign
		}
	}
	return s, nil
}

// Name returns the topology identifier.
func (s *Square) Name() string { return "square" }

// Dim returns the lattice dimension.
func (s *Square) Dim() int { return s.dim }

// Relative reports whether move codes are turns.
func (s *Square) Relative() bool { return s.relative }

// Moves returns the number of move codes including halt.
func (s *Square) Moves() int { return s.moves }

// Parities returns 1: every cell shares the same offsets.
func (s *Square) Parities() int { return 1 }

// StartHeading returns the initial heading of relative turmites.
func (s *Square) StartHeading() uint8 { return 1 }

// Resolve applies move to heading.
func (s *Square) Resolve(heading, move uint8) uint8 {
	if !s.relative {
		return move
	}
	return turnAfter[heading][move]
}

// Offset returns the direction vector of the resolved heading.
func (s *Square) Offset(_ int, heading, move uint8) []int {
	return s.dirs[s.Resolve(heading, move)]
}

// Direction returns the unit vector of an absolute direction code.
func (s *Square) Direction(code uint8) []int { return s.dirs[code] }

// Label renders a move code for the result log.
func (s *Square) Label(move uint8) string { return s.labels[move] }

// Policy returns the symmetry pruning for square turmites.
//
// Absolute turmites fix the first triple at {1,'E',1}: a first print of 0
// makes the destination state the real start, higher colors and states can
// be relabeled, and any first direction can be rotated onto East. Relative
// turmites only mirror left onto right.
func (s *Square) Policy() core.Policy {
	if s.relative {
		return core.Policy{
			HaltStates: 3,
			FirstWrite: []uint8{0, 1},
			FirstMove:  []uint8{1, 2, 3},
			FirstNext:  []uint8{0, 1},
		}
	}
	return core.Policy{
		HaltStates: 3,
		FirstWrite: []uint8{1},
		FirstMove:  []uint8{1},
		FirstNext:  []uint8{1},
		ZipOff:     true,
		ReturnMove: 2,
	}
}

func init() {
	core.RegisterTopology("square", func(cfg map[string]string) (core.Topology, error) {
		c := FromMap(cfg)
		return New(c.Dim, c.Relative)
	})
}
