package tri

import (
	"strconv"

	"turmites/internal/core"
)

// Config holds parameters for the triangular topology.
type Config struct {
	Relative bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Relative: true}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["relative"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Relative = parsed
		}
	}
	return c
}

// Turn codes.
const (
	TurnRight uint8 = 1
	TurnLeft  uint8 = 2
	TurnU     uint8 = 3
)

const moves = 4

var labels = [moves]string{"0", "2", "1", "4"}

// turnAfter[old][turn]
var turnAfter = [moves][moves]uint8{
	{0, 0, 0, 0},
	{0, 3, 2, 1},
	{0, 1, 3, 2},
	{0, 2, 1, 3},
}

// Up holds the (dx, dy) taken from an up-pointing triangle, indexed by
// [turn][heading]. Cells with (x+y) mod 2 == 0 point up.
var Up = [moves][moves][2]int{
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{0, 0}, {1, 0}, {0, 1}, {-1, 0}},
	{{0, 0}, {-1, 0}, {1, 0}, {0, 1}},
	{{0, 0}, {0, 1}, {-1, 0}, {1, 0}},
}

// Down holds the (dx, dy) taken from a down-pointing triangle.
var Down = [moves][moves][2]int{
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{0, 0}, {-1, 0}, {0, -1}, {1, 0}},
	{{0, 0}, {1, 0}, {-1, 0}, {0, -1}},
	{{0, 0}, {0, -1}, {1, 0}, {-1, 0}},
}

// Tri moves across the edges of a triangular tiling. The three edge
// directions of a cell depend on whether it points up or down.
type Tri struct {
	offsets [2][moves][moves][]int
}

// New creates a triangular topology. Triangles have no shared compass, so
// only relative movement is defined.
func New(relative bool) (*Tri, error) {
	if !relative {
		return nil, core.ErrAbsoluteUnsupported
	}
	t := &Tri{}
	for turn := 0; turn < moves; turn++ {
		for heading := 0; heading < moves; heading++ {
			up := Up[turn][heading]
			down := Down[turn][heading]
			t.offsets[0][heading][turn] = []int{up[0], up[1]}
			t.offsets[1][heading][turn] = []int{down[0], down[1]}
		}
	}
	return t, nil
}

// Name returns the topology identifier.
func (t *Tri) Name() string { return "tri" }

// Dim returns 2.
func (t *Tri) Dim() int { return 2 }

// Relative returns true.
func (t *Tri) Relative() bool { return true }

// Moves returns the number of turn codes including halt.
func (t *Tri) Moves() int { return moves }

// Parities returns 2: up and down triangles.
func (t *Tri) Parities() int { return 2 }

// StartHeading returns the initial heading.
func (t *Tri) StartHeading() uint8 { return 1 }

// Resolve applies turn to heading.
func (t *Tri) Resolve(heading, turn uint8) uint8 { return turnAfter[heading][turn] }

// Offset returns the delta for turn taken from a cell of the given parity.
func (t *Tri) Offset(parity int, heading, turn uint8) []int {
	return t.offsets[parity&1][heading][turn]
}

// Label renders a turn code for the result log.
func (t *Tri) Label(turn uint8) string { return labels[turn] }

// Policy returns the symmetry pruning for triangular turmites: the first
// turn is right or u-turn, left being its mirror image.
func (t *Tri) Policy() core.Policy {
	return core.Policy{
		HaltStates: 3,
		FirstWrite: []uint8{0, 1},
		FirstMove:  []uint8{TurnRight, TurnU},
		FirstNext:  []uint8{0, 1},
	}
}

func init() {
	core.RegisterTopology("tri", func(cfg map[string]string) (core.Topology, error) {
		c := FromMap(cfg)
		return New(c.Relative)
	})
}
