package hex

import (
	"strconv"

	"turmites/internal/core"
)

// Config holds parameters for the hexagonal topology.
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

const moves = 7

// dirs are axial (q, r) offsets; following Golly, SE and NW are skipped.
// Consecutive codes are 60 degree rotations of each other.
var dirs = [moves][2]int{
	{0, 0},
	{0, -1},
	{1, -1},
	{1, 0},
	{0, 1},
	{-1, 1},
	{-1, 0},
}

var absoluteLabels = [moves]string{"''", "'A'", "'B'", "'C'", "'D'", "'E'", "'F'"}

// 1=no turn, 2=left, 4=right, 8=back-left, 16=back-right, 32=u-turn.
var turnLabels = [moves]string{"0", "1", "2", "4", "8", "16", "32"}

// turnShift is the rotation, in sixths of a turn, applied by each turn code.
var turnShift = [moves]int{0, 0, -1, 1, -2, 2, 3}

// Hex moves between the six neighbors of a hexagonal tiling.
type Hex struct {
	relative bool
	turn     [moves][moves]uint8
	offsets  [moves][]int
}

// New creates a hex topology.
func New(relative bool) *Hex {
	h := &Hex{relative: relative}
	for old := 1; old < moves; old++ {
		for t := 1; t < moves; t++ {
			h.turn[old][t] = uint8(1 + ((old-1+turnShift[t])%6+6)%6)
		}
	}
	for m := range dirs {
		h.offsets[m] = []int{dirs[m][0], dirs[m][1]}
	}
	return h
}

// Name returns the topology identifier.
func (h *Hex) Name() string { return "hex" }

// Dim returns 2.
func (h *Hex) Dim() int { return 2 }

// Relative reports whether move codes are turns.
func (h *Hex) Relative() bool { return h.relative }

// Moves returns the number of move codes including halt.
func (h *Hex) Moves() int { return moves }

// Parities returns 1: every hexagon shares the same offsets.
func (h *Hex) Parities() int { return 1 }

// StartHeading returns the initial heading of relative turmites.
func (h *Hex) StartHeading() uint8 { return 1 }

// Resolve applies move to heading.
func (h *Hex) Resolve(heading, move uint8) uint8 {
	if !h.relative {
		return move
	}
	return h.turn[heading][move]
}

// Offset returns the axial delta of the resolved heading.
func (h *Hex) Offset(_ int, heading, move uint8) []int {
	return h.offsets[h.Resolve(heading, move)]
}

// Direction returns the axial vector of an absolute direction code.
func (h *Hex) Direction(code uint8) []int { return h.offsets[code] }

// Label renders a move code for the result log.
func (h *Hex) Label(move uint8) string {
	if h.relative {
		return turnLabels[move]
	}
	return absoluteLabels[move]
}

// Policy returns the symmetry pruning for hex turmites. Relative turmites
// keep forward, right, back-right and u-turn as first moves, the mirrored
// left-hand turns being equivalent.
func (h *Hex) Policy() core.Policy {
	if h.relative {
		return core.Policy{
			HaltStates: 3,
			FirstWrite: []uint8{0, 1},
			FirstMove:  []uint8{1, 3, 5, 6},
			FirstNext:  []uint8{0, 1},
		}
	}
	return core.Policy{
		HaltStates: 3,
		FirstWrite: []uint8{1},
		FirstMove:  []uint8{1},
		FirstNext:  []uint8{1},
		ZipOff:     true,
		ReturnMove: 4,
	}
}

func init() {
	core.RegisterTopology("hex", func(cfg map[string]string) (core.Topology, error) {
		c := FromMap(cfg)
		return New(c.Relative), nil
	})
}
