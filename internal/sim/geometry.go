package sim

import "turmites/internal/core"

// geometry is a topology flattened into lookup tables so the step loop never
// calls through the Topology interface.
type geometry struct {
	dim      int
	moves    int
	parities int
	start    uint8

	// heading[h*moves+m] is the heading adopted after move m from heading h.
	heading []uint8
	// delta[((p*moves+h)*moves+m)*dim+axis] is the position change.
	delta []int
}

func compile(t core.Topology) geometry {
	g := geometry{
		dim:      t.Dim(),
		moves:    t.Moves(),
		parities: t.Parities(),
		start:    t.StartHeading(),
	}
	m := g.moves
	g.heading = make([]uint8, m*m)
	g.delta = make([]int, g.parities*m*m*g.dim)
	for h := 0; h < m; h++ {
		for mv := 0; mv < m; mv++ {
			g.heading[h*m+mv] = t.Resolve(uint8(h), uint8(mv))
		}
	}
	for p := 0; p < g.parities; p++ {
		for h := 0; h < m; h++ {
			for mv := 1; mv < m; mv++ {
				copy(g.delta[((p*m+h)*m+mv)*g.dim:], t.Offset(p, uint8(h), uint8(mv)))
			}
		}
	}
	return g
}

func (g *geometry) offset(parity int, heading, move uint8) []int {
	i := ((parity*g.moves+int(heading))*g.moves + int(move)) * g.dim
	return g.delta[i : i+g.dim]
}
