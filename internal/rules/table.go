package rules

// Table is a rule table in index form: entry i selects a value from the
// space's legal-value list i. The enumerator mutates one Table in place.
type Table []uint8

// Clone returns an independent copy of t.
func (t Table) Clone() Table { return append(Table(nil), t...) }

// Rule is a rule table in value form, laid out like Table.
type Rule struct {
	States int
	Colors int
	Cells  []uint8
}

// NewRule allocates an all-zero rule.
func NewRule(states, colors int) Rule {
	return Rule{States: states, Colors: colors, Cells: make([]uint8, states*colors*Slots)}
}

func (r Rule) at(state, color, slot int) int { return (state*r.Colors+color)*Slots + slot }

// Write returns the color written in (state, color).
func (r Rule) Write(state, color int) uint8 { return r.Cells[r.at(state, color, SlotWrite)] }

// Move returns the move or turn code taken in (state, color).
func (r Rule) Move(state, color int) uint8 { return r.Cells[r.at(state, color, SlotMove)] }

// Next returns the state adopted after (state, color).
func (r Rule) Next(state, color int) uint8 { return r.Cells[r.at(state, color, SlotNext)] }

// Set stores the triple for (state, color).
func (r Rule) Set(state, color int, write, move, next uint8) {
	base := r.at(state, color, 0)
	r.Cells[base+SlotWrite] = write
	r.Cells[base+SlotMove] = move
	r.Cells[base+SlotNext] = next
}

// Clone returns an independent copy of r.
func (r Rule) Clone() Rule {
	r.Cells = append([]uint8(nil), r.Cells...)
	return r
}
