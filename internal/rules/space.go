package rules

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"turmites/internal/core"
	pcore "turmites/pkg/core"
)

// Slot offsets inside one (state, color) triple.
const (
	SlotWrite = 0
	SlotMove  = 1
	SlotNext  = 2
	Slots     = 3
)

// MaxSymbols bounds the number of states and colors; values are stored as bytes.
const MaxSymbols = 256

var (
	// ErrBadShape reports a state or color count outside [1, MaxSymbols].
	ErrBadShape = errors.New("rules: states and colors must lie in [1, 256]")
	// ErrEmptySlot reports a pruning policy that leaves a slot without values.
	ErrEmptySlot = errors.New("rules: pruning leaves a slot with no legal value")
	// ErrIllegalValue reports a raw value outside its slot's legal list.
	ErrIllegalValue = errors.New("rules: value is not legal for its slot")
)

// Space holds the legal-value list of every (state, color, slot) entry. A
// Table stores indices into these lists, so shrinking a list to one value is
// all it takes to remove a symmetry orbit from the enumeration.
//
// Entry (state, color, slot) lives at flat index (state*Colors+color)*Slots+slot.
type Space struct {
	States int
	Colors int

	topo      core.Topology
	policy    core.Policy
	canonical bool
	lists     [][]uint8
}

// NewSpace builds the legal-value lists for topo. States at or above the
// policy's HaltStates never halt: a table halting only from a high state is a
// renumbering of one halting from a low state. When canonical is set, the
// (state 0, color 0) triple is restricted to the policy's first values.
func NewSpace(topo core.Topology, states, colors int, canonical bool) (*Space, error) {
	if states < 1 || states > MaxSymbols || colors < 1 || colors > MaxSymbols {
		return nil, fmt.Errorf("%w (states=%d colors=%d)", ErrBadShape, states, colors)
	}
	s := &Space{
		States:    states,
		Colors:    colors,
		topo:      topo,
		policy:    topo.Policy(),
		canonical: canonical,
		lists:     make([][]uint8, states*colors*Slots),
	}
	moves := topo.Moves()
	for st := 0; st < states; st++ {
		for c := 0; c < colors; c++ {
			base := s.Slot(st, c, 0)
			s.lists[base+SlotWrite] = span(0, colors)
			first := 0
			if s.policy.HaltStates > 0 && st >= s.policy.HaltStates {
				first = 1
			}
			s.lists[base+SlotMove] = span(first, moves)
			s.lists[base+SlotNext] = span(0, states)
		}
	}
	if canonical {
		if err := s.restrict(SlotWrite, s.policy.FirstWrite, colors); err != nil {
			return nil, err
		}
		if err := s.restrict(SlotMove, s.policy.FirstMove, moves); err != nil {
			return nil, err
		}
		if err := s.restrict(SlotNext, s.policy.FirstNext, states); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func span(from, to int) []uint8 {
	out := make([]uint8, 0, to-from)
	for v := from; v < to; v++ {
		out = append(out, uint8(v))
	}
	return out
}

// restrict replaces the first triple's slot list with the allowed values
// below limit. Halt is never a legal first move.
func (s *Space) restrict(slot int, allowed []uint8, limit int) error {
	if len(allowed) == 0 {
		return nil
	}
	list := make([]uint8, 0, len(allowed))
	for _, v := range allowed {
		if int(v) >= limit || (slot == SlotMove && v == core.Halt) {
			continue
		}
		list = append(list, v)
	}
	if len(list) == 0 {
		return fmt.Errorf("%w: %s first slot %d needs values %v below %d", ErrEmptySlot, s.topo.Name(), slot, allowed, limit)
	}
	slices.Sort(list)
	s.lists[slot] = list
	return nil
}

// Topology returns the topology the space was built for.
func (s *Space) Topology() core.Topology { return s.topo }

// Policy returns the pruning policy of the topology.
func (s *Space) Policy() core.Policy { return s.policy }


// Len returns the number of entries in a table.
func (s *Space) Len() int { return len(s.lists) }

// Slot returns the flat index of (state, color, slot).
func (s *Space) Slot(state, color, slot int) int {
	return (state*s.Colors+color)*Slots + slot
}

// Values returns the legal-value list of flat entry i.
func (s *Space) Values(i int) []uint8 { return s.lists[i] }

// Total returns the product of all list sizes. The raw product exceeds 64
// bits already for modest state and color counts.
func (s *Space) Total() *big.Int {
	total := big.NewInt(1)
	n := new(big.Int)
	for _, l := range s.lists {
		total.Mul(total, n.SetInt64(int64(len(l))))
	}
	return total
}

// NewTable returns the first table of the enumeration: every index zero.
func (s *Space) NewTable() Table { return make(Table, len(s.lists)) }

// Value resolves entry i of t.
func (s *Space) Value(t Table, i int) uint8 { return s.lists[i][t[i]] }

// Resolve writes the raw values selected by t into r.
func (s *Space) Resolve(t Table, r *Rule) {
	if len(r.Cells) != len(s.lists) {
		r.Cells = make([]uint8, len(s.lists))
	}
	r.States, r.Colors = s.States, s.Colors
	for i, l := range s.lists {
		r.Cells[i] = l[t[i]]
	}
}

// Encode converts a resolved rule back into indices.
func (s *Space) Encode(r Rule) (Table, error) {
	if r.States != s.States || r.Colors != s.Colors {
		return nil, fmt.Errorf("%w: rule is %dx%d, space is %dx%d", ErrIllegalValue, r.States, r.Colors, s.States, s.Colors)
	}
	t := s.NewTable()
	for i, l := range s.lists {
		idx := slices.Index(l, r.Cells[i])
		if idx < 0 {
			return nil, fmt.Errorf("%w: entry %d value %d not in %v", ErrIllegalValue, i, r.Cells[i], l)
		}
		t[i] = uint8(idx)
	}
	return t, nil
}

// HaltCount counts the MOVE entries of t resolving to Halt.
func (s *Space) HaltCount(t Table) int {
	n := 0
	for i := SlotMove; i < len(s.lists); i += Slots {
		if s.lists[i][t[i]] == core.Halt {
			n++
		}
	}
	return n
}

// Accept applies the enumeration filters to t from scratch.
func (s *Space) Accept(t Table) bool {
	return s.HaltCount(t) == 1 && s.acceptShape(t)
}

// acceptShape assumes exactly one halting entry. The halting triple must be
// {1, halt, 0}; other write/next combinations are relabelings of it.
func (s *Space) acceptShape(t Table) bool {
	ok := false
	for i := SlotMove; i < len(s.lists); i += Slots {
		if s.lists[i][t[i]] != core.Halt {
			continue
		}
		ok = s.Value(t, i-1) == 1 && s.Value(t, i+1) == 0
		break
	}
	if !ok {
		return false
	}
	if s.canonical && s.policy.ZipOff && s.States > 1 {
		// After {1, first, 1} the machine stands on a blank cell in state
		// 1. Returning to state 0 anywhere but back home repeats the first
		// step forever.
		next := s.Value(t, s.Slot(1, 0, SlotNext))
		move := s.Value(t, s.Slot(1, 0, SlotMove))
		if next == 0 && move != s.policy.ReturnMove && move != core.Halt {
			return false
		}
	}
	return true
}

// Random draws a table uniformly from the space.
func (s *Space) Random(rng *pcore.RNG) Table {
	t := s.NewTable()
	for i, l := range s.lists {
		t[i] = uint8(rng.IntN(len(l)))
	}
	return t
}
