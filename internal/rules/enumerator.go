package rules

import "turmites/internal/core"

// Enumerator walks a Space like a mixed-radix odometer, entry 0 being the
// least significant digit. It keeps the number of halting MOVE entries up to
// date as digits change, so rejecting a table costs no rescan.
type Enumerator struct {
	space *Space
	table Table
	halts int

	started bool
	done    bool
	tried   uint64
}

// NewEnumerator positions an enumerator before the all-zero table.
func NewEnumerator(space *Space) *Enumerator {
	e := &Enumerator{space: space, table: space.NewTable()}
	e.halts = space.HaltCount(e.table)
	return e
}

// Table returns the current table. It is mutated by the next Advance.
func (e *Enumerator) Table() Table { return e.table }

// Halts returns the maintained halt count of the current table.
func (e *Enumerator) Halts() int { return e.halts }

// Tried returns how many tables have been visited.
func (e *Enumerator) Tried() uint64 { return e.tried }

// Done reports whether the enumeration is exhausted.
func (e *Enumerator) Done() bool { return e.done }

// Advance moves to the next table. It returns false once every table has
// been visited; the first call visits the all-zero table.
func (e *Enumerator) Advance() bool {
	if e.done {
		return false
	}
	if !e.started {
		e.started = true
		e.tried++
		return true
	}
	lists := e.space.lists
	for i := range e.table {
		l := lists[i]
		old := e.table[i]
		carry := int(old)+1 >= len(l)
		next := old + 1
		if carry {
			next = 0
		}
		if i%Slots == SlotMove && old != next {
			if l[old] == core.Halt {
				e.halts--
			}
			if l[next] == core.Halt {
				e.halts++
			}
		}
		e.table[i] = next
		if !carry {
			e.tried++
			return true
		}
	}
	e.done = true
	return false
}

// Accept reports whether the current table passes the enumeration filters:
// exactly one halting entry, in canonical {1, halt, 0} shape, and no
// zip-off start for absolute movement.
func (e *Enumerator) Accept() bool {
	return e.halts == 1 && e.space.acceptShape(e.table)
}

// Next advances to the next accepted table. The returned table is owned by
// the enumerator and must be treated as read-only.
func (e *Enumerator) Next() (Table, bool) {
	for e.Advance() {
		if e.Accept() {
			return e.table, true
		}
	}
	return nil, false
}
