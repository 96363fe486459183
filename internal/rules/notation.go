package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"turmites/internal/core"
)

// ErrNotation reports text that is not a brace-nested rule table.
var ErrNotation = errors.New("rules: malformed table notation")

// Format renders r as {{{write,move,next},...},...}, one inner list per
// state and one triple per color, with topology-specific move labels.
func Format(r Rule, topo core.Topology) string {
	var b strings.Builder
	b.WriteByte('{')
	for st := 0; st < r.States; st++ {
		if st > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		for c := 0; c < r.Colors; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "{%d,%s,%d}", r.Write(st, c), topo.Label(r.Move(st, c)), r.Next(st, c))
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}

// Parse reads a table written by Format. A full record line such as
// "12 (popn. 4): {...}" is accepted too.
func Parse(text string, topo core.Topology) (Rule, error) {
	if i := strings.LastIndexByte(text, ':'); i >= 0 {
		text = text[i+1:]
	}
	text = strings.Join(strings.Fields(text), "")
	p := parser{src: text}
	var triples [][][3]string
	if err := p.list(func() error {
		var row [][3]string
		err := p.list(func() error {
			var fields []string
			if err := p.list(func() error {
				fields = append(fields, p.atom())
				return nil
			}); err != nil {
				return err
			}
			if len(fields) != Slots {
				return fmt.Errorf("%w: triple has %d fields", ErrNotation, len(fields))
			}
			row = append(row, [3]string{fields[0], fields[1], fields[2]})
			return nil
		})
		triples = append(triples, row)
		return err
	}); err != nil {
		return Rule{}, err
	}
	if p.pos != len(p.src) {
		return Rule{}, fmt.Errorf("%w: trailing %q", ErrNotation, p.src[p.pos:])
	}
	if len(triples) == 0 || len(triples[0]) == 0 {
		return Rule{}, fmt.Errorf("%w: empty table", ErrNotation)
	}
	states, colors := len(triples), len(triples[0])
	if states > MaxSymbols || colors > MaxSymbols {
		return Rule{}, fmt.Errorf("%w (states=%d colors=%d)", ErrBadShape, states, colors)
	}
	r := NewRule(states, colors)
	for st, row := range triples {
		if len(row) != colors {
			return Rule{}, fmt.Errorf("%w: state %d has %d colors, want %d", ErrNotation, st, len(row), colors)
		}
		for c, tr := range row {
			write, err := strconv.Atoi(tr[0])
			if err != nil || write < 0 || write >= colors {
				return Rule{}, fmt.Errorf("%w: bad color %q", ErrNotation, tr[0])
			}
			move, ok := core.LookupMove(topo, tr[1])
			if !ok {
				return Rule{}, fmt.Errorf("%w: unknown %s move %q", ErrNotation, topo.Name(), tr[1])
			}
			next, err := strconv.Atoi(tr[2])
			if err != nil || next < 0 || next >= states {
				return Rule{}, fmt.Errorf("%w: bad state %q", ErrNotation, tr[2])
			}
			r.Set(st, c, uint8(write), move, uint8(next))
		}
	}
	return r, nil
}

type parser struct {
	src string
	pos int
}

// list consumes "{item,item,...}" calling item for each element.
func (p *parser) list(item func() error) error {
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return fmt.Errorf("%w: expected '{' at offset %d", ErrNotation, p.pos)
	}
	p.pos++
	for {
		if err := item(); err != nil {
			return err
		}
		if p.pos >= len(p.src) {
			return fmt.Errorf("%w: unterminated list", ErrNotation)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return nil
		default:
			return fmt.Errorf("%w: unexpected %q at offset %d", ErrNotation, p.src[p.pos], p.pos)
		}
	}
}

// atom consumes text up to the next separator.
func (p *parser) atom() string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '}' && p.src[p.pos] != '{' {
		p.pos++
	}
	return p.src[start:p.pos]
}
