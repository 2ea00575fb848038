// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package fsm provides strict table-driven state machines. A Table is built
// once and shared; each Machine tracks one current state against it.
package fsm

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by Fire when the table has no edge for the
// current state and event.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition is one edge.
type Transition[S, E comparable] struct {
	From  S
	Event E
	To    S
}

type edge[S, E comparable] struct {
	from  S
	event E
}

// Table is an immutable transition table.
type Table[S, E comparable] struct {
	next map[edge[S, E]]S
	outs map[S]int
}

// NewTable validates transitions. A repeated (From, Event) pair is an error.
func NewTable[S, E comparable](transitions []Transition[S, E]) (*Table[S, E], error) {
	t := &Table[S, E]{
		next: make(map[edge[S, E]]S, len(transitions)),
		outs: make(map[S]int),
	}
	for _, tr := range transitions {
		e := edge[S, E]{tr.From, tr.Event}
		if _, dup := t.next[e]; dup {
			return nil, fmt.Errorf("fsm: duplicate edge %v on %v", tr.From, tr.Event)
		}
		t.next[e] = tr.To
		t.outs[tr.From]++
	}
	return t, nil
}

// MustTable is NewTable for package-level tables; it panics on error.
func MustTable[S, E comparable](transitions []Transition[S, E]) *Table[S, E] {
	t, err := NewTable(transitions)
	if err != nil {
		panic(err)
	}
	return t
}

// Terminal reports whether s has no outgoing edges.
func (t *Table[S, E]) Terminal(s S) bool {
	return t.outs[s] == 0
}

// Start returns a Machine positioned at initial.
func (t *Table[S, E]) Start(initial S) *Machine[S, E] {
	return &Machine[S, E]{table: t, state: initial}
}

// Machine is not safe for concurrent use; callers serialise Fire.
type Machine[S, E comparable] struct {
	table *Table[S, E]
	state S
}

func (m *Machine[S, E]) State() S { return m.state }

// Can reports whether event has an edge from the current state.
func (m *Machine[S, E]) Can(event E) bool {
	_, ok := m.table.next[edge[S, E]{m.state, event}]
	return ok
}

// Fire applies event. On error the state is unchanged and returned.
func (m *Machine[S, E]) Fire(event E) (S, error) {
	to, ok := m.table.next[edge[S, E]{m.state, event}]
	if !ok {
		return m.state, fmt.Errorf("%w: state=%v event=%v", ErrInvalidTransition, m.state, event)
	}
	m.state = to
	return to, nil
}

// Done reports whether the machine sits in a terminal state.
func (m *Machine[S, E]) Done() bool {
	return m.table.Terminal(m.state)
}
