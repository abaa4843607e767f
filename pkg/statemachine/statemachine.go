package statemachine

import (
	"fmt"
	"slices"
)

// State is a named state of an entity lifecycle.
type State string

func (s State) String() string { return string(s) }

// Table is an immutable set of allowed transitions between states. Unlike an
// FSM instance it holds no current state, so one Table can check transitions
// for every entity concurrently.
type Table struct {
	initial State
	edges   map[State][]State
}

// Option declares transitions of a Table.
type Option func(*Table)

// WithTransition allows moving from one state to each of the given targets.
func WithTransition(from State, to ...State) Option {
	return func(t *Table) {
		for _, target := range to {
			if !slices.Contains(t.edges[from], target) {
				t.edges[from] = append(t.edges[from], target)
			}
		}
	}
}

// New builds a Table whose entities start in initial.
func New(initial State, opts ...Option) (*Table, error) {
	if initial == "" {
		return nil, ErrInvalidState
	}

	t := &Table{initial: initial, edges: make(map[State][]State)}
	for _, opt := range opts {
		opt(t)
	}
	for from, targets := range t.edges {
		if from == "" || slices.Contains(targets, "") {
			return nil, fmt.Errorf("%w: %q -> %v", ErrInvalidTransition, from, targets)
		}
	}
	return t, nil
}

// MustNew is New that panics on an invalid declaration.
func MustNew(initial State, opts ...Option) *Table {
	t, err := New(initial, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Initial returns the state new entities start in.
func (t *Table) Initial() State { return t.initial }

// States lists every state mentioned by the table, initial first.
func (t *Table) States() []State {
	out := []State{t.initial}
	for from, targets := range t.edges {
		for _, s := range append([]State{from}, targets...) {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	slices.Sort(out[1:])
	return out
}

// Targets lists the states reachable from from in one step.
func (t *Table) Targets(from State) []State {
	return slices.Clone(t.edges[from])
}

// Can reports whether from -> to is allowed.
func (t *Table) Can(from, to State) bool {
	return slices.Contains(t.edges[from], to)
}

// Check returns an error describing why from -> to is not allowed.
func (t *Table) Check(from, to State) error {
	if t.Can(from, to) {
		return nil
	}
	return &NoTransitionError{From: from, To: to}
}

// IsFinal reports whether no transition leaves s.
func (t *Table) IsFinal(s State) bool {
	return len(t.edges[s]) == 0
}
