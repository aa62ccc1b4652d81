package combat

import "fmt"

// Side is which of the two actors holds the initiative.
type Side int

const (
	First Side = iota
	Second
)

// Sides lists both sides, First first.
var Sides = [2]Side{First, Second}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == First {
		return Second
	}
	return First
}

func (s Side) String() string {
	switch s {
	case First:
		return "first"
	case Second:
		return "second"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// State is Turn(Side, Remaining) with Remaining >= 1.
type State struct {
	Side      Side
	Remaining int
}

func (s State) String() string {
	return fmt.Sprintf("Turn(%s, %d)", s.Side, s.Remaining)
}

// Boundary classifies the transition produced by consuming an action.
type Boundary int

const (
	// TurnBoundary is any transition that does not complete a round.
	TurnBoundary Boundary = iota
	// RoundBoundary is the transition handing control back to First.
	RoundBoundary
)

func (b Boundary) String() string {
	if b == RoundBoundary {
		return "round"
	}
	return "turn"
}

// Machine sequences turns. It has no failure states.
type Machine struct {
	perRound int
	state    State
}

// NewMachine starts at Turn(First, actionsPerRound). Values below 1 are
// treated as 1.
func NewMachine(actionsPerRound int) *Machine {
	if actionsPerRound < 1 {
		actionsPerRound = 1
	}
	return &Machine{
		perRound: actionsPerRound,
		state:    State{Side: First, Remaining: actionsPerRound},
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// ActionsPerRound returns the per-side action allowance.
func (m *Machine) ActionsPerRound() int {
	return m.perRound
}

// Advance consumes one action and returns the new state and the kind of
// boundary crossed.
func (m *Machine) Advance() (State, Boundary) {
	if m.state.Remaining > 1 {
		m.state.Remaining--
		return m.state, TurnBoundary
	}

	next := m.state.Side.Other()
	m.state = State{Side: next, Remaining: m.perRound}
	if next == First {
		return m.state, RoundBoundary
	}
	return m.state, TurnBoundary
}
