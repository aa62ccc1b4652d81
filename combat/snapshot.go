package combat

import (
	"github.com/milk9111/tokenduel/action"
	"github.com/milk9111/tokenduel/token"
	"github.com/milk9111/tokenduel/trigger"
)

// Offer tells the input layer whether an action may be chosen right now.
type Offer struct {
	Name       string
	Family     action.Family
	Legal      bool
	MissChance int
}

// TokenCount is a displayable ledger entry.
type TokenCount struct {
	Kind     token.Kind
	Count    int
	Capacity int
}

// ActorView is a read-only copy of an actor for rendering.
type ActorView struct {
	Name      string
	Side      Side
	Remaining int
	Tokens    []TokenCount
	Triggers  []string
	Defeated  bool
}

// Outcome describes how a combat ended.
type Outcome struct {
	Finished bool
	Draw     bool
	Winner   Side
}

// Snapshot is a read-only view of a combat.
type Snapshot struct {
	ID      string
	State   State
	Round   int
	Actors  [2]ActorView
	Outcome Outcome
}

// Count returns the count of k held by side s in the snapshot.
func (s Snapshot) Count(side Side, k token.Kind) int {
	for _, tc := range s.Actors[side].Tokens {
		if tc.Kind == k {
			return tc.Count
		}
	}
	return 0
}

func viewActor(a *Actor, side Side) ActorView {
	v := ActorView{Side: side, Defeated: a.Defeated()}
	if a == nil {
		return v
	}
	v.Name = a.Name
	v.Remaining = a.Remaining
	for _, e := range a.Tokens.Entries() {
		v.Tokens = append(v.Tokens, TokenCount{Kind: e.Kind, Count: e.Count, Capacity: a.Tokens.Capacity(e.Kind)})
	}
	for _, c := range trigger.Conditions {
		for _, t := range a.Triggers.Triggers(c) {
			v.Triggers = append(v.Triggers, c.String()+": "+t.Description())
		}
	}
	return v
}
