package combat

import (
	"github.com/milk9111/tokenduel/token"
	"github.com/milk9111/tokenduel/trigger"
)

// Actor is one combatant: its ledger, its triggers, and the actions it has
// left this turn. Actors never reference each other.
type Actor struct {
	Name      string
	Remaining int
	Tokens    *token.Ledger
	Triggers  *trigger.Registry
}

// NewActor returns an actor with an empty ledger and registry.
func NewActor(name string) *Actor {
	return &Actor{
		Name:     name,
		Tokens:   token.NewLedger(),
		Triggers: trigger.NewRegistry(),
	}
}

// Defeated reports whether the actor has no Health left.
func (a *Actor) Defeated() bool {
	return a == nil || !a.Tokens.Has(token.Health)
}

func (a *Actor) fire(c trigger.Condition) []string {
	if a == nil {
		return nil
	}
	return a.Triggers.FireAndPrune(c, a.Tokens)
}
