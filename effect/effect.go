// Package effect describes single token mutations produced by resolving an
// action and applies them to a ledger.
package effect

import (
	"fmt"

	"github.com/milk9111/tokenduel/token"
)

// Op is the effect tag.
type Op int

const (
	OpAdd Op = iota
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Effect is an immutable AddToken or RemoveToken value. It carries no ledger
// reference and may be applied to any number of ledgers.
type Effect struct {
	Op     Op
	Kind   token.Kind
	Amount int
}

// AddToken builds an effect raising kind by amount.
func AddToken(kind token.Kind, amount int) Effect {
	return Effect{Op: OpAdd, Kind: kind, Amount: amount}
}

// RemoveToken builds an effect lowering kind by amount.
func RemoveToken(kind token.Kind, amount int) Effect {
	return Effect{Op: OpRemove, Kind: kind, Amount: amount}
}

// Apply mutates l according to the effect.
func (e Effect) Apply(l *token.Ledger) {
	switch e.Op {
	case OpAdd:
		l.Add(e.Kind, e.Amount)
	case OpRemove:
		l.Remove(e.Kind, e.Amount)
	}
}

func (e Effect) String() string {
	switch e.Op {
	case OpAdd:
		return fmt.Sprintf("+%d %s", e.Amount, e.Kind)
	case OpRemove:
		return fmt.Sprintf("-%d %s", e.Amount, e.Kind)
	default:
		return fmt.Sprintf("%s %d %s", e.Op, e.Amount, e.Kind)
	}
}

// ApplyAll applies effects in order.
func ApplyAll(effects []Effect, l *token.Ledger) {
	for _, e := range effects {
		e.Apply(l)
	}
}

// Clone returns a copy of effects that shares no backing array.
func Clone(effects []Effect) []Effect {
	if effects == nil {
		return nil
	}
	return append([]Effect(nil), effects...)
}
