// Package trigger holds conditional reactions that run against an actor's
// ledger at lifecycle boundaries.
package trigger

import (
	"fmt"
	"strings"

	"github.com/milk9111/tokenduel/effect"
	"github.com/milk9111/tokenduel/token"
)

// Condition is a lifecycle boundary a trigger reacts to.
type Condition int

const (
	RoundStart Condition = iota
	RoundEnd
	TurnStart
	TurnEnd
)

// Conditions lists every condition in declaration order.
var Conditions = []Condition{RoundStart, RoundEnd, TurnStart, TurnEnd}

func (c Condition) String() string {
	switch c {
	case RoundStart:
		return "round_start"
	case RoundEnd:
		return "round_end"
	case TurnStart:
		return "turn_start"
	case TurnEnd:
		return "turn_end"
	default:
		return fmt.Sprintf("condition(%d)", int(c))
	}
}

// ParseCondition resolves a data-file condition name.
func ParseCondition(s string) (Condition, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, c := range Conditions {
		if norm == c.String() || norm == strings.ReplaceAll(c.String(), "_", "") {
			return c, nil
		}
	}
	return 0, fmt.Errorf("trigger: unknown condition %q", s)
}

// Trigger reacts to a condition by reading and mutating a ledger. Alive is
// consulted after every firing; a trigger reporting false is discarded.
type Trigger interface {
	Description() string
	Fire(l *token.Ledger)
	Alive() bool
}

// DamageMode selects when pending damage lands on health.
type DamageMode int

const (
	// ResolveLethal lands pending damage only once it reaches current health.
	ResolveLethal DamageMode = iota
	// ResolveAlways lands all pending damage on every firing.
	ResolveAlways
)

func (m DamageMode) String() string {
	if m == ResolveAlways {
		return "always"
	}
	return "lethal"
}

// DamageResolution converts Damage tokens into lost Health. It never expires.
type DamageResolution struct {
	Mode DamageMode
}

func (d DamageResolution) Description() string {
	return "Apply damage to health"
}

func (d DamageResolution) Fire(l *token.Ledger) {
	pending := l.Count(token.Damage)
	if pending == 0 {
		return
	}
	if d.Mode == ResolveLethal && pending < l.Count(token.Health) {
		return
	}
	l.Remove(token.Health, pending)
	l.Remove(token.Damage, pending)
}

func (d DamageResolution) Alive() bool {
	return true
}

// Timed applies Effects on each firing and expires after Remaining firings.
type Timed struct {
	Desc      string
	Effects   []effect.Effect
	Remaining int
}

// NewTimed returns a Timed trigger firing times times.
func NewTimed(desc string, times int, effects ...effect.Effect) *Timed {
	return &Timed{Desc: desc, Effects: effect.Clone(effects), Remaining: times}
}

func (t *Timed) Description() string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%s (%d left)", t.Desc, t.Remaining)
}

func (t *Timed) Fire(l *token.Ledger) {
	if t == nil || t.Remaining <= 0 {
		return
	}
	effect.ApplyAll(t.Effects, l)
	t.Remaining--
}

func (t *Timed) Alive() bool {
	return t != nil && t.Remaining > 0
}

// Decay removes Amount of Kind on every firing. Status tokens that should only
// last until a boundary use it.
type Decay struct {
	Kind   token.Kind
	Amount int
}

func (d Decay) Description() string {
	return fmt.Sprintf("Lose %d %s", d.Amount, d.Kind)
}

func (d Decay) Fire(l *token.Ledger) {
	l.Remove(d.Kind, d.Amount)
}

func (d Decay) Alive() bool {
	return true
}

// Absorb cancels pending Damage one for one with Kind tokens and spends the
// tokens it used. Registered ahead of DamageResolution it lets guards and
// shields eat damage before it lands.
type Absorb struct {
	Kind token.Kind
}

func (a Absorb) Description() string {
	return fmt.Sprintf("Absorb damage with %s", a.Kind)
}

func (a Absorb) Fire(l *token.Ledger) {
	n := min(l.Count(token.Damage), l.Count(a.Kind))
	if n <= 0 {
		return
	}
	l.Remove(token.Damage, n)
	l.Remove(a.Kind, n)
}

func (a Absorb) Alive() bool {
	return true
}
