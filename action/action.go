// Package action defines named combat capabilities: who may use them and
// which effects they produce.
package action

import (
	"fmt"

	"github.com/milk9111/tokenduel/effect"
	"github.com/milk9111/tokenduel/roll"
	"github.com/milk9111/tokenduel/token"
)

// MissPenalty is the miss chance each unignored Dodge or Blind contributes.
const MissPenalty = 50

// StrongBonus is the extra damage each Strong token on the source adds to a
// damaging hit. The hit spends those tokens.
const StrongBonus = 1

// Family selects how an action resolves.
type Family int

const (
	// Deterministic actions always produce their configured effects.
	Deterministic Family = iota
	// SingleEnemy actions roll against Dodge and Blind before producing effects.
	SingleEnemy
)

func (f Family) String() string {
	switch f {
	case Deterministic:
		return "deterministic"
	case SingleEnemy:
		return "single_enemy"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Range is a closed integer interval of variable damage.
type Range struct {
	Low  int
	High int
}

// Resolution is the pair of effect lists produced by a successful action.
type Resolution struct {
	Self     []effect.Effect
	Opponent []effect.Effect
}

// Action is a stateless description of a capability. The same value may be
// resolved any number of times for any pair of actors.
type Action struct {
	Name    string
	Require Requirements
	Family  Family
	// Ignore lists status kinds whose miss penalty this action disregards.
	Ignore        map[token.Kind]bool
	SelfEffects   []effect.Effect
	TargetEffects []effect.Effect
	// Damage, when set, adds a uniformly drawn amount of Damage to the target
	// on a hit, plus StrongBonus per Strong token the source holds.
	Damage *Range
}

// CanPerform reports whether the action is legal for source against target.
func (a Action) CanPerform(source, target *token.Ledger) bool {
	return a.Require.Met(source, target)
}

// Ignores reports whether the action disregards k when computing miss chance.
func (a Action) Ignores(k token.Kind) bool {
	return a.Ignore[k]
}

// MissChance returns the accumulated miss chance in percent. Deterministic
// actions never miss.
func (a Action) MissChance(source, target *token.Ledger) int {
	if a.Family != SingleEnemy {
		return 0
	}
	chance := 0
	if !a.Ignores(token.Dodge) && target.Has(token.Dodge) {
		chance += MissPenalty
	}
	if !a.Ignores(token.Blind) && source.Has(token.Blind) {
		chance += MissPenalty
	}
	return chance
}

// Perform resolves the action. The boolean is false when the action missed,
// in which case no effects must be applied; a hit may still carry empty
// effect lists. Legality is the caller's responsibility.
func (a Action) Perform(src roll.Source, source, target *token.Ledger) (Resolution, bool) {
	if a.Family == SingleEnemy {
		if roll.Percent(src) <= a.MissChance(source, target) {
			return Resolution{}, false
		}
	}

	res := Resolution{
		Self:     effect.Clone(a.SelfEffects),
		Opponent: effect.Clone(a.TargetEffects),
	}
	if a.Damage != nil {
		dmg := roll.Range(src, a.Damage.Low, a.Damage.High)
		if strong := source.Count(token.Strong); strong > 0 {
			dmg += strong * StrongBonus
			res.Self = append(res.Self, effect.RemoveToken(token.Strong, strong))
		}
		if dmg > 0 {
			res.Opponent = append(res.Opponent, effect.AddToken(token.Damage, dmg))
		}
	}
	return res, true
}

func (a Action) String() string {
	return a.Name
}
