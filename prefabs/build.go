package prefabs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/milk9111/tokenduel/action"
	"github.com/milk9111/tokenduel/combat"
	"github.com/milk9111/tokenduel/effect"
	"github.com/milk9111/tokenduel/token"
	"github.com/milk9111/tokenduel/trigger"
)

// Tables is the full set of duel data.
type Tables struct {
	Duel    DuelSpec
	Actions ActionTableSpec
	Actors  ActorTableSpec
}

// LoadTables loads duel.yaml, actions.yaml and actors.yaml and validates them.
func LoadTables() (Tables, error) {
	var t Tables
	var err error
	if t.Duel, err = LoadSpec[DuelSpec](DuelFile); err != nil {
		return Tables{}, err
	}
	if t.Actions, err = LoadSpec[ActionTableSpec](ActionsFile); err != nil {
		return Tables{}, err
	}
	if t.Actors, err = LoadSpec[ActorTableSpec](ActorsFile); err != nil {
		return Tables{}, err
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// Validate builds every table once and reports the first error.
func (t Tables) Validate() error {
	if t.Duel.ActionsPerRound < 1 {
		return fmt.Errorf("prefabs: %s: actions_per_round must be at least 1, got %d", DuelFile, t.Duel.ActionsPerRound)
	}
	if _, err := t.Catalog(); err != nil {
		return err
	}
	for _, a := range t.Actors.Actors {
		if _, err := BuildActor(a); err != nil {
			return err
		}
	}
	if _, _, err := t.Combatants(); err != nil {
		return err
	}
	return nil
}

// Catalog builds the action catalog.
func (t Tables) Catalog() (*action.Catalog, error) {
	return BuildCatalog(t.Actions.Actions)
}

// Actor builds a fresh actor by name.
func (t Tables) Actor(name string) (*combat.Actor, error) {
	for _, a := range t.Actors.Actors {
		if a.Name == name {
			return BuildActor(a)
		}
	}
	return nil, fmt.Errorf("prefabs: %s: unknown actor %q", ActorsFile, name)
}

// Combatants builds fresh first and second actors for one combat.
func (t Tables) Combatants() (first, second *combat.Actor, err error) {
	if first, err = t.Actor(t.Duel.First); err != nil {
		return nil, nil, err
	}
	if second, err = t.Actor(t.Duel.Second); err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

// BuildCatalog converts action specs, preserving their order.
func BuildCatalog(specs []ActionSpec) (*action.Catalog, error) {
	actions := make([]action.Action, 0, len(specs))
	for _, s := range specs {
		a, err := BuildAction(s)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	cat, err := action.NewCatalog(actions...)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", ActionsFile, err)
	}
	return cat, nil
}

// BuildAction converts one action spec.
func BuildAction(s ActionSpec) (action.Action, error) {
	fail := func(format string, args ...any) (action.Action, error) {
		return action.Action{}, fmt.Errorf("prefabs: action %q: %s", s.Name, fmt.Sprintf(format, args...))
	}
	if strings.TrimSpace(s.Name) == "" {
		return fail("blank name")
	}

	a := action.Action{Name: s.Name}
	switch strings.ToLower(strings.TrimSpace(s.Family)) {
	case "", "deterministic":
		a.Family = action.Deterministic
	case "single_enemy":
		a.Family = action.SingleEnemy
	default:
		return fail("unknown family %q", s.Family)
	}

	var err error
	if a.Require, err = buildRequirements(s.Require); err != nil {
		return fail("%v", err)
	}
	if a.SelfEffects, err = buildEffects(s.Self); err != nil {
		return fail("self: %v", err)
	}
	if a.TargetEffects, err = buildEffects(s.Target); err != nil {
		return fail("target: %v", err)
	}

	if len(s.Ignore) > 0 {
		if a.Family != action.SingleEnemy {
			return fail("ignore is only valid for single_enemy actions")
		}
		a.Ignore = make(map[token.Kind]bool, len(s.Ignore))
		for _, name := range s.Ignore {
			k, err := token.ParseKind(name)
			if err != nil {
				return fail("%v", err)
			}
			a.Ignore[k] = true
		}
	}

	if s.Damage != nil {
		if a.Family != action.SingleEnemy {
			return fail("damage is only valid for single_enemy actions")
		}
		if s.Damage.Low < 0 || s.Damage.High < s.Damage.Low {
			return fail("invalid damage range [%d, %d]", s.Damage.Low, s.Damage.High)
		}
		a.Damage = &action.Range{Low: s.Damage.Low, High: s.Damage.High}
	}
	return a, nil
}

// BuildActor converts one actor spec into a fresh actor. Capacities are set
// before starting tokens so that tokens clamp to them.
func BuildActor(s ActorSpec) (*combat.Actor, error) {
	fail := func(err error) (*combat.Actor, error) {
		return nil, fmt.Errorf("prefabs: actor %q: %w", s.Name, err)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fail(fmt.Errorf("blank name"))
	}

	a := combat.NewActor(s.Name)
	caps, err := parseCounts(s.Capacities)
	if err != nil {
		return fail(fmt.Errorf("capacities: %w", err))
	}
	for _, e := range caps {
		a.Tokens.SetCapacity(e.Kind, e.Count)
	}
	start, err := parseCounts(s.Tokens)
	if err != nil {
		return fail(fmt.Errorf("tokens: %w", err))
	}
	for _, e := range start {
		a.Tokens.Add(e.Kind, e.Count)
	}

	for i, ts := range s.Triggers {
		cond, err := trigger.ParseCondition(ts.When)
		if err != nil {
			return fail(fmt.Errorf("trigger %d: %w", i, err))
		}
		tr, err := buildTrigger(ts)
		if err != nil {
			return fail(fmt.Errorf("trigger %d: %w", i, err))
		}
		a.Triggers.Register(cond, tr)
	}
	return a, nil
}

func buildTrigger(s TriggerSpec) (trigger.Trigger, error) {
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "damage_resolution":
		switch strings.ToLower(strings.TrimSpace(s.Mode)) {
		case "", "lethal":
			return trigger.DamageResolution{Mode: trigger.ResolveLethal}, nil
		case "always":
			return trigger.DamageResolution{Mode: trigger.ResolveAlways}, nil
		default:
			return nil, fmt.Errorf("unknown damage mode %q", s.Mode)
		}
	case "decay":
		k, err := token.ParseKind(s.Kind)
		if err != nil {
			return nil, err
		}
		if s.Amount < 1 {
			return nil, fmt.Errorf("decay amount must be positive, got %d", s.Amount)
		}
		return trigger.Decay{Kind: k, Amount: s.Amount}, nil
	case "absorb":
		k, err := token.ParseKind(s.Kind)
		if err != nil {
			return nil, err
		}
		if k == token.Damage {
			return nil, fmt.Errorf("absorb kind must not be %s", token.Damage)
		}
		return trigger.Absorb{Kind: k}, nil
	case "timed":
		if s.Times < 1 {
			return nil, fmt.Errorf("timed trigger must fire at least once, got %d", s.Times)
		}
		effects, err := buildEffects(s.Effects)
		if err != nil {
			return nil, err
		}
		desc := s.Description
		if desc == "" {
			desc = "Timed"
		}
		return trigger.NewTimed(desc, s.Times, effects...), nil
	default:
		return nil, fmt.Errorf("unknown trigger type %q", s.Type)
	}
}

func buildRequirements(s RequireSpec) (action.Requirements, error) {
	var r action.Requirements
	switch strings.ToLower(strings.TrimSpace(s.Mode)) {
	case "", "any":
		r.Match = action.MatchAny
	case "all":
		r.Match = action.MatchAll
	default:
		return r, fmt.Errorf("unknown require mode %q", s.Mode)
	}

	var err error
	if r.Source, err = buildThresholds(s.Source); err != nil {
		return r, fmt.Errorf("require source: %w", err)
	}
	if r.Target, err = buildThresholds(s.Target); err != nil {
		return r, fmt.Errorf("require target: %w", err)
	}
	return r, nil
}

func buildThresholds(m map[string]int) (action.Thresholds, error) {
	entries, err := parseCounts(m)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	out := make(action.Thresholds, len(entries))
	for _, e := range entries {
		out[e.Kind] = e.Count
	}
	return out, nil
}

func buildEffects(specs []EffectSpec) ([]effect.Effect, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]effect.Effect, 0, len(specs))
	for _, s := range specs {
		k, err := token.ParseKind(s.Kind)
		if err != nil {
			return nil, err
		}
		if s.Amount < 0 {
			return nil, fmt.Errorf("negative amount %d for %s", s.Amount, k)
		}
		switch strings.ToLower(strings.TrimSpace(s.Op)) {
		case "add":
			out = append(out, effect.AddToken(k, s.Amount))
		case "remove":
			out = append(out, effect.RemoveToken(k, s.Amount))
		default:
			return nil, fmt.Errorf("unknown effect op %q", s.Op)
		}
	}
	return out, nil
}

// parseCounts converts a kind-name map into entries ordered by kind.
func parseCounts(m map[string]int) ([]token.Entry, error) {
	out := make([]token.Entry, 0, len(m))
	seen := make(map[token.Kind]string, len(m))
	for name, n := range m {
		k, err := token.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[k]; dup {
			return nil, fmt.Errorf("kind %s listed twice (%q, %q)", k, prev, name)
		}
		seen[k] = name
		if n < 0 {
			return nil, fmt.Errorf("negative count %d for %s", n, k)
		}
		out = append(out, token.Entry{Kind: k, Count: n})
	}
	slices.SortFunc(out, func(a, b token.Entry) int { return int(a.Kind) - int(b.Kind) })
	return out, nil
}
