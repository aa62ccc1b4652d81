package policy

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/tokenduel/combat"
	"github.com/milk9111/tokenduel/prefabs"
	"github.com/milk9111/tokenduel/roll"
	"github.com/milk9111/tokenduel/token"
)

const chooseDispatchScript = `
__choice = choose(__view, __engine)
`

// Script asks a tengo script for the action. The script defines
// `choose(view, engine)` and returns an action name, or "" to pass.
type Script struct {
	name     string
	compiled *tengo.Compiled
	src      roll.Source
	log      *zap.Logger
}

// LoadScript compiles an embedded (or on-disk) script from prefabs/scripts.
func LoadScript(name string, src roll.Source, log *zap.Logger) (*Script, error) {
	data, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("policy: load script %s: %w", name, err)
	}
	return NewScript(name, data, src, log)
}

// NewScript compiles source.
func NewScript(name string, source []byte, src roll.Source, log *zap.Logger) (*Script, error) {
	if log == nil {
		log = zap.NewNop()
	}

	script := tengo.NewScript([]byte(string(source) + "\n" + chooseDispatchScript))
	_ = script.Add("__view", map[string]any{})
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__choice", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("policy: compile script %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled, src: src, log: log.With(zap.String("script", name))}, nil
}

// Name returns the script name.
func (s *Script) Name() string { return s.name }

// Choose runs the script. Errors and illegal picks fall back to FirstLegal.
func (s *Script) Choose(snap combat.Snapshot, offers []combat.Offer) (string, bool) {
	if s == nil || s.compiled == nil {
		return FirstLegal{}.Choose(snap, offers)
	}

	if err := s.run(snap, offers); err != nil {
		s.log.Warn("script choose failed", zap.Error(err))
		return FirstLegal{}.Choose(snap, offers)
	}

	name := strings.TrimSpace(s.compiled.Get("__choice").String())
	if name == "" {
		return "", false
	}
	for _, o := range offers {
		if o.Name == name && o.Legal {
			return name, true
		}
	}
	s.log.Warn("script chose an unavailable action", zap.String("action", name))
	return FirstLegal{}.Choose(snap, offers)
}

func (s *Script) run(snap combat.Snapshot, offers []combat.Offer) error {
	if err := s.compiled.Set("__choice", ""); err != nil {
		return err
	}
	if err := s.compiled.Set("__view", buildView(snap, offers)); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", s.buildEngine()); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *Script) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	// roll(n) returns a uniform int in [1, n] from the combat's random source.
	values["roll"] = &tengo.UserFunction{Name: "roll", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 || s.src == nil {
			return &tengo.Int{Value: 1}, nil
		}
		n, ok := tengo.ToInt(args[0])
		if !ok || n < 1 {
			return &tengo.Int{Value: 1}, nil
		}
		return &tengo.Int{Value: int64(roll.Range(s.src, 1, n))}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.log.Debug("script", zap.String("msg", strings.Join(parts, " ")))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func buildView(snap combat.Snapshot, offers []combat.Offer) *tengo.ImmutableMap {
	list := make([]tengo.Object, 0, len(offers))
	for _, o := range offers {
		list = append(list, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"name":        &tengo.String{Value: o.Name},
			"family":      &tengo.String{Value: o.Family.String()},
			"legal":       boolObject(o.Legal),
			"miss_chance": &tengo.Int{Value: int64(o.MissChance)},
		}})
	}

	self := snap.State.Side
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"round":     &tengo.Int{Value: int64(snap.Round)},
		"side":      &tengo.String{Value: self.String()},
		"remaining": &tengo.Int{Value: int64(snap.State.Remaining)},
		"offers":    &tengo.ImmutableArray{Value: list},
		"self":      tokenMap(snap.Actors[self]),
		"opponent":  tokenMap(snap.Actors[self.Other()]),
	}}
}

// tokenMap maps every kind name to its count so scripts can index any kind.
// Kinds the actor does not hold read as 0.
func tokenMap(v combat.ActorView) *tengo.ImmutableMap {
	counts := make(map[string]tengo.Object, len(token.Kinds()))
	for _, k := range token.Kinds() {
		counts[k.String()] = &tengo.Int{Value: 0}
	}
	for _, tc := range v.Tokens {
		counts[tc.Kind.String()] = &tengo.Int{Value: int64(tc.Count)}
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"name":   &tengo.String{Value: v.Name},
		"tokens": &tengo.ImmutableMap{Value: counts},
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
