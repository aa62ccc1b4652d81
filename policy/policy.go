// Package policy chooses actions for a side. Policies never mutate combat
// state; they only name an action from the offers they are given.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/milk9111/tokenduel/combat"
	"github.com/milk9111/tokenduel/roll"
)

// Policy picks the action to perform. ok is false when it wants to pass.
type Policy interface {
	Choose(snap combat.Snapshot, offers []combat.Offer) (name string, ok bool)
}

// FirstLegal picks the first legal offer in catalog order.
type FirstLegal struct{}

func (FirstLegal) Choose(_ combat.Snapshot, offers []combat.Offer) (string, bool) {
	for _, o := range offers {
		if o.Legal {
			return o.Name, true
		}
	}
	return "", false
}

// Random picks uniformly among the legal offers.
type Random struct {
	Src roll.Source
}

func (r *Random) Choose(_ combat.Snapshot, offers []combat.Offer) (string, bool) {
	legal := legalNames(offers)
	if len(legal) == 0 || r == nil || r.Src == nil {
		return "", false
	}
	return legal[r.Src.Intn(len(legal))], true
}

// Parse builds a policy from "first", "random" or "script:<name>".
func Parse(spec string, src roll.Source, log *zap.Logger) (Policy, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "" || spec == "first":
		return FirstLegal{}, nil
	case spec == "random":
		return &Random{Src: src}, nil
	case strings.HasPrefix(spec, "script:"):
		name := strings.TrimSpace(strings.TrimPrefix(spec, "script:"))
		if name == "" {
			return nil, fmt.Errorf("policy: empty script name")
		}
		if !strings.HasSuffix(name, ".tengo") {
			name += ".tengo"
		}
		return LoadScript(name, src, log)
	default:
		return nil, fmt.Errorf("policy: unknown policy %q", spec)
	}
}

// Step lets p act once for the side whose turn it is. A policy that passes,
// or has nothing legal, consumes the slot with Pass.
func Step(c *combat.Combat, p Policy) (combat.Result, error) {
	offers := c.Offers()
	if c.Finished() {
		return combat.Result{}, combat.ErrCombatOver
	}
	name, ok := p.Choose(c.Snapshot(), offers)
	if !ok {
		return c.Pass()
	}
	return c.Perform(name)
}

// Drive plays c with first and second until it finishes or maxSteps slots
// have been consumed. maxSteps <= 0 means no limit.
func Drive(c *combat.Combat, first, second Policy, maxSteps int) (int, error) {
	steps := 0
	for !c.Finished() && (maxSteps <= 0 || steps < maxSteps) {
		p := first
		if c.State().Side == combat.Second {
			p = second
		}
		if _, err := Step(c, p); err != nil {
			if errors.Is(err, combat.ErrCombatOver) {
				break
			}
			return steps, err
		}
		steps++
	}
	return steps, nil
}

func legalNames(offers []combat.Offer) []string {
	var out []string
	for _, o := range offers {
		if o.Legal {
			out = append(out, o.Name)
		}
	}
	return out
}
