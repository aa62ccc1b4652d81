// Package combat runs a two-actor duel: turn sequencing, trigger passes,
// action resolution and defeat detection.
package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/tokenduel/action"
	"github.com/milk9111/tokenduel/effect"
	"github.com/milk9111/tokenduel/roll"
	"github.com/milk9111/tokenduel/trigger"
)

var (
	// ErrUnknownAction is returned when the requested action is not in the catalog.
	ErrUnknownAction = errors.New("combat: unknown action")
	// ErrIllegalAction is returned when the acting side fails the action's requirements.
	ErrIllegalAction = errors.New("combat: illegal action")
	// ErrCombatOver is returned once an actor has been defeated.
	ErrCombatOver = errors.New("combat: combat is over")
)

// Option configures a Combat.
type Option func(*Combat)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Combat) {
		if l != nil {
			c.log = l
		}
	}
}

// WithID overrides the generated combat identifier.
func WithID(id string) Option {
	return func(c *Combat) {
		if id != "" {
			c.id = id
		}
	}
}

// Result reports what a single consumed action slot did.
type Result struct {
	Side       Side
	Action     string
	Passed     bool
	Hit        bool
	Resolution action.Resolution
	Boundary   Boundary
	Next       State
}

// Combat owns both actors, the catalog, the random source and the turn
// machine. It is not safe for concurrent use.
type Combat struct {
	id      string
	log     *zap.Logger
	events  *Emitter
	actors  [2]*Actor
	catalog *action.Catalog
	rng     roll.Source
	machine *Machine
	round   int

	roundStarted bool
	turnStarted  bool
	outcome      Outcome
}

// New creates a combat at Turn(First, actionsPerRound), round 1. Both actors
// start with actionsPerRound remaining.
func New(first, second *Actor, catalog *action.Catalog, src roll.Source, actionsPerRound int, opts ...Option) *Combat {
	c := &Combat{
		id:      uuid.NewString(),
		log:     zap.NewNop(),
		events:  &Emitter{},
		actors:  [2]*Actor{first, second},
		catalog: catalog,
		rng:     src,
		machine: NewMachine(actionsPerRound),
		round:   1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("combat_id", c.id))
	for _, a := range c.actors {
		if a != nil {
			a.Remaining = c.machine.ActionsPerRound()
		}
	}
	c.checkDefeat()
	return c
}

// ID returns the combat identifier.
func (c *Combat) ID() string { return c.id }

// Events returns the emitter used for combat events.
func (c *Combat) Events() *Emitter { return c.events }

// State returns the current turn state.
func (c *Combat) State() State { return c.machine.State() }

// Round returns the 1-based round number.
func (c *Combat) Round() int { return c.round }

// Actor returns the actor on side s.
func (c *Combat) Actor(s Side) *Actor { return c.actors[s] }

// Active returns the actor whose turn it is.
func (c *Combat) Active() *Actor { return c.actors[c.State().Side] }

// Catalog returns the current catalog.
func (c *Combat) Catalog() *action.Catalog { return c.catalog }

// SetCatalog swaps the catalog. Actions already resolved are unaffected.
func (c *Combat) SetCatalog(catalog *action.Catalog) {
	c.catalog = catalog
	c.log.Info("catalog replaced", zap.Int("actions", catalog.Len()))
}

// Finished reports whether an actor has been defeated.
func (c *Combat) Finished() bool { return c.outcome.Finished }

// Outcome returns the result of a finished combat.
func (c *Combat) Outcome() Outcome { return c.outcome }

// BeginTurn runs the start-of-slot trigger passes for the acting side:
// RoundStart at the start of each round, then TurnStart. It is idempotent
// until the slot is consumed.
func (c *Combat) BeginTurn() {
	if c.outcome.Finished || c.turnStarted {
		return
	}
	c.turnStarted = true

	st := c.State()
	actor := c.actors[st.Side]
	if !c.roundStarted && st.Side == First {
		c.roundStarted = true
		c.firePass(EventRoundStart, trigger.RoundStart, st.Side, actor)
	}
	c.firePass(EventTurnStart, trigger.TurnStart, st.Side, actor)
	c.checkDefeat()
}

// Offers lists every catalog action and whether the acting side may perform
// it now. Offers begins the turn if needed.
func (c *Combat) Offers() []Offer {
	if c.outcome.Finished {
		return nil
	}
	c.BeginTurn()
	if c.outcome.Finished {
		return nil
	}

	source, target := c.participants()
	actions := c.catalog.Actions()
	offers := make([]Offer, 0, len(actions))
	for _, a := range actions {
		offers = append(offers, Offer{
			Name:       a.Name,
			Family:     a.Family,
			Legal:      a.CanPerform(source.Tokens, target.Tokens),
			MissChance: a.MissChance(source.Tokens, target.Tokens),
		})
	}
	return offers
}

// CanPerform reports whether the acting side may perform the named action now.
func (c *Combat) CanPerform(name string) bool {
	for _, o := range c.Offers() {
		if o.Name == name {
			return o.Legal
		}
	}
	return false
}

// Perform resolves the named action for the acting side and consumes one
// action slot, hit or miss. Unknown and illegal actions consume nothing.
func (c *Combat) Perform(name string) (Result, error) {
	if c.outcome.Finished {
		return Result{}, ErrCombatOver
	}
	a, ok := c.catalog.Lookup(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	c.BeginTurn()
	if c.outcome.Finished {
		return Result{}, ErrCombatOver
	}

	source, target := c.participants()
	if !a.CanPerform(source.Tokens, target.Tokens) {
		return Result{}, fmt.Errorf("%w: %q", ErrIllegalAction, name)
	}

	side := c.State().Side
	res, hit := a.Perform(c.rng, source.Tokens, target.Tokens)
	if hit {
		effect.ApplyAll(res.Self, source.Tokens)
		effect.ApplyAll(res.Opponent, target.Tokens)
	}

	evt := Event{Type: EventMiss, Round: c.round, Side: side, Actor: source.Name, Action: a.Name}
	switch {
	case !hit:
	case a.Family == action.SingleEnemy:
		evt.Type = EventHit
	default:
		evt.Type = EventPerformed
	}
	evt.Self, evt.Opponent = res.Self, res.Opponent
	c.log.Debug("action resolved",
		zap.String("actor", source.Name),
		zap.String("action", a.Name),
		zap.String("outcome", string(evt.Type)),
		zap.Int("round", c.round),
	)
	c.events.Emit(evt)
	c.checkDefeat()

	out := Result{Side: side, Action: a.Name, Hit: hit, Resolution: res}
	out.Next, out.Boundary = c.consume(side)
	return out, nil
}

// Pass gives up the current action slot without acting.
func (c *Combat) Pass() (Result, error) {
	if c.outcome.Finished {
		return Result{}, ErrCombatOver
	}
	c.BeginTurn()
	if c.outcome.Finished {
		return Result{}, ErrCombatOver
	}

	side := c.State().Side
	actor := c.actors[side]
	c.log.Debug("pass", zap.String("actor", actor.Name), zap.Int("round", c.round))
	c.events.Emit(Event{Type: EventPass, Round: c.round, Side: side, Actor: actor.Name})

	out := Result{Side: side, Passed: true}
	out.Next, out.Boundary = c.consume(side)
	return out, nil
}

// Snapshot returns a read-only copy of the combat for rendering.
func (c *Combat) Snapshot() Snapshot {
	s := Snapshot{
		ID:      c.id,
		State:   c.State(),
		Round:   c.round,
		Outcome: c.outcome,
	}
	for _, side := range Sides {
		s.Actors[side] = viewActor(c.actors[side], side)
	}
	return s
}

func (c *Combat) participants() (source, target *Actor) {
	side := c.State().Side
	return c.actors[side], c.actors[side.Other()]
}

// consume advances the machine and runs the end-of-slot trigger passes for
// the side that just acted.
func (c *Combat) consume(side Side) (State, Boundary) {
	next, boundary := c.machine.Advance()
	c.turnStarted = false

	actor := c.actors[side]
	if next.Side == side {
		actor.Remaining = next.Remaining
	} else {
		actor.Remaining = 0
		c.actors[next.Side].Remaining = next.Remaining
	}

	if c.outcome.Finished {
		return next, boundary
	}
	c.firePass(EventTurnEnd, trigger.TurnEnd, side, actor)
	if boundary == RoundBoundary {
		c.firePass(EventRoundEnd, trigger.RoundEnd, side, actor)
		c.round++
		c.roundStarted = false
	}
	c.checkDefeat()
	return next, boundary
}

func (c *Combat) firePass(typ EventType, cond trigger.Condition, side Side, actor *Actor) {
	fired := actor.fire(cond)
	if len(fired) > 0 {
		c.log.Debug("triggers fired",
			zap.String("actor", actor.Name),
			zap.String("condition", cond.String()),
			zap.Strings("triggers", fired),
		)
	}
	c.events.Emit(Event{Type: typ, Round: c.round, Side: side, Actor: actor.Name, Triggers: fired})
}

func (c *Combat) checkDefeat() {
	if c.outcome.Finished {
		return
	}
	first, second := c.actors[First].Defeated(), c.actors[Second].Defeated()
	if !first && !second {
		return
	}

	c.outcome = Outcome{Finished: true, Draw: first && second}
	if !c.outcome.Draw {
		c.outcome.Winner = Second
		if second {
			c.outcome.Winner = First
		}
	}
	for _, side := range Sides {
		a := c.actors[side]
		if a.Defeated() {
			name := ""
			if a != nil {
				name = a.Name
			}
			c.log.Info("actor defeated", zap.String("actor", name), zap.Int("round", c.round))
			c.events.Emit(Event{Type: EventDefeated, Round: c.round, Side: side, Actor: name})
		}
	}
}
