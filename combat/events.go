package combat

import (
	"fmt"
	"strings"

	"github.com/milk9111/tokenduel/effect"
)

// EventType defines the kind of combat event.
type EventType string

const (
	EventRoundStart EventType = "round_start"
	EventTurnStart  EventType = "turn_start"
	EventHit        EventType = "hit"
	EventMiss       EventType = "miss"
	EventPerformed  EventType = "performed"
	EventPass       EventType = "pass"
	EventTurnEnd    EventType = "turn_end"
	EventRoundEnd   EventType = "round_end"
	EventDefeated   EventType = "defeated"
)

// Event is emitted while a combat advances.
type Event struct {
	Type     EventType
	Round    int
	Side     Side
	Actor    string
	Action   string
	Triggers []string
	Self     []effect.Effect
	Opponent []effect.Effect
}

// EventHandler handles combat events.
type EventHandler func(evt Event)

// Emitter fans events out to its handlers.
type Emitter struct {
	Handlers []EventHandler
}

// Subscribe appends h.
func (e *Emitter) Subscribe(h EventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *Emitter) Emit(evt Event) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// String renders the event as one combat log line. Events with nothing to
// report render as "".
func (evt Event) String() string {
	switch evt.Type {
	case EventRoundStart:
		return evt.withTriggers(fmt.Sprintf("Round %d", evt.Round))
	case EventTurnStart, EventTurnEnd, EventRoundEnd:
		if len(evt.Triggers) == 0 {
			return ""
		}
		return evt.withTriggers(evt.Actor)
	case EventHit:
		return fmt.Sprintf("%s hits with %s%s", evt.Actor, evt.Action, evt.effectSummary())
	case EventMiss:
		return fmt.Sprintf("%s misses with %s", evt.Actor, evt.Action)
	case EventPerformed:
		return fmt.Sprintf("%s uses %s%s", evt.Actor, evt.Action, evt.effectSummary())
	case EventPass:
		return evt.Actor + " passes"
	case EventDefeated:
		return evt.Actor + " is defeated"
	default:
		return ""
	}
}

func (evt Event) withTriggers(prefix string) string {
	if len(evt.Triggers) == 0 {
		return prefix
	}
	return fmt.Sprintf("%s [%s]: %s", prefix, evt.Type, strings.Join(evt.Triggers, ", "))
}

func (evt Event) effectSummary() string {
	var parts []string
	if s := joinEffects(evt.Self); s != "" {
		parts = append(parts, "self "+s)
	}
	if s := joinEffects(evt.Opponent); s != "" {
		parts = append(parts, "foe "+s)
	}
	if len(parts) == 0 {
		return ""
	}
	return ": " + strings.Join(parts, "; ")
}

func joinEffects(effects []effect.Effect) string {
	out := make([]string, 0, len(effects))
	for _, e := range effects {
		out = append(out, e.String())
	}
	return strings.Join(out, ", ")
}
