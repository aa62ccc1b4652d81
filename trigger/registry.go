package trigger

import "github.com/milk9111/tokenduel/token"

// Registry keeps the triggers of one actor, grouped by condition and kept in
// registration order.
type Registry struct {
	triggers map[Condition][]Trigger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{triggers: make(map[Condition][]Trigger)}
}

// Register appends t to the list for c.
func (r *Registry) Register(c Condition, t Trigger) {
	if r == nil || t == nil {
		return
	}
	if r.triggers == nil {
		r.triggers = make(map[Condition][]Trigger)
	}
	r.triggers[c] = append(r.triggers[c], t)
}

// Fire runs every trigger registered under c against l, in registration
// order. It returns the descriptions of the triggers that ran.
func (r *Registry) Fire(c Condition, l *token.Ledger) []string {
	if r == nil {
		return nil
	}
	list := r.triggers[c]
	if len(list) == 0 {
		return nil
	}
	fired := make([]string, 0, len(list))
	for _, t := range list {
		fired = append(fired, t.Description())
		t.Fire(l)
	}
	return fired
}

// Prune drops every trigger under c that is no longer alive and removes the
// condition once its list is empty.
func (r *Registry) Prune(c Condition) {
	if r == nil {
		return
	}
	list, ok := r.triggers[c]
	if !ok {
		return
	}
	kept := list[:0]
	for _, t := range list {
		if t.Alive() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}
	if len(kept) == 0 {
		delete(r.triggers, c)
		return
	}
	r.triggers[c] = kept
}

// FireAndPrune fires c and immediately prunes it.
func (r *Registry) FireAndPrune(c Condition, l *token.Ledger) []string {
	fired := r.Fire(c, l)
	r.Prune(c)
	return fired
}

// Has reports whether any trigger is registered under c.
func (r *Registry) Has(c Condition) bool {
	if r == nil {
		return false
	}
	_, ok := r.triggers[c]
	return ok
}

// Triggers returns a copy of the list registered under c.
func (r *Registry) Triggers(c Condition) []Trigger {
	if r == nil || len(r.triggers[c]) == 0 {
		return nil
	}
	return append([]Trigger(nil), r.triggers[c]...)
}

// Len returns the number of held triggers across all conditions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, list := range r.triggers {
		n += len(list)
	}
	return n
}
