package token

import "sort"

// DefaultCapacity applies to any kind whose capacity was never set.
const DefaultCapacity = 1

// Entry is one (kind, count) pair of a ledger.
type Entry struct {
	Kind  Kind
	Count int
}

// Ledger holds an actor's token counts and per-kind capacities.
// Every stored count is in (0, Capacity(kind)]; a kind that drops to zero is
// deleted rather than stored.
type Ledger struct {
	counts     map[Kind]int
	capacities map[Kind]int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		counts:     make(map[Kind]int),
		capacities: make(map[Kind]int),
	}
}

// Count returns the stored count, 0 for absent kinds.
func (l *Ledger) Count(k Kind) int {
	if l == nil {
		return 0
	}
	return l.counts[k]
}

// Has reports whether at least one token of k is held.
func (l *Ledger) Has(k Kind) bool {
	return l.Count(k) > 0
}

// Capacity returns the configured capacity of k or DefaultCapacity.
func (l *Ledger) Capacity(k Kind) int {
	if l == nil {
		return DefaultCapacity
	}
	if c, ok := l.capacities[k]; ok {
		return c
	}
	return DefaultCapacity
}

// SetCapacity changes the capacity of k and clamps the stored count to it.
func (l *Ledger) SetCapacity(k Kind, capacity int) {
	if l == nil {
		return
	}
	l.ensure()
	if capacity < 0 {
		capacity = 0
	}
	l.capacities[k] = capacity
	if l.counts[k] > capacity {
		l.store(k, capacity)
	}
}

// Add raises the count of k by amount, silently capped at Capacity(k).
func (l *Ledger) Add(k Kind, amount int) {
	if l == nil || amount <= 0 {
		return
	}
	l.ensure()
	l.store(k, min(l.Capacity(k), l.counts[k]+amount))
}

// Remove lowers the count of k by amount. When the count would reach zero or
// below, the kind is removed entirely.
func (l *Ledger) Remove(k Kind, amount int) {
	if l == nil || amount <= 0 {
		return
	}
	current, ok := l.counts[k]
	if !ok {
		return
	}
	if current > amount {
		l.counts[k] = current - amount
		return
	}
	delete(l.counts, k)
}

// Entries returns the present kinds ordered by kind.
func (l *Ledger) Entries() []Entry {
	if l == nil || len(l.counts) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(l.counts))
	for k, c := range l.counts {
		out = append(out, Entry{Kind: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Len returns the number of present kinds.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.counts)
}

// Clone returns an independent copy, capacities included.
func (l *Ledger) Clone() *Ledger {
	out := NewLedger()
	if l == nil {
		return out
	}
	for k, c := range l.capacities {
		out.capacities[k] = c
	}
	for k, c := range l.counts {
		out.counts[k] = c
	}
	return out
}

func (l *Ledger) store(k Kind, count int) {
	if count <= 0 {
		delete(l.counts, k)
		return
	}
	l.counts[k] = count
}

func (l *Ledger) ensure() {
	if l.counts == nil {
		l.counts = make(map[Kind]int)
	}
	if l.capacities == nil {
		l.capacities = make(map[Kind]int)
	}
}
