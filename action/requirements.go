package action

import "github.com/milk9111/tokenduel/token"

// Thresholds maps a kind to the minimum count it must reach.
type Thresholds map[token.Kind]int

// Met reports whether every threshold holds on l. Empty thresholds are
// trivially met.
func (t Thresholds) Met(l *token.Ledger) bool {
	for k, minimum := range t {
		if l.Count(k) < minimum {
			return false
		}
	}
	return true
}

// Match decides how the source and target threshold sets combine.
type Match int

const (
	// MatchAny makes an action legal when either side's thresholds hold. An
	// action declaring nothing on one side is therefore always legal.
	MatchAny Match = iota
	// MatchAll requires both sides' thresholds to hold.
	MatchAll
)

func (m Match) String() string {
	if m == MatchAll {
		return "all"
	}
	return "any"
}

// Requirements are the legality rule of an action.
type Requirements struct {
	Source Thresholds
	Target Thresholds
	Match  Match
}

// Met evaluates the requirements for source acting against target.
func (r Requirements) Met(source, target *token.Ledger) bool {
	if r.Match == MatchAll {
		return r.Source.Met(source) && r.Target.Met(target)
	}
	return r.Source.Met(source) || r.Target.Met(target)
}
