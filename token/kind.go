package token

import (
	"fmt"
	"strings"
)

// Kind identifies a countable marker held by an actor.
type Kind int

const (
	Health Kind = iota
	Stamina
	Dodge
	Blind
	Block
	Vulnerable
	Daze
	Stun
	Weak
	Strong
	Damage
	Unstable
	WideOpen
	Counter
	ExtraHealth

	kindCount
)

var kindNames = [kindCount]string{
	Health:      "health",
	Stamina:     "stamina",
	Dodge:       "dodge",
	Blind:       "blind",
	Block:       "block",
	Vulnerable:  "vulnerable",
	Daze:        "daze",
	Stun:        "stun",
	Weak:        "weak",
	Strong:      "strong",
	Damage:      "damage",
	Unstable:    "unstable",
	WideOpen:    "wide_open",
	Counter:     "counter",
	ExtraHealth: "extra_health",
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsResource reports whether k is a resource rather than a status.
func (k Kind) IsResource() bool {
	return k == Health || k == Stamina
}

// ParseKind resolves a data-file name such as "wide_open" or "WideOpen".
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	for k, name := range kindNames {
		if norm == name || norm == strings.ReplaceAll(name, "_", "") {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("token: unknown kind %q", s)
}
