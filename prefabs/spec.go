package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	ActionsFile = "actions.yaml"
	ActorsFile  = "actors.yaml"
	DuelFile    = "duel.yaml"
)

// LoadSpec loads and decodes one YAML table.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return ParseSpec[T](filename, data)
}

// ParseSpec decodes data. filename only labels errors.
func ParseSpec[T any](filename string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type ActionTableSpec struct {
	Actions []ActionSpec `yaml:"actions"`
}

type ActionSpec struct {
	Name    string       `yaml:"name"`
	Family  string       `yaml:"family"`
	Require RequireSpec  `yaml:"require"`
	Ignore  []string     `yaml:"ignore"`
	Self    []EffectSpec `yaml:"self"`
	Target  []EffectSpec `yaml:"target"`
	Damage  *RangeSpec   `yaml:"damage"`
}

// RequireSpec holds minimum counts by kind name. Mode is "any" (default) or "all".
type RequireSpec struct {
	Mode   string         `yaml:"mode"`
	Source map[string]int `yaml:"source"`
	Target map[string]int `yaml:"target"`
}

type EffectSpec struct {
	Op     string `yaml:"op"`
	Kind   string `yaml:"kind"`
	Amount int    `yaml:"amount"`
}

type RangeSpec struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

type ActorTableSpec struct {
	Actors []ActorSpec `yaml:"actors"`
}

type ActorSpec struct {
	Name       string         `yaml:"name"`
	Capacities map[string]int `yaml:"capacities"`
	Tokens     map[string]int `yaml:"tokens"`
	Triggers   []TriggerSpec  `yaml:"triggers"`
}

// TriggerSpec describes one registered trigger. Type selects which of the
// remaining fields apply:
//
//	damage_resolution: mode (lethal|always)
//	decay:             kind, amount
//	timed:             description, times, effects
type TriggerSpec struct {
	When        string       `yaml:"when"`
	Type        string       `yaml:"type"`
	Mode        string       `yaml:"mode"`
	Kind        string       `yaml:"kind"`
	Amount      int          `yaml:"amount"`
	Description string       `yaml:"description"`
	Times       int          `yaml:"times"`
	Effects     []EffectSpec `yaml:"effects"`
}

type DuelSpec struct {
	ActionsPerRound int    `yaml:"actions_per_round"`
	First           string `yaml:"first"`
	Second          string `yaml:"second"`
	Opponent        string `yaml:"opponent"`
}
