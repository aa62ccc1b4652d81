package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tokenduel/action"
	"github.com/milk9111/tokenduel/combat"
	"github.com/milk9111/tokenduel/effect"
	"github.com/milk9111/tokenduel/roll"
	"github.com/milk9111/tokenduel/token"
	"github.com/milk9111/tokenduel/trigger"
)

func offers(pairs ...any) []combat.Offer {
	var out []combat.Offer
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, combat.Offer{Name: pairs[i].(string), Legal: pairs[i+1].(bool), Family: action.SingleEnemy})
	}
	return out
}

func TestFirstLegal(t *testing.T) {
	cases := []struct {
		name   string
		offers []combat.Offer
		want   string
		ok     bool
	}{
		{"first_is_legal", offers("Jab", true, "Hook", true), "Jab", true},
		{"skips_illegal", offers("Haymaker", false, "Jab", true), "Jab", true},
		{"none_legal", offers("Haymaker", false), "", false},
		{"no_offers", nil, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := FirstLegal{}.Choose(combat.Snapshot{}, c.offers)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.ok, ok)
		})
	}
}

func TestRandomPicksAmongLegal(t *testing.T) {
	p := &Random{Src: roll.NewFixed(1)}

	got, ok := p.Choose(combat.Snapshot{}, offers("Jab", true, "Haymaker", false, "Hook", true))

	require.True(t, ok)
	assert.Equal(t, "Hook", got)

	_, ok = p.Choose(combat.Snapshot{}, offers("Haymaker", false))
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	p, err := Parse("first", nil, nil)
	require.NoError(t, err)
	assert.IsType(t, FirstLegal{}, p)

	p, err = Parse("random", roll.New(1), nil)
	require.NoError(t, err)
	assert.IsType(t, &Random{}, p)

	p, err = Parse("script:aggressive", roll.New(1), nil)
	require.NoError(t, err)
	assert.Equal(t, "aggressive.tengo", p.(*Script).Name())

	_, err = Parse("script:", nil, nil)
	assert.Error(t, err)
	_, err = Parse("telepathic", nil, nil)
	assert.Error(t, err)
	_, err = Parse("script:missing", nil, nil)
	assert.Error(t, err)
}

const cautiousScript = `
choose := func(view, engine) {
	for i, offer in view.offers {
		if offer.legal && offer.miss_chance == 0 {
			return offer.name
		}
	}
	return ""
}
`

func TestScriptChoose(t *testing.T) {
	s, err := NewScript("cautious", []byte(cautiousScript), roll.New(1), nil)
	require.NoError(t, err)

	in := []combat.Offer{
		{Name: "Jab", Legal: true, MissChance: 50},
		{Name: "Guard", Legal: false},
		{Name: "Feint", Legal: true},
	}
	got, ok := s.Choose(combat.Snapshot{}, in)
	require.True(t, ok)
	assert.Equal(t, "Feint", got)

	_, ok = s.Choose(combat.Snapshot{}, []combat.Offer{{Name: "Jab", Legal: true, MissChance: 50}})
	assert.False(t, ok, "empty choice passes")
}

func TestScriptFallsBackOnIllegalChoice(t *testing.T) {
	s, err := NewScript("stubborn", []byte(`choose := func(view, engine) { return "Haymaker" }`), nil, nil)
	require.NoError(t, err)

	got, ok := s.Choose(combat.Snapshot{}, offers("Haymaker", false, "Jab", true))

	require.True(t, ok)
	assert.Equal(t, "Jab", got)
}

func TestScriptSeesTokens(t *testing.T) {
	src := `
choose := func(view, engine) {
	if is_undefined(view.opponent.tokens.extra_health) {
		return "Missing"
	}
	if view.self.tokens.stamina == 0 {
		return "Rest"
	}
	return "Jab"
}
`
	s, err := NewScript("tokens", []byte(src), nil, nil)
	require.NoError(t, err)
	in := offers("Jab", true, "Rest", true, "Missing", true)

	snap := combat.Snapshot{}
	snap.Actors[combat.First].Tokens = []combat.TokenCount{{Kind: token.Stamina, Count: 1, Capacity: 3}}
	got, _ := s.Choose(snap, in)
	assert.Equal(t, "Jab", got)

	got, _ = s.Choose(combat.Snapshot{}, in)
	assert.Equal(t, "Rest", got)
}

func TestCautiousSidestepsWithLastAction(t *testing.T) {
	s, err := LoadScript("cautious.tengo", roll.New(1), nil)
	require.NoError(t, err)
	in := offers("Jab", true, "Sidestep", true)

	cases := []struct {
		name      string
		remaining int
		dodge     int
		want      string
	}{
		{"first_of_two_jabs", 2, 0, "Jab"},
		{"last_action_sidesteps", 1, 0, "Sidestep"},
		{"already_dodging_jabs", 1, 1, "Jab"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			snap := combat.Snapshot{State: combat.State{Side: combat.Second, Remaining: c.remaining}}
			if c.dodge > 0 {
				snap.Actors[combat.Second].Tokens = []combat.TokenCount{{Kind: token.Dodge, Count: c.dodge, Capacity: 1}}
			}
			got, ok := s.Choose(snap, in)
			require.True(t, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestNewScriptCompileError(t *testing.T) {
	_, err := NewScript("broken", []byte(`choose := func(view, engine) {`), nil, nil)
	assert.Error(t, err)
}

func duel(t *testing.T, health int) *combat.Combat {
	t.Helper()
	mk := func(name string) *combat.Actor {
		a := combat.NewActor(name)
		a.Tokens.SetCapacity(token.Health, health)
		a.Tokens.Add(token.Health, health)
		a.Tokens.SetCapacity(token.Damage, 99)
		a.Triggers.Register(trigger.TurnStart, trigger.DamageResolution{Mode: trigger.ResolveAlways})
		return a
	}
	jab := action.Action{
		Name:          "Jab",
		Family:        action.SingleEnemy,
		TargetEffects: []effect.Effect{effect.AddToken(token.Damage, 2)},
	}
	cat, err := action.NewCatalog(jab)
	require.NoError(t, err)
	return combat.New(mk("Hero"), mk("Brute"), cat, roll.Percentages(1), 1)
}

func TestDriveRunsToOutcome(t *testing.T) {
	c := duel(t, 4)

	steps, err := Drive(c, FirstLegal{}, FirstLegal{}, 100)

	require.NoError(t, err)
	require.True(t, c.Finished())
	assert.Equal(t, combat.Outcome{Finished: true, Winner: combat.First}, c.Outcome())
	assert.Equal(t, 3, steps)
}

type passer struct{}

func (passer) Choose(combat.Snapshot, []combat.Offer) (string, bool) { return "", false }

func TestDriveStopsAtMaxSteps(t *testing.T) {
	c := duel(t, 4)

	steps, err := Drive(c, passer{}, passer{}, 5)

	require.NoError(t, err)
	assert.Equal(t, 5, steps)
	assert.False(t, c.Finished())
	assert.Equal(t, 3, c.Round())
}
