package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tokenduel/effect"
	"github.com/milk9111/tokenduel/token"
)

func combatLedger(health, damage int) *token.Ledger {
	l := token.NewLedger()
	l.SetCapacity(token.Health, 20)
	l.SetCapacity(token.Damage, 20)
	l.Add(token.Health, health)
	l.Add(token.Damage, damage)
	return l
}

type countingTrigger struct {
	fired int
	life  int
	log   *[]string
	name  string
}

func (c *countingTrigger) Description() string { return c.name }

func (c *countingTrigger) Fire(*token.Ledger) {
	c.fired++
	if c.log != nil {
		*c.log = append(*c.log, c.name)
	}
}

func (c *countingTrigger) Alive() bool { return c.fired < c.life }

func TestDamageResolutionLethal(t *testing.T) {
	cases := []struct {
		name              string
		health, damage    int
		wantHealth, wantD int
	}{
		{"below_health_waits", 10, 4, 10, 4},
		{"equal_zeroes_both", 5, 5, 0, 0},
		{"above_health_zeroes_both", 3, 8, 0, 0},
		{"nothing_pending", 7, 0, 7, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := combatLedger(c.health, c.damage)
			DamageResolution{}.Fire(l)
			assert.Equal(t, c.wantHealth, l.Count(token.Health), "health")
			assert.Equal(t, c.wantD, l.Count(token.Damage), "damage")
		})
	}
}

func TestDamageResolutionAlways(t *testing.T) {
	l := combatLedger(10, 4)
	DamageResolution{Mode: ResolveAlways}.Fire(l)
	assert.Equal(t, 6, l.Count(token.Health))
	assert.Equal(t, 0, l.Count(token.Damage))
	assert.True(t, DamageResolution{}.Alive())
}

func TestTimedExpires(t *testing.T) {
	l := token.NewLedger()
	l.SetCapacity(token.Health, 10)
	regen := NewTimed("Regenerate", 2, effect.AddToken(token.Health, 1))

	regen.Fire(l)
	require.True(t, regen.Alive())
	regen.Fire(l)
	require.False(t, regen.Alive())
	regen.Fire(l)

	assert.Equal(t, 2, l.Count(token.Health))
}

func TestDecay(t *testing.T) {
	l := token.NewLedger()
	l.SetCapacity(token.Dodge, 3)
	l.Add(token.Dodge, 3)
	d := Decay{Kind: token.Dodge, Amount: 2}

	d.Fire(l)
	assert.Equal(t, 1, l.Count(token.Dodge))
	d.Fire(l)
	assert.Equal(t, 0, l.Count(token.Dodge))
	assert.True(t, d.Alive())
}

func TestAbsorb(t *testing.T) {
	cases := []struct {
		name                  string
		damage, block         int
		wantDamage, wantBlock int
	}{
		{"block_covers_damage", 2, 3, 0, 1},
		{"damage_exceeds_block", 5, 2, 3, 0},
		{"equal", 2, 2, 0, 0},
		{"no_damage_keeps_block", 0, 2, 0, 2},
		{"no_block", 4, 0, 4, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := combatLedger(10, c.damage)
			l.SetCapacity(token.Block, 5)
			l.Add(token.Block, c.block)

			Absorb{Kind: token.Block}.Fire(l)

			assert.Equal(t, c.wantDamage, l.Count(token.Damage), "damage")
			assert.Equal(t, c.wantBlock, l.Count(token.Block), "block")
			assert.Equal(t, 10, l.Count(token.Health), "health")
		})
	}
}

func TestAbsorbBeforeResolution(t *testing.T) {
	l := combatLedger(10, 4)
	l.SetCapacity(token.Block, 2)
	l.Add(token.Block, 2)
	r := NewRegistry()
	r.Register(TurnStart, Absorb{Kind: token.Block})
	r.Register(TurnStart, DamageResolution{Mode: ResolveAlways})

	r.FireAndPrune(TurnStart, l)

	assert.Equal(t, 8, l.Count(token.Health))
	assert.Equal(t, 0, l.Count(token.Damage))
	assert.Equal(t, 0, l.Count(token.Block))
	assert.Equal(t, 2, r.Len())
}

func TestRegistryFiresInRegistrationOrder(t *testing.T) {
	var log []string
	r := NewRegistry()
	r.Register(TurnStart, &countingTrigger{name: "a", life: 5, log: &log})
	r.Register(TurnStart, &countingTrigger{name: "b", life: 5, log: &log})
	r.Register(TurnEnd, &countingTrigger{name: "c", life: 5, log: &log})

	fired := r.Fire(TurnStart, token.NewLedger())

	assert.Equal(t, []string{"a", "b"}, log)
	assert.Equal(t, []string{"a", "b"}, fired)
}

func TestRegistryPruneDropsDeadTriggers(t *testing.T) {
	r := NewRegistry()
	once := &countingTrigger{name: "once", life: 1}
	twice := &countingTrigger{name: "twice", life: 2}
	r.Register(TurnEnd, once)
	r.Register(TurnEnd, twice)
	l := token.NewLedger()

	r.FireAndPrune(TurnEnd, l)
	require.Equal(t, 1, r.Len())
	require.True(t, r.Has(TurnEnd))

	r.FireAndPrune(TurnEnd, l)
	assert.Equal(t, 1, once.fired, "a dead trigger must not fire again")
	assert.Equal(t, 2, twice.fired)
	assert.False(t, r.Has(TurnEnd), "empty condition key must be removed")
	assert.Equal(t, 0, r.Len())
}

func TestRegistryFireDoesNotPrune(t *testing.T) {
	r := NewRegistry()
	once := &countingTrigger{name: "once", life: 1}
	r.Register(RoundEnd, once)

	r.Fire(RoundEnd, token.NewLedger())
	require.True(t, r.Has(RoundEnd))
	r.Fire(RoundEnd, token.NewLedger())
	assert.Equal(t, 2, once.fired)
}

func TestRegistryTriggersIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(RoundStart, DamageResolution{})
	list := r.Triggers(RoundStart)
	list[0] = nil
	assert.NotNil(t, r.Triggers(RoundStart)[0])
	assert.Nil(t, r.Triggers(TurnEnd))
}

func TestParseCondition(t *testing.T) {
	for _, c := range Conditions {
		got, err := ParseCondition(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCondition("TurnStart")
	require.NoError(t, err)
	assert.Equal(t, TurnStart, got)
	_, err = ParseCondition("midnight")
	assert.Error(t, err)
}
