package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/tokenduel/combat"
	"github.com/milk9111/tokenduel/policy"
	"github.com/milk9111/tokenduel/prefabs"
	"github.com/milk9111/tokenduel/roll"
)

// Settings for a batch of headless duels.
type Settings struct {
	Seed            int64
	Duels           int
	MaxSteps        int
	ActionsPerRound int
	Challenger      string
	Opponent        string
}

// Tally summarizes a batch.
type Tally struct {
	Duels      int
	Wins       [2]int
	Draws      int
	Unfinished int
	Rounds     int
}

// AverageRounds is the mean round count over all duels.
func (t Tally) AverageRounds() float64 {
	if t.Duels == 0 {
		return 0
	}
	return float64(t.Rounds) / float64(t.Duels)
}

// Simulate runs s.Duels duels. Duel i uses seed s.Seed+i so any single duel
// can be replayed.
func Simulate(tables prefabs.Tables, s Settings, log *zap.Logger) (Tally, error) {
	if log == nil {
		log = zap.NewNop()
	}
	apr := s.ActionsPerRound
	if apr <= 0 {
		apr = tables.Duel.ActionsPerRound
	}

	var t Tally
	for i := 0; i < s.Duels; i++ {
		seed := s.Seed + int64(i)
		rng := roll.New(seed)

		challenger, err := policy.Parse(s.Challenger, rng, log)
		if err != nil {
			return t, fmt.Errorf("duelsim: challenger: %w", err)
		}
		opponent, err := policy.Parse(s.Opponent, rng, log)
		if err != nil {
			return t, fmt.Errorf("duelsim: opponent: %w", err)
		}
		first, second, err := tables.Combatants()
		if err != nil {
			return t, err
		}
		cat, err := tables.Catalog()
		if err != nil {
			return t, err
		}

		c := combat.New(first, second, cat, rng, apr, combat.WithLogger(log))
		steps, err := policy.Drive(c, challenger, opponent, s.MaxSteps)
		if err != nil {
			return t, fmt.Errorf("duelsim: duel %d (seed %d): %w", i, seed, err)
		}

		t.Duels++
		t.Rounds += c.Round()
		out := c.Outcome()
		switch {
		case !out.Finished:
			t.Unfinished++
		case out.Draw:
			t.Draws++
		default:
			t.Wins[out.Winner]++
		}
		log.Debug("duel finished",
			zap.String("combat_id", c.ID()),
			zap.Int64("seed", seed),
			zap.Int("steps", steps),
			zap.Int("rounds", c.Round()),
			zap.Bool("finished", out.Finished),
			zap.Bool("draw", out.Draw),
			zap.String("winner", out.Winner.String()),
		)
	}
	return t, nil
}
