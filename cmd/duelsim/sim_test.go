package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tokenduel/prefabs"
)

func TestSimulateIsReproducible(t *testing.T) {
	tables, err := prefabs.LoadTables()
	require.NoError(t, err)

	s := Settings{Seed: 99, Duels: 5, MaxSteps: 400, Challenger: "random", Opponent: "script:aggressive"}
	a, err := Simulate(tables, s, nil)
	require.NoError(t, err)
	b, err := Simulate(tables, s, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 5, a.Duels)
	assert.Equal(t, a.Duels, a.Wins[0]+a.Wins[1]+a.Draws+a.Unfinished)
	assert.Positive(t, a.AverageRounds())
}

func TestSimulateRejectsUnknownPolicy(t *testing.T) {
	tables, err := prefabs.LoadTables()
	require.NoError(t, err)

	_, err = Simulate(tables, Settings{Duels: 1, Challenger: "psychic", Opponent: "first"}, nil)
	assert.Error(t, err)
}

func TestAverageRoundsEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Tally{}.AverageRounds())
}
