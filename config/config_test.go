package config

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(newFlagSet(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, 0, cfg.ActionsPerRound)
	assert.Equal(t, "first", cfg.Challenger)
	assert.Equal(t, 100, cfg.Duels)
	assert.Equal(t, 500, cfg.MaxSteps)
	assert.False(t, cfg.Debug)
}

func TestParseEnvThenFlags(t *testing.T) {
	t.Setenv("TOKENDUEL_SEED", "42")
	t.Setenv("TOKENDUEL_OPPONENT", "random")
	t.Setenv("TOKENDUEL_DUELS", "7")

	cfg, err := Parse(newFlagSet(), []string{"-opponent", "script:aggressive", "-debug"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "script:aggressive", cfg.Opponent)
	assert.Equal(t, 7, cfg.Duels)
	assert.True(t, cfg.Debug)
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad_env_int", map[string]string{"TOKENDUEL_SEED": "abc"}, nil},
		{"negative_actions", nil, []string{"-actions", "-1"}},
		{"zero_duels", nil, []string{"-duels", "0"}},
		{"negative_max_steps", nil, []string{"-max-steps", "-1"}},
		{"negative_max_steps_env", map[string]string{"TOKENDUEL_MAX_STEPS": "-5"}, nil},
		{"unknown_flag", nil, []string{"-nope"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := Parse(newFlagSet(), c.args)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{true, false} {
		log, err := NewLogger(debug)
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.Equal(t, debug, log.Core().Enabled(-1))
	}
}
