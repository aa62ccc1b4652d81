// Package config reads runtime settings from the environment and flags.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds settings shared by the game and the simulator.
type Config struct {
	// Seed drives every roll. 0 picks a random seed.
	Seed int64 `env:"TOKENDUEL_SEED" envDefault:"0"`
	// ActionsPerRound overrides duel.yaml when positive.
	ActionsPerRound int `env:"TOKENDUEL_ACTIONS_PER_ROUND" envDefault:"0"`
	// Opponent is first, random or script:<name>. Empty uses duel.yaml.
	Opponent string `env:"TOKENDUEL_OPPONENT"`
	// Challenger is the policy for the First side in the simulator.
	Challenger string `env:"TOKENDUEL_CHALLENGER" envDefault:"first"`
	Debug      bool   `env:"TOKENDUEL_DEBUG" envDefault:"false"`
	Watch      bool   `env:"TOKENDUEL_WATCH" envDefault:"false"`
	Duels      int    `env:"TOKENDUEL_DUELS" envDefault:"100"`
	MaxSteps   int    `env:"TOKENDUEL_MAX_STEPS" envDefault:"500"`
}

// Parse loads the environment, then lets args override it.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	fs.IntVar(&cfg.ActionsPerRound, "actions", cfg.ActionsPerRound, "actions per side per round (0 = data file)")
	fs.StringVar(&cfg.Opponent, "opponent", cfg.Opponent, "second side policy: first, random or script:<name>")
	fs.StringVar(&cfg.Challenger, "challenger", cfg.Challenger, "first side policy for headless duels")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload prefabs when they change on disk")
	fs.IntVar(&cfg.Duels, "duels", cfg.Duels, "number of headless duels")
	fs.IntVar(&cfg.MaxSteps, "max-steps", cfg.MaxSteps, "action slots per duel before it is abandoned (0 = no limit)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	if cfg.ActionsPerRound < 0 {
		return Config{}, fmt.Errorf("config: actions per round must not be negative, got %d", cfg.ActionsPerRound)
	}
	if cfg.MaxSteps < 0 {
		return Config{}, fmt.Errorf("config: max steps must not be negative, got %d", cfg.MaxSteps)
	}
	if cfg.Duels < 1 {
		return Config{}, fmt.Errorf("config: duels must be at least 1, got %d", cfg.Duels)
	}
	return cfg, nil
}

// NewLogger returns a development logger when debug is set and a
// production logger otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
