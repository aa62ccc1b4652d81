// Command duelsim runs seeded duels between two policies without a window
// and prints the results.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/milk9111/tokenduel/config"
	"github.com/milk9111/tokenduel/prefabs"
	"github.com/milk9111/tokenduel/roll"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := config.NewLogger(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	tables, err := prefabs.LoadTables()
	if err != nil {
		log.Fatal(err)
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = roll.NewSeed(); err != nil {
			log.Fatal(err)
		}
	}
	opponent := cfg.Opponent
	if opponent == "" {
		opponent = tables.Duel.Opponent
	}

	s := Settings{
		Seed:            seed,
		Duels:           cfg.Duels,
		MaxSteps:        cfg.MaxSteps,
		ActionsPerRound: cfg.ActionsPerRound,
		Challenger:      cfg.Challenger,
		Opponent:        opponent,
	}
	logger.Info("simulating", zap.Int64("seed", seed), zap.Int("duels", s.Duels),
		zap.String("challenger", s.Challenger), zap.String("opponent", s.Opponent))

	t, err := Simulate(tables, s, logger)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("seed %d, %d duels\n", seed, t.Duels)
	fmt.Printf("  %-8s %-24s %d\n", "first", tables.Duel.First+" ("+s.Challenger+")", t.Wins[0])
	fmt.Printf("  %-8s %-24s %d\n", "second", tables.Duel.Second+" ("+s.Opponent+")", t.Wins[1])
	fmt.Printf("  draws %d, unfinished %d, avg rounds %.1f\n", t.Draws, t.Unfinished, t.AverageRounds())
}
