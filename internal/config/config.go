// Package config parses the hanasim CLI's flags, the same flat
// flag.FlagSet style as the teacher's cmd/pokersrv and cmd/pokerctl.
package config

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"runtime"

	"github.com/pbnjay/memory"
)

// perThreadBudget is how much free memory autoThreadCount reserves per
// worker: each shard holds its own possibility tables and player state, so
// threads beyond what free memory can comfortably back just thrash instead
// of helping.
const perThreadBudget = 64 << 20 // 64MiB

// Config holds every flag hanasim accepts, per spec.md §6.
type Config struct {
	NumTrials         int
	ProgressEvery     int
	JSONPattern       string
	NumThreads        int
	Seed              int64
	SeedSet           bool
	NumPlayers        int
	Strategy          string
	LossesOnly        bool
	ResultsTable      bool
	WriteResultsTable bool
	ReadmePath        string
	DBPath            string
	DebugLevel        string
}

// Parse parses args (excluding the program name) into a Config, applying
// the reference CLI's defaults: 1 trial, 1 thread, 4 players, a random
// seed, the "info" strategy.
func Parse(args []string, errOutput io.Writer) (Config, error) {
	fs := flag.NewFlagSet("hanasim", flag.ContinueOnError)
	fs.SetOutput(errOutput)

	cfg := Config{}
	var seed int64

	fs.IntVar(&cfg.NumTrials, "n", 1, "number of trials to run")
	fs.IntVar(&cfg.ProgressEvery, "o", 0, "print progress every K trials (0 = never)")
	fs.StringVar(&cfg.JSONPattern, "j", "", "JSON trace output path pattern, %s replaced by seed")
	fs.IntVar(&cfg.NumThreads, "t", 1, "number of worker threads (0 = auto-detect from free memory and CPU count)")
	fs.Int64Var(&seed, "s", 0, "RNG seed for the first trial (default: random)")
	fs.IntVar(&cfg.NumPlayers, "p", 4, "number of players")
	fs.StringVar(&cfg.Strategy, "g", "info", "strategy: random, cheat, or info")
	fs.BoolVar(&cfg.LossesOnly, "losses-only", false, "only write JSON traces for imperfect games")
	fs.BoolVar(&cfg.ResultsTable, "results-table", false, "print the strategy x player-count results table and exit")
	fs.BoolVar(&cfg.WriteResultsTable, "write-results-table", false, "update README.md's results table and exit")
	fs.StringVar(&cfg.ReadmePath, "readme", "README.md", "path to the README file --write-results-table updates")
	fs.StringVar(&cfg.DBPath, "db", "", "optional sqlite3 path to record every trial's outcome")
	fs.StringVar(&cfg.DebugLevel, "debuglevel", "info", "logging level: trace, debug, info, warn, error")

	seedFlagSet := false
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "s" {
			seedFlagSet = true
		}
	})

	if seedFlagSet {
		cfg.Seed = seed
		cfg.SeedSet = true
	} else {
		cfg.Seed = rand.Int63()
	}

	if cfg.NumPlayers < 2 || cfg.NumPlayers > 5 {
		return Config{}, fmt.Errorf("config: -p must be in [2,5], got %d", cfg.NumPlayers)
	}
	if cfg.NumTrials < 1 {
		return Config{}, fmt.Errorf("config: -n must be at least 1, got %d", cfg.NumTrials)
	}
	if cfg.NumThreads == 0 {
		cfg.NumThreads = autoThreadCount()
	}
	if cfg.NumThreads < 1 {
		return Config{}, fmt.Errorf("config: -t must be at least 1, got %d", cfg.NumThreads)
	}
	switch cfg.Strategy {
	case "random", "cheat", "info":
	default:
		return Config{}, fmt.Errorf("config: unknown strategy %q for -g", cfg.Strategy)
	}

	return cfg, nil
}

// autoThreadCount picks a worker count for "-t 0": one worker per CPU,
// capped by how many perThreadBudget-sized shards free memory can hold.
func autoThreadCount() int {
	cpu := runtime.NumCPU()
	byMemory := int(memory.FreeMemory() / perThreadBudget)
	if byMemory < 1 {
		byMemory = 1
	}
	if byMemory < cpu {
		return byMemory
	}
	return cpu
}
