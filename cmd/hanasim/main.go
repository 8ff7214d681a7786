// Command hanasim runs Monte Carlo trials of Hanabi strategies and
// reports score statistics, optionally writing per-game JSON traces, a
// sqlite3 trial ledger, or the strategy x player-count results table.
package main

import (
	"fmt"
	"os"

	"github.com/vctt94/hanasim/internal/config"
	"github.com/vctt94/hanasim/internal/hanabi"
	"github.com/vctt94/hanasim/internal/logutil"
	"github.com/vctt94/hanasim/internal/registry"
	"github.com/vctt94/hanasim/internal/results"
	"github.com/vctt94/hanasim/internal/simulate"
	"github.com/vctt94/hanasim/internal/store"
	"github.com/vctt94/hanasim/internal/trace"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hanasim: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args, os.Stderr)
	if err != nil {
		return err
	}

	backend, err := logutil.NewBackend(os.Stderr, logutil.Config{DebugLevel: cfg.DebugLevel})
	if err != nil {
		return err
	}
	log := backend.Logger("SIM")

	reg := registry.Default()

	if cfg.WriteResultsTable {
		table, err := results.Table(reg, results.DefaultConfig())
		if err != nil {
			return fmt.Errorf("building results table: %w", err)
		}
		return results.WriteToReadme(cfg.ReadmePath, table)
	}

	if cfg.ResultsTable {
		table, err := results.Table(reg, results.DefaultConfig())
		if err != nil {
			return fmt.Errorf("building results table: %w", err)
		}
		fmt.Print(results.Render(table))
		return nil
	}

	strategyConfig, err := reg.Get(cfg.Strategy)
	if err != nil {
		return err
	}

	opts, err := hanabi.DefaultGameOptions(cfg.NumPlayers)
	if err != nil {
		return err
	}

	var db *store.DB
	if cfg.DBPath != "" {
		db, err = store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening trial database: %w", err)
		}
		defer db.Close()
	}

	runID := fmt.Sprintf("%s-%dp-%d", cfg.Strategy, cfg.NumPlayers, cfg.Seed)

	var traceFunc func(seed int64, g *hanabi.Game) error
	if cfg.JSONPattern != "" {
		traceFunc = func(seed int64, g *hanabi.Game) error {
			tr := trace.FromGame(g)
			data, err := trace.Marshal(tr)
			if err != nil {
				return err
			}
			return os.WriteFile(trace.Path(cfg.JSONPattern, seed), data, 0o644)
		}
	}
	if db != nil {
		inner := traceFunc
		traceFunc = func(seed int64, g *hanabi.Game) error {
			t := g.Terminal()
			if err := db.RecordTrial(store.Trial{
				RunID:      runID,
				Strategy:   cfg.Strategy,
				NumPlayers: cfg.NumPlayers,
				Seed:       seed,
				Score:      t.Score,
				Reason:     t.Reason,
			}); err != nil {
				return err
			}
			if inner != nil {
				return inner(seed, g)
			}
			return nil
		}
	}

	reportProgress, stopProgress := attachProgress(cfg.ProgressEvery)

	report := simulate.Simulate(strategyConfig, opts, cfg.Strategy, simulate.Options{
		FirstSeed:     cfg.Seed,
		NumTrials:     cfg.NumTrials,
		NumThreads:    cfg.NumThreads,
		Log:           log,
		TraceFunc:     traceFunc,
		LossesOnly:    cfg.LossesOnly,
		ProgressEvery: cfg.ProgressEvery,
		ProgressFunc:  reportProgress,
	})
	stopProgress()

	printReport(report)
	return nil
}

func printReport(r simulate.Report) {
	h := r.Histogram
	fmt.Printf("strategy=%s players=%d trials=%d\n", r.StrategyName, r.NumPlayers, h.Total)
	fmt.Printf("average score: %.4f ± %.4f\n", h.Average(), h.StdErr())
	fmt.Printf("perfect games: %.2f%%\n", h.PercentPerfect(simulate.MaxScore))
	if len(r.NonPerfectSeeds) > 0 && len(r.NonPerfectSeeds) <= 20 {
		fmt.Printf("non-perfect seeds: %v\n", r.NonPerfectSeeds)
	}
}
