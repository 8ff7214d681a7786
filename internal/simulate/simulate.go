// Package simulate runs the Monte Carlo harness: many independent games,
// seeded deterministically and sharded across a worker pool, reduced to a
// score histogram. The worker pool itself is modeled on the event
// processor pattern used elsewhere in this codebase for fan-out work: a
// fixed set of workers, each owning its own shard, joined by a result
// channel instead of a WaitGroup since every worker reports exactly once.
package simulate

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/decred/slog"
	"github.com/prometheus/procfs"

	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/hanabi"
	"github.com/vctt94/hanasim/internal/strategy"
)

// MaxScore is the highest score any game can reach: every firework lit.
const MaxScore = card.NumColors * int(card.FinalValue)

// Histogram tallies how many trials produced each score.
type Histogram struct {
	Counts map[int]int
	Sum    int
	Total  int
}

// NewHistogram returns an empty histogram.
func NewHistogram() Histogram {
	return Histogram{Counts: make(map[int]int)}
}

// Insert records one trial's score.
func (h *Histogram) Insert(score int) {
	h.Counts[score]++
	h.Sum += score
	h.Total++
}

// Merge folds other's tallies into h.
func (h *Histogram) Merge(other Histogram) {
	for score, count := range other.Counts {
		h.Counts[score] += count
	}
	h.Sum += other.Sum
	h.Total += other.Total
}

// Average is the mean score across every trial recorded.
func (h Histogram) Average() float64 {
	if h.Total == 0 {
		return 0
	}
	return float64(h.Sum) / float64(h.Total)
}

// StdErr is the standard error of the mean score.
func (h Histogram) StdErr() float64 {
	if h.Total < 2 {
		return 0
	}
	mean := h.Average()
	var variance float64
	for score, count := range h.Counts {
		d := float64(score) - mean
		variance += float64(count) * d * d
	}
	variance /= float64(h.Total - 1)
	return math.Sqrt(variance / float64(h.Total))
}

// PercentPerfect is the fraction of trials that reached maxScore, as a
// percentage.
func (h Histogram) PercentPerfect(maxScore int) float64 {
	if h.Total == 0 {
		return 0
	}
	return 100 * float64(h.Counts[maxScore]) / float64(h.Total)
}

// PercentPerfectStdErr is the standard error of PercentPerfect, treating
// "reached maxScore" as a Bernoulli trial.
func (h Histogram) PercentPerfectStdErr(maxScore int) float64 {
	if h.Total == 0 {
		return 0
	}
	p := float64(h.Counts[maxScore]) / float64(h.Total)
	return 100 * math.Sqrt(p*(1-p)/float64(h.Total))
}

// Report is the full result of a simulation run.
type Report struct {
	StrategyName    string
	NumPlayers      int
	Histogram       Histogram
	NonPerfectSeeds []int64
}

// Options configures a simulation run.
type Options struct {
	FirstSeed  int64
	NumTrials  int
	NumThreads int
	Log        slog.Logger

	// TraceFunc, when set, is called with the finished game of every
	// trial (or only losing trials, if LossesOnly is set). Its error is
	// logged and otherwise ignored — a failed trace write must never
	// affect the aggregated histogram.
	TraceFunc  func(seed int64, g *hanabi.Game) error
	LossesOnly bool

	// ProgressEvery, if positive, logs a resource-usage line (RSS, CPU
	// ticks, via /proc) and invokes ProgressFunc every ProgressEvery
	// trials completed across all shards combined.
	ProgressEvery int
	ProgressFunc  func(completed, total int)
}

type shardResult struct {
	hist       Histogram
	nonPerfect []int64
}

// Simulate runs NumTrials games, seeded FirstSeed..FirstSeed+NumTrials-1,
// split into NumThreads contiguous shards. The shard bounds depend on the
// thread count, but every seed in the range is played exactly once whatever
// the thread count, and each game's deal depends only on its seed.
func Simulate(cfg strategy.Config, opts hanabi.GameOptions, name string, simOpts Options) Report {
	nThreads := simOpts.NumThreads
	if nThreads < 1 {
		nThreads = 1
	}

	var completed atomic.Int64

	results := make(chan shardResult, nThreads)
	for id := 0; id < nThreads; id++ {
		lo := simOpts.FirstSeed + int64(simOpts.NumTrials)*int64(id)/int64(nThreads)
		hi := simOpts.FirstSeed + int64(simOpts.NumTrials)*int64(id+1)/int64(nThreads)
		go runShard(id, lo, hi, cfg, opts, simOpts, &completed, results)
	}

	final := NewHistogram()
	var nonPerfect []int64
	for i := 0; i < nThreads; i++ {
		r := <-results
		final.Merge(r.hist)
		nonPerfect = append(nonPerfect, r.nonPerfect...)
	}

	return Report{
		StrategyName:    name,
		NumPlayers:      opts.NumPlayers,
		Histogram:       final,
		NonPerfectSeeds: nonPerfect,
	}
}

func runShard(id int, lo, hi int64, cfg strategy.Config, opts hanabi.GameOptions, simOpts Options, completed *atomic.Int64, out chan<- shardResult) {
	log := simOpts.Log
	hist := NewHistogram()
	var nonPerfect []int64
	for seed := lo; seed < hi; seed++ {
		g, score, violated := SimulateOnceGame(cfg, opts, seed)
		if violated && log != nil {
			log.Errorf("worker %d: seed %d: protocol violation, recording partial score %d", id, seed, score)
		}
		hist.Insert(score)
		lost := score < MaxScore
		if lost {
			nonPerfect = append(nonPerfect, seed)
		}
		if simOpts.TraceFunc != nil && (!simOpts.LossesOnly || lost) {
			if err := simOpts.TraceFunc(seed, g); err != nil && log != nil {
				log.Errorf("worker %d: seed %d: writing trace: %v", id, seed, err)
			}
		}
		if log != nil && hi > lo && (seed-lo)%1000 == 0 {
			log.Debugf("worker %d: seed %d (%d/%d)", id, seed, seed-lo, hi-lo)
		}

		n := completed.Add(1)
		if simOpts.ProgressEvery > 0 && n%int64(simOpts.ProgressEvery) == 0 {
			logResourceUsage(log, int(n), simOpts.NumTrials)
			if simOpts.ProgressFunc != nil {
				simOpts.ProgressFunc(int(n), simOpts.NumTrials)
			}
		}
	}
	out <- shardResult{hist: hist, nonPerfect: nonPerfect}
}

// logResourceUsage logs the simulator process's own RSS and accumulated CPU
// ticks, read straight from /proc. It is best-effort: on platforms without
// a /proc filesystem it silently does nothing rather than failing a run
// over a progress line.
func logResourceUsage(log slog.Logger, completed, total int) {
	if log == nil {
		return
	}
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return
	}
	proc, err := fs.Self()
	if err != nil {
		return
	}
	stat, err := proc.Stat()
	if err != nil {
		return
	}
	log.Infof("progress %d/%d: rss=%d bytes utime=%d stime=%d ticks",
		completed, total, stat.ResidentMemory(), stat.UTime, stat.STime)
}

// SimulateOnce plays exactly one game to completion with a fresh
// strategy instance, returning its final score (partial, if the strategy
// violated the protocol partway through — see SimulateOnceGame).
func SimulateOnce(cfg strategy.Config, opts hanabi.GameOptions, seed int64) int {
	_, score, _ := SimulateOnceGame(cfg, opts, seed)
	return score
}

// SimulateOnceGame is SimulateOnce but returns the finished game itself, so
// callers can inspect its public turn log for trace export. A strategy
// returning an illegal choice is a protocol violation (spec §7): fatal to
// that trial, but not to the run. The game is stopped on the spot, violated
// is reported true, and score is the board's score at that point — not a
// panic, since one implementer bug must not take down every other trial's
// aggregated result. Invalid game options remain a setup-time panic: that
// is a caller bug, not a per-trial condition.
func SimulateOnceGame(cfg strategy.Config, opts hanabi.GameOptions, seed int64) (g *hanabi.Game, score int, violated bool) {
	g, err := hanabi.NewGame(opts, seed)
	if err != nil {
		panic(fmt.Sprintf("simulate: invalid game options: %v", err))
	}

	gs := cfg.Initialize(opts)
	players := make([]strategy.Player, opts.NumPlayers)
	for i := range players {
		players[i] = gs.NewPlayer(i, opts.NumPlayers)
	}

	for !g.Over() {
		cur := g.Board.CurrentPlayer
		choice := players[cur].Decide(g.View(cur))
		rec, applyErr := g.Apply(choice)
		if applyErr != nil {
			return g, g.Board.Score(), true
		}
		for i := range players {
			players[i].Update(g.View(i), rec)
		}
	}

	return g, g.Terminal().Score, false
}
