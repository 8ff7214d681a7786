// Package random implements the simplest baseline strategy: a weighted
// coin flip between hinting, playing, and discarding, with no memory of
// anything that has happened. It exists to give the Monte Carlo harness a
// floor to measure the smarter strategies against.
package random

import (
	"math/rand"
	"sync"

	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/hanabi"
	"github.com/vctt94/hanasim/internal/strategy"
)

// randMu guards every Config's Rand: the simulator runs many games
// concurrently against the same Config, and *rand.Rand is not safe for
// concurrent use on its own.
var randMu sync.Mutex

// Config selects the probability of hinting vs. playing vs. discarding;
// the remainder always discards.
type Config struct {
	HintProbability float64
	PlayProbability float64
	Rand            *rand.Rand
}

// DefaultConfig mirrors the reference CLI's defaults: hint 40% of the
// time, play 20%, discard the remaining 40%.
func DefaultConfig() Config {
	return Config{HintProbability: 0.4, PlayProbability: 0.2, Rand: rand.New(rand.NewSource(1))}
}

func (c Config) Initialize(opts hanabi.GameOptions) strategy.GameStrategy {
	return gameStrategy{opts: opts, cfg: c}
}

type gameStrategy struct {
	opts hanabi.GameOptions
	cfg  Config
}

func (g gameStrategy) NewPlayer(seat, numPlayers int) strategy.Player {
	return player{seat: seat, cfg: g.cfg}
}

type player struct {
	seat int
	cfg  Config
}

// Decide never looks at its view's content: rolls a die and acts.
func (p player) Decide(view hanabi.PlayerView) board.Choice {
	randMu.Lock()
	roll := p.cfg.Rand.Float64()
	switch {
	case roll < p.cfg.HintProbability:
		if view.Board.Hints > 0 {
			target := view.Board.PlayerToLeft(p.seat)
			hand := view.Hand(target)
			c := hand[p.cfg.Rand.Intn(len(hand))]
			colorHint := p.cfg.Rand.Intn(2) == 0
			randMu.Unlock()
			if colorHint {
				return board.Hint(target, board.HintColor(c.Color))
			}
			return board.Hint(target, board.HintValue(c.Value))
		}
		randMu.Unlock()
		return board.Discard(0)
	case roll < p.cfg.HintProbability+p.cfg.PlayProbability:
		randMu.Unlock()
		return board.Play(0)
	default:
		randMu.Unlock()
		return board.Discard(0)
	}
}

// Update is a no-op: random play carries no state between turns.
func (p player) Update(view hanabi.PlayerView, rec board.TurnRecord) {}
