// Package strategy defines the decision-making interface every Hanabi
// player implementation satisfies, plus a name-keyed registry of the
// strategies the simulator can run, mirroring the factory pattern the
// reference implementation uses to keep "how do I decide" and "how do I
// learn what happened" separate per player.
package strategy

import (
	"fmt"

	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/hanabi"
)

// Player decides moves for exactly one seat at the table across a single
// game, and learns about every turn (including its own) after the fact.
type Player interface {
	// Decide chooses this player's move given their current view.
	Decide(view hanabi.PlayerView) board.Choice
	// Update is called after every turn, including the player's own, so
	// strategies that track shared derived state (public-info, hat
	// protocol bookkeeping, cheating side-channels) can stay in sync.
	Update(view hanabi.PlayerView, rec board.TurnRecord)
}

// GameStrategy builds one Player per seat for a single game. Strategies
// that must coordinate across seats within a game (the hat protocol, the
// cheating strategy's shared-hand channel) hold that shared state here and
// close over it when producing each seat's Player.
type GameStrategy interface {
	NewPlayer(seat, numPlayers int) Player
}

// Config constructs a fresh GameStrategy for one game; options live on the
// concrete Config implementation (e.g. random's hint/play probabilities).
type Config interface {
	Initialize(opts hanabi.GameOptions) GameStrategy
}

// Registry maps a strategy name (as accepted by the -g CLI flag) to its
// Config constructor.
type Registry map[string]func() Config

// Get looks up name in the registry, returning an error that matches the
// reference CLI's message shape on an unknown name.
func (r Registry) Get(name string) (Config, error) {
	ctor, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q", name)
	}
	return ctor(), nil
}
