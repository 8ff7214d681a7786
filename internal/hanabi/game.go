// Package hanabi implements the Hanabi game state machine: deck, hands,
// turn processing, and the read-only per-player views strategies decide
// from. It knows nothing about possibility tables, public information, or
// the hat protocol — those live above it in internal/possibility,
// internal/publicinfo, and internal/hat.
package hanabi

import (
	"fmt"
	"math/rand"

	"github.com/davecgh/go-spew/spew"

	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/statemachine"
)

// Re-export the board's move vocabulary so callers only need to import
// internal/hanabi for the common case.
type (
	Choice     = board.Choice
	ChoiceKind = board.ChoiceKind
	Hinted     = board.Hinted
	Result     = board.Result
	ResultKind = board.ResultKind
	TurnRecord = board.TurnRecord
)

const (
	ChoicePlay    = board.ChoicePlay
	ChoiceDiscard = board.ChoiceDiscard
	ChoiceHint    = board.ChoiceHint
)

var (
	Play       = board.Play
	Discard    = board.Discard
	Hint       = board.Hint
	HintColor  = board.HintColor
	HintValue  = board.HintValue
)

// GameOptions configures a new game, per the table in spec.md §4.1.
type GameOptions struct {
	NumPlayers      int
	HandSize        int
	TotalHints      int
	TotalLives      int
	AllowEmptyHints bool
}

// DefaultGameOptions returns GameOptions with the standard hand size for
// numPlayers (5 for 2-3 players, 4 for 4-5 players) and the usual token
// counts.
func DefaultGameOptions(numPlayers int) (GameOptions, error) {
	if numPlayers < 2 || numPlayers > 5 {
		return GameOptions{}, fmt.Errorf("hanabi: num_players must be in [2,5], got %d", numPlayers)
	}
	handSize := 4
	if numPlayers <= 3 {
		handSize = 5
	}
	return GameOptions{
		NumPlayers:      numPlayers,
		HandSize:        handSize,
		TotalHints:      8,
		TotalLives:      3,
		AllowEmptyHints: false,
	}, nil
}

// TerminalResult describes why and how a finished game ended.
type TerminalResult struct {
	Score  int
	Reason string // "lives", "fireworks", or "deck"
}

// Game is the full state of a single Hanabi trial: the board plus every
// player's hand and the private draw order.
type Game struct {
	Board board.Board
	Hands [][]card.Card

	deck           []card.Card // remaining cards; Draw pops from the end
	initialDeck    []card.Card // full shuffled deck, captured before dealing
	opts           GameOptions
	rng            *rand.Rand
	seed           int64
	countdownStarted bool

	phase string
	sm    *statemachine.StateMachine[Game]
}

// NewGame shuffles a deck with the given seed, deals hands in player-index
// order, and returns a ready-to-play Game.
func NewGame(opts GameOptions, seed int64) (*Game, error) {
	if opts.NumPlayers < 2 || opts.NumPlayers > 5 {
		return nil, fmt.Errorf("hanabi: num_players must be in [2,5], got %d", opts.NumPlayers)
	}
	if opts.HandSize != 4 && opts.HandSize != 5 {
		return nil, fmt.Errorf("hanabi: hand_size must be 4 or 5, got %d", opts.HandSize)
	}

	rng := rand.New(rand.NewSource(seed))
	deck := card.FullDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	initialDeck := make([]card.Card, len(deck))
	copy(initialDeck, deck)

	g := &Game{
		Hands:       make([][]card.Card, opts.NumPlayers),
		deck:        deck,
		initialDeck: initialDeck,
		opts:        opts,
		rng:         rng,
		seed:        seed,
		phase:       "playing",
	}

	for i := 0; i < opts.HandSize; i++ {
		for p := 0; p < opts.NumPlayers; p++ {
			c, ok := g.popDeck()
			if !ok {
				return nil, fmt.Errorf("hanabi: deck ran out while dealing (impossible for a full deck)")
			}
			g.Hands[p] = append(g.Hands[p], c)
		}
	}

	g.Board = board.New(opts.NumPlayers, opts.HandSize, opts.TotalHints, opts.TotalLives, len(g.deck))
	g.sm = statemachine.NewStateMachine(g, statePlaying)
	return g, nil
}

// Seed returns the seed this game was constructed with.
func (g *Game) Seed() int64 { return g.seed }

// Options returns the game's configuration.
func (g *Game) Options() GameOptions { return g.opts }

// InitialDeck returns the full shuffled deck as dealt, for JSON trace
// export. Callers must not mutate the result.
func (g *Game) InitialDeck() []card.Card { return g.initialDeck }

func (g *Game) popDeck() (card.Card, bool) {
	if len(g.deck) == 0 {
		return card.Card{}, false
	}
	c := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return c, true
}

// PlayerView is the read-only projection of Game visible to one player: the
// board, every other player's hand, and the size (not contents) of the
// viewer's own hand.
type PlayerView struct {
	Board       board.Board
	Me          int
	OwnHandSize int
	hands       map[int][]card.Card
}

// Hand returns player p's hand as seen by this view. It panics if p is the
// viewer itself — the viewer never sees its own cards.
func (v PlayerView) Hand(p int) []card.Card {
	if p == v.Me {
		panic("hanabi: a player view cannot reveal the viewer's own hand")
	}
	return v.hands[p]
}

// OtherHands returns every hand except the viewer's own, keyed by player.
func (v PlayerView) OtherHands() map[int][]card.Card {
	return v.hands
}

// HasCard reports whether player p (not the viewer) holds a copy of c.
func (v PlayerView) HasCard(p int, c card.Card) bool {
	for _, held := range v.hands[p] {
		if held == c {
			return true
		}
	}
	return false
}

// CanSee reports whether c is visible in any other player's hand.
func (v PlayerView) CanSee(c card.Card) bool {
	for _, hand := range v.hands {
		for _, held := range hand {
			if held == c {
				return true
			}
		}
	}
	return false
}

// SomeoneElseCanPlay reports whether any player other than the viewer holds
// a currently playable card.
func (v PlayerView) SomeoneElseCanPlay() bool {
	b := v.Board
	for _, hand := range v.hands {
		for _, c := range hand {
			if b.IsPlayable(c) {
				return true
			}
		}
	}
	return false
}

// View projects the game state for player `me`.
func (g *Game) View(me int) PlayerView {
	hands := make(map[int][]card.Card, g.opts.NumPlayers-1)
	for p, h := range g.Hands {
		if p == me {
			continue
		}
		cp := make([]card.Card, len(h))
		copy(cp, h)
		hands[p] = cp
	}
	return PlayerView{
		Board:       g.Board,
		Me:          me,
		OwnHandSize: len(g.Hands[me]),
		hands:       hands,
	}
}

// Legal validates a choice against the current state without applying it.
func (g *Game) Legal(c Choice) error {
	switch c.Kind {
	case ChoicePlay, ChoiceDiscard:
		hand := g.Hands[g.Board.CurrentPlayer]
		if c.Slot < 0 || c.Slot >= len(hand) {
			return fmt.Errorf("hanabi: slot %d out of range for a %d-card hand", c.Slot, len(hand))
		}
		if c.Kind == ChoiceDiscard && g.Board.Hints >= g.Board.TotalHints {
			return fmt.Errorf("hanabi: cannot discard while hints are at the maximum (%d)", g.Board.TotalHints)
		}
	case ChoiceHint:
		if c.Target == g.Board.CurrentPlayer {
			return fmt.Errorf("hanabi: cannot hint yourself")
		}
		if c.Target < 0 || c.Target >= g.opts.NumPlayers {
			return fmt.Errorf("hanabi: target player %d out of range", c.Target)
		}
		if g.Board.Hints <= 0 {
			return fmt.Errorf("hanabi: no hint tokens remaining")
		}
		if !c.Hinted.IsColor && (c.Hinted.Value < card.MinValue || c.Hinted.Value > card.MaxValue) {
			return fmt.Errorf("hanabi: hinted value %d out of range", c.Hinted.Value)
		}
		if c.Hinted.IsColor && int(c.Hinted.Color) >= card.NumColors {
			return fmt.Errorf("hanabi: hinted color %d out of range", c.Hinted.Color)
		}
		if !g.opts.AllowEmptyHints {
			matched := false
			for _, held := range g.Hands[c.Target] {
				if c.Hinted.Matches(held) {
					matched = true
					break
				}
			}
			if !matched {
				return fmt.Errorf("hanabi: hint matches no card in the target's hand")
			}
		}
	default:
		return fmt.Errorf("hanabi: unknown choice kind %d", c.Kind)
	}
	return nil
}

func (g *Game) removeSlot(player, slot int) (c card.Card, drew bool) {
	hand := g.Hands[player]
	c = hand[slot]
	hand = append(hand[:slot], hand[slot+1:]...)
	if drawn, ok := g.popDeck(); ok {
		hand = append(hand, drawn)
		drew = true
	}
	g.Hands[player] = hand
	return c, drew
}

// Apply validates and processes a choice, returning the resulting turn
// record. It panics if the engine itself reaches an inconsistent state
// (e.g. advancing a firework with the wrong card) since that is always an
// implementer bug, never a legal player choice — see spec.md §7.
func (g *Game) Apply(c Choice) (TurnRecord, error) {
	if err := g.Legal(c); err != nil {
		return TurnRecord{}, err
	}
	player := g.Board.CurrentPlayer

	var result Result
	switch c.Kind {
	case ChoicePlay:
		played, drew := g.removeSlot(player, c.Slot)
		if g.Board.IsPlayable(played) {
			bonus := g.Board.PlaceOnFirework(played)
			if bonus {
				g.Board.AddHint()
			}
			result = Result{Kind: board.ResultPlay, PlayedCard: played, Success: true, Drew: drew}
		} else {
			g.Board.Lives--
			g.Board.PlaceOnDiscard(played)
			result = Result{Kind: board.ResultPlay, PlayedCard: played, Success: false, Drew: drew}
		}
	case ChoiceDiscard:
		discarded, drew := g.removeSlot(player, c.Slot)
		g.Board.PlaceOnDiscard(discarded)
		g.Board.AddHint()
		result = Result{Kind: board.ResultDiscard, DiscardedCard: discarded, Drew: drew}
	case ChoiceHint:
		g.Board.Hints--
		target := g.Hands[c.Target]
		matches := make([]bool, len(target))
		for i, held := range target {
			matches[i] = c.Hinted.Matches(held)
		}
		result = Result{Kind: board.ResultHint, Matches: matches}
	}

	g.Board.DeckSize = len(g.deck)
	rec := TurnRecord{Player: player, Choice: c, Result: result}
	g.Board.Log = append(g.Board.Log, rec)

	if g.Board.DeckSize == 0 {
		if !g.countdownStarted {
			g.countdownStarted = true
			g.Board.FinalCountdown = g.Board.NumPlayers
		} else if g.Board.FinalCountdown > 0 {
			g.Board.FinalCountdown--
		}
	}

	g.Board.CurrentPlayer = g.Board.PlayerToLeft(player)
	g.Board.Turn++
	g.sm.Dispatch(nil)

	g.checkConsistency()
	return rec, nil
}

// checkConsistency verifies that every card is accounted for exactly once
// across the deck, every hand, the discard pile, and the fireworks. A
// violation means the engine itself has a bug, not a bad player choice, so
// it panics with a full dump of the game state rather than limping on with
// a silently wrong score.
func (g *Game) checkConsistency() {
	total := len(g.deck)
	for _, h := range g.Hands {
		total += len(h)
	}
	total += g.Board.DiscardSize()
	total += g.Board.Score()
	if total != board.TotalCards {
		panic(fmt.Sprintf("hanabi: card accounting broke on turn %d (seed %d): have %d of %d cards\n%s",
			g.Board.Turn, g.seed, total, board.TotalCards, spew.Sdump(g)))
	}
}

// Over reports whether the game has reached a terminal state.
func (g *Game) Over() bool {
	return g.phase == "over"
}

// Terminal returns the score and termination reason. It panics if the game
// is not yet over.
func (g *Game) Terminal() TerminalResult {
	if !g.Over() {
		panic("hanabi: Terminal called before the game is over")
	}
	reason := "deck"
	if g.Board.Lives <= 0 {
		reason = "lives"
	} else if g.Board.FireworksComplete() {
		reason = "fireworks"
	}
	return TerminalResult{Score: g.Board.Score(), Reason: reason}
}

// statePlaying and stateOver are the two states of the game's Rob-Pike-style
// lifecycle machine (internal/statemachine), checked after every Apply.
func statePlaying(g *Game, cb func(string, statemachine.StateEvent)) statemachine.StateFn[Game] {
	if g.Board.Lives <= 0 || g.Board.FireworksComplete() ||
		(g.countdownStarted && g.Board.FinalCountdown <= 0) {
		if cb != nil {
			cb("playing", statemachine.StateExited)
		}
		g.phase = "over"
		return stateOver
	}
	return statePlaying
}

func stateOver(g *Game, cb func(string, statemachine.StateEvent)) statemachine.StateFn[Game] {
	g.phase = "over"
	return stateOver
}
