// Package cheat implements the "cheating" strategy: an upper-bound
// baseline that breaks the game's information barrier outright by passing
// real hand contents between players through a side channel, rather than
// inferring them from legal hints. It exists purely to measure how much
// headroom remains above the honest strategies, never to be run as a
// legal player.
package cheat

import (
	"sync"

	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/hanabi"
	"github.com/vctt94/hanasim/internal/strategy"
)

// SharedHands is the side channel: every player publishes their left
// neighbor's real hand into it at the start of their own turn, so each
// player eventually learns their own hand once their right neighbor has
// gone once.
type SharedHands struct {
	mu    sync.Mutex
	hands map[int][]card.Card
}

// NewSharedHands returns an empty channel, one per game.
func NewSharedHands() *SharedHands {
	return &SharedHands{hands: make(map[int][]card.Card)}
}

// Publish records player's current hand.
func (s *SharedHands) Publish(player int, hand []card.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]card.Card, len(hand))
	copy(cp, hand)
	s.hands[player] = cp
}

// Get returns the last hand published for player, if any.
func (s *SharedHands) Get(player int) ([]card.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hands[player]
	if !ok {
		return nil, false
	}
	cp := make([]card.Card, len(h))
	copy(cp, h)
	return cp, true
}

// Config builds one SharedHands channel per game.
type Config struct{}

func (Config) Initialize(opts hanabi.GameOptions) strategy.GameStrategy {
	return gameStrategy{opts: opts, shared: NewSharedHands()}
}

type gameStrategy struct {
	opts   hanabi.GameOptions
	shared *SharedHands
}

func (g gameStrategy) NewPlayer(seat, numPlayers int) strategy.Player {
	return player{seat: seat, numPlayers: numPlayers, shared: g.shared}
}

type player struct {
	seat       int
	numPlayers int
	shared     *SharedHands
}

func (p player) throwawayHint(view hanabi.PlayerView) board.Choice {
	if view.Board.Hints > 0 {
		target := view.Board.PlayerToLeft(p.seat)
		if hinted, ok := cheapestMatchingHint(view.Hand(target)); ok {
			return board.Hint(target, hinted)
		}
	}
	return board.Discard(0)
}

// cheapestMatchingHint picks a value hint guaranteed to match hand: the
// lowest value present, preferring MinValue when it's held. Unlike a
// hard-coded Value(MinValue) hint, this is always legal even when
// AllowEmptyHints is false and the target holds no 1s.
func cheapestMatchingHint(hand []card.Card) (board.Hinted, bool) {
	if len(hand) == 0 {
		return board.Hinted{}, false
	}
	for _, c := range hand {
		if c.Value == card.MinValue {
			return board.HintValue(card.MinValue), true
		}
	}
	lowest := hand[0].Value
	for _, c := range hand[1:] {
		if c.Value < lowest {
			lowest = c.Value
		}
	}
	return board.HintValue(lowest), true
}

// findUselessCard returns the first slot that is dead or a duplicate of an
// earlier slot in the same hand.
func findUselessCard(hand []card.Card, b *board.Board) (int, bool) {
	seen := make(map[card.Card]bool, len(hand))
	for i, c := range hand {
		if b.IsDead(c) || seen[c] {
			return i, true
		}
		seen[c] = true
	}
	return 0, false
}

// handPlayValue scores how badly hand needs to keep its copy of c: a dead
// card is worthless, the last surviving copy of a needed card is precious,
// and anything else playable-but-replaceable is marginal.
func handPlayValue(b *board.Board, c card.Card) int {
	switch {
	case b.IsDead(c):
		return 0
	case !b.IsDispensable(c):
		return 10 - int(c.Value)
	default:
		return 1
	}
}

// getPlayScore ranks a playable card for urgency: while the deck is not
// empty it scores 1 (defer) whenever another player also holds a copy of c,
// otherwise 10 minus c's value, preferring low values. It does not compare
// how urgently the other holder needs the card.
func (p player) getPlayScore(c card.Card, view hanabi.PlayerView) int {
	if view.Board.DeckSize == 0 {
		return 5 + (5 - int(c.Value))
	}
	myValue := handPlayValue(&view.Board, c)
	for other, hand := range view.OtherHands() {
		if other == p.seat {
			continue
		}
		if !view.HasCard(other, c) {
			continue
		}
		if handPlayValue(&view.Board, c) <= myValue && len(hand) > 0 {
			return 1
		}
	}
	return 5 + (5 - int(c.Value))
}

// bestDiscardCandidate picks the slot maximizing (visible, dispensable,
// value) lexicographically: prefer discarding what others can already
// see, then what's dispensable, then the highest value among ties.
func bestDiscardCandidate(hand []card.Card, view hanabi.PlayerView) (int, card.Card) {
	bestIdx := 0
	best := hand[0]
	bestKey := [3]int{boolToInt(view.CanSee(best)), boolToInt(view.Board.IsDispensable(best)), int(best.Value)}
	for i, c := range hand[1:] {
		key := [3]int{boolToInt(view.CanSee(c)), boolToInt(view.Board.IsDispensable(c)), int(c.Value)}
		if key[0] > bestKey[0] ||
			(key[0] == bestKey[0] && key[1] > bestKey[1]) ||
			(key[0] == bestKey[0] && key[1] == bestKey[1] && key[2] > bestKey[2]) {
			bestIdx = i + 1
			best = c
			bestKey = key
		}
	}
	return bestIdx, best
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Decide always starts by publishing the left neighbor's real hand, then
// plays a known-playable card, falls back to discarding a known-useless
// one, or hints to stall while hoping for better information.
func (p player) Decide(view hanabi.PlayerView) board.Choice {
	left := view.Board.PlayerToLeft(p.seat)
	p.shared.Publish(left, view.Hand(left))

	if view.Board.Turn < p.numPlayers {
		return p.throwawayHint(view)
	}

	myHand, ok := p.shared.Get(p.seat)
	if !ok {
		return p.throwawayHint(view)
	}

	var playable []int
	for i, c := range myHand {
		if view.Board.IsPlayable(c) {
			playable = append(playable, i)
		}
	}

	if len(playable) == 0 {
		if view.Board.DiscardSize() < 5 {
			if idx, ok := findUselessCard(myHand, &view.Board); ok {
				return board.Discard(idx)
			}
		}
		if view.Board.Hints > 1 && view.SomeoneElseCanPlay() {
			return p.throwawayHint(view)
		}
		if idx, ok := findUselessCard(myHand, &view.Board); ok {
			return board.Discard(idx)
		}
		idx, chosen := bestDiscardCandidate(myHand, view)
		if !view.CanSee(chosen) && view.Board.Hints > 0 {
			return p.throwawayHint(view)
		}
		return board.Discard(idx)
	}

	bestIdx := playable[0]
	bestScore := p.getPlayScore(myHand[bestIdx], view)
	for _, i := range playable[1:] {
		s := p.getPlayScore(myHand[i], view)
		if s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	return board.Play(bestIdx)
}

// Update is a no-op: the shared-hand publishing inside Decide is this
// strategy's only channel for learning anything.
func (p player) Update(view hanabi.PlayerView, rec board.TurnRecord) {}
