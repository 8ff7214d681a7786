// Package publicinfo tracks the belief state every player maintains about
// every hand, including their own — the "public" half of the information
// strategy, since every player derives it identically from the shared turn
// log rather than from any private observation. internal/hat builds the
// physical hint-encoding protocol on top of this.
package publicinfo

import (
	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/possibility"
)

// Snapshot is the belief state derivable by every player from public
// knowledge alone: a possibility table for every slot of every hand (their
// own included), plus the running tally of cards that have been played or
// discarded.
type Snapshot struct {
	Hands        map[int]possibility.HandInfo
	PublicCounts card.Counts
}

// New builds a Snapshot for a fresh deal: every player has handSize slots,
// each seeded from a full deck (no cards have left it yet).
func New(numPlayers, handSize int) Snapshot {
	counts := card.NewCounts()
	hands := make(map[int]possibility.HandInfo, numPlayers)
	for p := 0; p < numPlayers; p++ {
		hands[p] = possibility.NewHandInfo(handSize, counts)
	}
	return Snapshot{Hands: hands, PublicCounts: counts}
}

// Clone returns a deep copy, used whenever a strategy needs to simulate a
// hypothetical update (e.g. evaluating a candidate hint) without mutating
// the real snapshot.
func (s Snapshot) Clone() Snapshot {
	hands := make(map[int]possibility.HandInfo, len(s.Hands))
	for p, h := range s.Hands {
		cp := make(possibility.HandInfo, len(h))
		copy(cp, h)
		hands[p] = cp
	}
	return Snapshot{Hands: hands, PublicCounts: s.PublicCounts}
}

// ApplyHint narrows the target's possibility tables against a hint result.
func (s Snapshot) ApplyHint(target int, hint board.Hinted, matches []bool) {
	s.Hands[target].UpdateForHint(hint, matches)
}

// ApplyPlayOrDiscard removes the acted-on slot, pushes a freshly seeded
// table if a replacement was drawn, then folds the now-public identity of
// the revealed card into every hand's possibility tables and the running
// count — mirroring the sequence every player performs identically after
// watching a play or discard resolve.
func (s *Snapshot) ApplyPlayOrDiscard(player, slot int, revealed card.Card, drew bool) {
	hand := s.Hands[player]
	hand.Remove(slot)
	if drew {
		hand.Push(s.PublicCounts)
	}
	s.Hands[player] = hand

	for p, h := range s.Hands {
		for i := range h {
			h[i].DecrementWeightIfPossible(revealed)
		}
		s.Hands[p] = h
	}
	s.PublicCounts.Increment(revealed)
}

// PrivateInfo derives the belief a player holds about their own hand:
// identical to the public view of that hand, except every card visible in
// another player's actual hand is known not to be held by anyone else, so
// it is decremented out of contention.
func (s Snapshot) PrivateInfo(me int, actualHands map[int][]card.Card) possibility.HandInfo {
	own := s.Hands[me]
	private := make(possibility.HandInfo, len(own))
	copy(private, own)

	for p, hand := range actualHands {
		if p == me {
			continue
		}
		for _, c := range hand {
			for i := range private {
				private[i].DecrementWeightIfPossible(c)
			}
		}
	}
	return private
}
