package cheat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/hanabi"
)

func TestSharedHandsPublishAndGet(t *testing.T) {
	s := NewSharedHands()
	_, ok := s.Get(0)
	require.False(t, ok)

	s.Publish(0, []card.Card{card.New(card.Red, 1)})
	hand, ok := s.Get(0)
	require.True(t, ok)
	require.Equal(t, card.New(card.Red, 1), hand[0])
}

func TestHandPlayValue(t *testing.T) {
	b := board.New(2, 2, 8, 3, 50)
	b.PlaceOnDiscard(card.New(card.Red, 2))
	b.PlaceOnDiscard(card.New(card.Red, 2))
	require.Equal(t, 0, handPlayValue(&b, card.New(card.Red, 4))) // dead

	require.Equal(t, 1, handPlayValue(&b, card.New(card.Red, 1))) // still dispensable: 2+ copies remain
	b.PlaceOnDiscard(card.New(card.Red, 1))
	b.PlaceOnDiscard(card.New(card.Red, 1))
	require.Equal(t, 9, handPlayValue(&b, card.New(card.Red, 1))) // now the last copy: indispensable, 10-1
}

func TestDecideOnOpeningTurnGivesThrowawayHint(t *testing.T) {
	opts, err := hanabi.DefaultGameOptions(3)
	require.NoError(t, err)
	g, err := hanabi.NewGame(opts, 4)
	require.NoError(t, err)

	cfg := Config{}
	gs := cfg.Initialize(opts)
	p := gs.NewPlayer(g.Board.CurrentPlayer, opts.NumPlayers)

	choice := p.Decide(g.View(g.Board.CurrentPlayer))
	require.Equal(t, board.ChoiceHint, choice.Kind)
}

func TestThrowawayHintIsLegalEvenWithoutAMinValueCard(t *testing.T) {
	opts, err := hanabi.DefaultGameOptions(3)
	require.NoError(t, err)
	g, err := hanabi.NewGame(opts, 4)
	require.NoError(t, err)

	target := g.Board.PlayerToLeft(g.Board.CurrentPlayer)
	for i := range g.Hands[target] {
		g.Hands[target][i] = card.New(card.Blue, 5) // no 1s in the target's hand
	}

	p := player{seat: g.Board.CurrentPlayer, numPlayers: opts.NumPlayers, shared: NewSharedHands()}
	choice := p.throwawayHint(g.View(g.Board.CurrentPlayer))
	require.NoError(t, g.Legal(choice))
}

func TestDecidePlaysAKnownPlayableCardOnceHandIsShared(t *testing.T) {
	opts, err := hanabi.DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := hanabi.NewGame(opts, 4)
	require.NoError(t, err)

	shared := NewSharedHands()
	p0 := player{seat: 0, numPlayers: 2, shared: shared}
	p1 := player{seat: 1, numPlayers: 2, shared: shared}

	// Force player 0's hand to contain a known-playable card and publish it
	// the way player 1's opening turn would.
	g.Hands[0][0] = card.New(card.Red, 1)
	shared.Publish(0, g.Hands[0])
	g.Board.Turn = opts.NumPlayers // past the opening window
	g.Board.CurrentPlayer = 0

	choice := p0.Decide(g.View(0))
	require.Equal(t, board.ChoicePlay, choice.Kind)

	_ = p1 // exercised via gameStrategy.NewPlayer in the other test
}
