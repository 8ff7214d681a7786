package hanabi

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
)

func TestDefaultGameOptionsHandSize(t *testing.T) {
	for _, n := range []int{2, 3} {
		opts, err := DefaultGameOptions(n)
		require.NoError(t, err)
		require.Equal(t, 5, opts.HandSize)
	}
	for _, n := range []int{4, 5} {
		opts, err := DefaultGameOptions(n)
		require.NoError(t, err)
		require.Equal(t, 4, opts.HandSize)
	}
	_, err := DefaultGameOptions(6)
	require.Error(t, err)
}

func TestNewGameIsDeterministicForASeed(t *testing.T) {
	opts, err := DefaultGameOptions(4)
	require.NoError(t, err)

	g1, err := NewGame(opts, 42)
	require.NoError(t, err)
	g2, err := NewGame(opts, 42)
	require.NoError(t, err)

	require.Equal(t, g1.Hands, g2.Hands)
	require.Equal(t, g1.InitialDeck(), g2.InitialDeck())
}

func TestNewGameDealsCorrectHandSizes(t *testing.T) {
	opts, err := DefaultGameOptions(3)
	require.NoError(t, err)
	g, err := NewGame(opts, 1)
	require.NoError(t, err)

	for p := 0; p < opts.NumPlayers; p++ {
		require.Len(t, g.Hands[p], opts.HandSize)
	}
	require.Equal(t, 50-opts.NumPlayers*opts.HandSize, g.Board.DeckSize)
}

func TestPlayPlayableCardAdvancesFirework(t *testing.T) {
	opts, err := DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := NewGame(opts, 7)
	require.NoError(t, err)

	player := g.Board.CurrentPlayer
	g.Hands[player][0] = card.New(card.Red, 1)

	rec, err := g.Apply(Play(0))
	require.NoError(t, err)
	require.Equal(t, board.ResultPlay, rec.Result.Kind)
	require.True(t, rec.Result.Success)
	require.Equal(t, card.Value(1), g.Board.Fireworks[card.Red])
}

func TestPlayUnplayableCardCostsALife(t *testing.T) {
	opts, err := DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := NewGame(opts, 7)
	require.NoError(t, err)

	player := g.Board.CurrentPlayer
	g.Hands[player][0] = card.New(card.Red, 2)

	rec, err := g.Apply(Play(0))
	require.NoError(t, err)
	require.False(t, rec.Result.Success)
	require.Equal(t, opts.TotalLives-1, g.Board.Lives)
	require.Len(t, g.Board.Discard, 1)
}

func TestDiscardReturnsAHint(t *testing.T) {
	opts, err := DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := NewGame(opts, 7)
	require.NoError(t, err)

	g.Board.Hints = opts.TotalHints - 2
	_, err = g.Apply(Discard(0))
	require.NoError(t, err)
	require.Equal(t, opts.TotalHints-1, g.Board.Hints)
}

func TestCannotDiscardAtMaxHints(t *testing.T) {
	opts, err := DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := NewGame(opts, 7)
	require.NoError(t, err)

	_, err = g.Apply(Discard(0))
	require.Error(t, err)
}

func TestHintSpendsATokenAndRecordsMatches(t *testing.T) {
	opts, err := DefaultGameOptions(3)
	require.NoError(t, err)
	g, err := NewGame(opts, 9)
	require.NoError(t, err)

	player := g.Board.CurrentPlayer
	target := g.Board.PlayerToLeft(player)
	g.Hands[target][0] = card.New(card.Blue, 3)

	rec, err := g.Apply(Hint(target, HintColor(card.Blue)))
	require.NoError(t, err)
	require.Equal(t, opts.TotalHints-1, g.Board.Hints)
	require.True(t, rec.Result.Matches[0])
}

func TestCannotHintSelfOrWithoutTokens(t *testing.T) {
	opts, err := DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := NewGame(opts, 3)
	require.NoError(t, err)

	player := g.Board.CurrentPlayer
	_, err = g.Apply(Hint(player, HintValue(1)))
	require.Error(t, err)

	g.Board.Hints = 0
	other := g.Board.PlayerToLeft(player)
	_, err = g.Apply(Hint(other, HintValue(1)))
	require.Error(t, err)
}

func TestGameEndsWhenLivesRunOut(t *testing.T) {
	opts, err := DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := NewGame(opts, 11)
	require.NoError(t, err)

	for i := 0; i < opts.TotalLives; i++ {
		player := g.Board.CurrentPlayer
		g.Hands[player][0] = card.New(card.Red, 5) // never playable at top=0
		_, err := g.Apply(Play(0))
		require.NoError(t, err)
	}

	require.True(t, g.Over())
	result := g.Terminal()
	require.Equal(t, "lives", result.Reason)
}

func TestConservationOfCards(t *testing.T) {
	opts, err := DefaultGameOptions(4)
	require.NoError(t, err)
	g, err := NewGame(opts, 123)
	require.NoError(t, err)

	total := len(g.deck)
	for _, h := range g.Hands {
		total += len(h)
	}
	total += len(g.Board.Discard)
	for _, top := range g.Board.Fireworks {
		total += int(top)
	}
	require.Equal(t, board.TotalCards, total)
}

func TestViewHidesOwnHandContents(t *testing.T) {
	opts, err := DefaultGameOptions(3)
	require.NoError(t, err)
	g, err := NewGame(opts, 5)
	require.NoError(t, err)

	v := g.View(0)
	require.Equal(t, opts.HandSize, v.OwnHandSize)
	require.Panics(t, func() { v.Hand(0) })
	require.Len(t, v.Hand(1), opts.HandSize)
}
