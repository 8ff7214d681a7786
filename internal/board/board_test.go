package board

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vctt94/hanasim/internal/card"
)

func TestIsPlayable(t *testing.T) {
	b := New(4, 4, 8, 3, 50)
	require.True(t, b.IsPlayable(card.New(card.Red, 1)))
	require.False(t, b.IsPlayable(card.New(card.Red, 2)))

	b.PlaceOnFirework(card.New(card.Red, 1))
	require.False(t, b.IsPlayable(card.New(card.Red, 1)))
	require.True(t, b.IsPlayable(card.New(card.Red, 2)))
}

func TestIsDeadAfterLosingAllCopiesOfANeededValue(t *testing.T) {
	b := New(4, 4, 8, 3, 50)

	// Discard both copies of red 2: red 3,4,5 are now dead even though
	// they have never touched the discard pile themselves.
	b.PlaceOnDiscard(card.New(card.Red, 2))
	b.PlaceOnDiscard(card.New(card.Red, 2))

	require.True(t, b.IsDead(card.New(card.Red, 3)))
	require.True(t, b.IsDead(card.New(card.Red, 4)))
	require.True(t, b.IsDead(card.New(card.Red, 5)))
	require.False(t, b.IsDead(card.New(card.Red, 2)))
	require.False(t, b.IsDead(card.New(card.Yellow, 3)))
}

func TestIsDispensable(t *testing.T) {
	b := New(4, 4, 8, 3, 50)

	// Both red 2s still out there: either is dispensable.
	require.True(t, b.IsDispensable(card.New(card.Red, 2)))

	b.PlaceOnDiscard(card.New(card.Red, 2))
	// Now only one red 2 remains: it is not dispensable.
	require.False(t, b.IsDispensable(card.New(card.Red, 2)))

	// Already played values are always dispensable.
	b.PlaceOnFirework(card.New(card.Yellow, 1))
	require.True(t, b.IsDispensable(card.New(card.Yellow, 1)))
}

func TestScoreIsSumOfFireworkTops(t *testing.T) {
	b := New(4, 4, 8, 3, 50)
	b.PlaceOnFirework(card.New(card.Red, 1))
	b.PlaceOnFirework(card.New(card.Red, 2))
	b.PlaceOnFirework(card.New(card.Yellow, 1))
	require.Equal(t, 3, b.Score())
}

func TestAddHintClampsAtTotal(t *testing.T) {
	b := New(4, 4, 8, 3, 50)
	b.Hints = 8
	b.AddHint()
	require.Equal(t, 8, b.Hints)
}

func TestPlayerToLeftWraps(t *testing.T) {
	b := New(3, 5, 8, 3, 50)
	require.Equal(t, 1, b.PlayerToLeft(0))
	require.Equal(t, 0, b.PlayerToLeft(2))
}
