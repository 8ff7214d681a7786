package publicinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
)

func TestNewSeedsEveryHandWithFullDeckWeights(t *testing.T) {
	s := New(3, 5)
	require.Len(t, s.Hands, 3)
	for _, h := range s.Hands {
		require.Len(t, h, 5)
		require.Equal(t, 50, h[0].TotalWeight())
	}
}

func TestApplyHintNarrowsOnlyTarget(t *testing.T) {
	s := New(2, 4)
	s.ApplyHint(1, board.HintColor(card.Red), []bool{true, false, false, false})
	require.True(t, s.Hands[1][0].ColorDetermined())
	require.False(t, s.Hands[0][0].IsDetermined())
}

func TestApplyPlayOrDiscardPropagatesToEveryHand(t *testing.T) {
	s := New(3, 4)
	revealed := card.New(card.Green, 2)
	s.ApplyPlayOrDiscard(0, 0, revealed, true)

	require.Len(t, s.Hands[0], 4) // slot removed, replacement pushed
	require.Equal(t, 1, s.PublicCounts.Get(revealed))
	for _, h := range s.Hands {
		for _, tbl := range h {
			require.Equal(t, 1, tbl.GetWeight(revealed))
		}
	}
}

func TestApplyPlayOrDiscardWithoutDrawShrinksHand(t *testing.T) {
	s := New(2, 4)
	s.ApplyPlayOrDiscard(0, 0, card.New(card.Red, 1), false)
	require.Len(t, s.Hands[0], 3)
}

func TestPrivateInfoDecrementsVisibleCards(t *testing.T) {
	s := New(2, 1)
	actual := map[int][]card.Card{
		0: {card.New(card.Red, 1)},
		1: {card.New(card.Red, 1)},
	}
	private := s.PrivateInfo(0, actual)
	require.Equal(t, 2, private[0].GetWeight(card.New(card.Red, 1)))
}
