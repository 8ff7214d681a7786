package hat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/possibility"
	"github.com/vctt94/hanasim/internal/publicinfo"
)

func TestModulusInformationCombineAndSplitRoundTrip(t *testing.T) {
	a := New(3, 2)
	b := New(4, 1)
	a.Combine(b)
	require.Equal(t, 12, a.Modulus)

	low := a.Split(3)
	require.Equal(t, ModulusInformation{Modulus: 3, Value: 2}, low)
	require.Equal(t, ModulusInformation{Modulus: 4, Value: 1}, a)
}

func TestModulusInformationCastUpAndDown(t *testing.T) {
	m := New(3, 2)
	m.CastUp(6)
	require.Equal(t, 6, m.Modulus)
	require.Equal(t, 2, m.Value)

	m.CastDown(3)
	require.Equal(t, 3, m.Modulus)
}

func TestModulusInformationAddAndSubtractAreInverses(t *testing.T) {
	a := New(5, 3)
	b := New(5, 4)
	a.Add(b)
	require.Equal(t, 2, a.Value) // (3+4) % 5
	a.Subtract(b)
	require.Equal(t, 3, a.Value)
}

func TestModulusInformationPanicsOnMismatchedModulus(t *testing.T) {
	a := New(3, 1)
	b := New(4, 1)
	require.Panics(t, func() { a.Add(b) })
}

func TestCardHasPropertyAnswerAndAcknowledge(t *testing.T) {
	b := board.New(2, 2, 8, 3, 50)
	hand := []card.Card{card.New(card.Red, 1), card.New(card.Blue, 2)}
	q := IsPlayable(0)
	require.Equal(t, 1, q.Answer(hand, &b))

	info := possibility.NewHandInfo(2, card.NewCounts())
	q.AcknowledgeAnswer(1, info, &b)
	for _, c := range info[0].Possibilities() {
		require.True(t, b.IsPlayable(c))
	}
}

func TestAdditiveComboEncodesFirstNonzeroSubquestion(t *testing.T) {
	b := board.New(3, 3, 8, 3, 50)
	hand := []card.Card{
		card.New(card.Red, 2),   // not playable
		card.New(card.Yellow, 1), // playable
		card.New(card.Green, 3),  // not playable
	}
	combo := AdditiveCombo{Questions: []Question{IsPlayable(0), IsPlayable(1), IsPlayable(2)}}
	require.Equal(t, 4, combo.InfoAmount()) // 1 + (2-1)*3

	answer := combo.Answer(hand, &b)
	require.Equal(t, 2, answer) // offset 1 (from slot 0) + answer 1 (slot 1 is playable)
}

func TestAdditiveComboZeroAnswerMarksAllFalse(t *testing.T) {
	b := board.New(2, 2, 8, 3, 50)
	combo := AdditiveCombo{Questions: []Question{IsPlayable(0), IsPlayable(1)}}
	info := possibility.NewHandInfo(2, card.NewCounts())
	combo.AcknowledgeAnswer(0, info, &b)
	for _, c := range info[0].Possibilities() {
		require.False(t, b.IsPlayable(c))
	}
}

func TestCardPossibilityPartitionGivesDeadItsOwnBucket(t *testing.T) {
	b := board.New(2, 2, 8, 3, 50)
	b.PlaceOnDiscard(card.New(card.Red, 2))
	b.PlaceOnDiscard(card.New(card.Red, 2))
	// Red 3,4,5 are now dead.
	table := possibility.NewTable(card.NewCounts())
	part := NewCardPossibilityPartition(0, 3, table, &b)

	deadBucket := part.partition[card.New(card.Red, 5)]
	for _, v := range []card.Value{3, 4, 5} {
		require.Equal(t, deadBucket, part.partition[card.New(card.Red, v)])
	}
	require.NotEqual(t, deadBucket, part.partition[card.New(card.Red, 1)])
}

// stubAsker asks one IsPlayable question about slot 0 of every hand, a
// minimal but fully deterministic Asker for round-trip testing.
type stubAsker struct{}

func (stubAsker) AskQuestions(player int, hand possibility.HandInfo, b *board.Board, budget int) []Question {
	return []Question{IsPlayable(0)}
}

func TestHatSumRoundTrip(t *testing.T) {
	b := board.New(3, 2, 8, 3, 50)
	snap := publicinfo.New(3, 2)
	hands := map[int][]card.Card{
		0: {card.New(card.Red, 1), card.New(card.Blue, 3)},
		1: {card.New(card.Yellow, 5), card.New(card.Green, 2)},
		2: {card.New(card.White, 1), card.New(card.Red, 3)},
	}

	hinter := 0
	sum := GetHatSum(stubAsker{}, &snap, &b, hinter, hands, 3, 2)

	decoderSnap := publicinfo.New(3, 2)
	for self := 0; self < 3; self++ {
		if self == hinter {
			require.NotPanics(t, func() {
				UpdateFromHatSum(stubAsker{}, &decoderSnap, &b, hinter, self, hands, 3, 2, sum)
			})
		} else {
			UpdateFromHatSum(stubAsker{}, &decoderSnap, &b, hinter, self, hands, 3, 2, sum)
			actual := hands[self][0]
			require.True(t, decoderSnap.Hands[self][0].IsPossible(actual))
			for _, c := range decoderSnap.Hands[self][0].Possibilities() {
				require.Equal(t, b.IsPlayable(actual), b.IsPlayable(c))
			}
		}
	}
}
