// Package possibility implements the per-card possibility table: a weighted
// belief over which identities a hidden card could still be, refined by
// hints and by public knowledge of what has been played, discarded, or
// drawn. It is the foundation the public-info and hat layers build on.
package possibility

import (
	"fmt"
	"sort"

	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
)

// Table tracks, for one hidden card slot, how many "possible worlds" remain
// consistent with every hint received so far, weighted by how many
// physical copies of each identity are still unaccounted for.
type Table struct {
	weights [card.NumColors][card.NumValues]int
}

// NewTable seeds a table from the public counts of cards already played or
// discarded: every identity starts weighted by how many copies remain.
func NewTable(counts card.Counts) Table {
	var t Table
	for _, c := range card.Colors {
		for _, v := range card.Values {
			id := card.New(c, v)
			t.weights[c][v-1] = counts.Remaining(id)
		}
	}
	return t
}

// IsPossible reports whether c remains a candidate identity.
func (t Table) IsPossible(c card.Card) bool {
	return t.weights[c.Color][c.Value-1] > 0
}

// Possibilities returns every candidate identity with positive weight, in
// canonical (color, value) order.
func (t Table) Possibilities() []card.Card {
	var out []card.Card
	for _, c := range card.Colors {
		for _, v := range card.Values {
			if t.weights[c][v-1] > 0 {
				out = append(out, card.New(c, v))
			}
		}
	}
	return out
}

// GetWeight returns the raw weight for one identity (0 if ruled out).
func (t Table) GetWeight(c card.Card) int {
	return t.weights[c.Color][c.Value-1]
}

// TotalWeight sums the weights across every still-possible identity.
func (t Table) TotalWeight() int {
	total := 0
	for _, c := range card.Colors {
		for _, v := range card.Values {
			total += t.weights[c][v-1]
		}
	}
	return total
}

// Card returns the determined identity and true iff exactly one identity
// remains possible.
func (t Table) Card() (card.Card, bool) {
	poss := t.Possibilities()
	if len(poss) != 1 {
		return card.Card{}, false
	}
	return poss[0], true
}

// IsDetermined reports whether the slot's identity is fully known.
func (t Table) IsDetermined() bool {
	_, ok := t.Card()
	return ok
}

// ColorDetermined reports whether every remaining possibility shares one
// color.
func (t Table) ColorDetermined() bool {
	poss := t.Possibilities()
	if len(poss) == 0 {
		return false
	}
	c := poss[0].Color
	for _, p := range poss[1:] {
		if p.Color != c {
			return false
		}
	}
	return true
}

// ValueDetermined reports whether every remaining possibility shares one
// value.
func (t Table) ValueDetermined() bool {
	poss := t.Possibilities()
	if len(poss) == 0 {
		return false
	}
	v := poss[0].Value
	for _, p := range poss[1:] {
		if p.Value != v {
			return false
		}
	}
	return true
}

// MarkFalse sets c's weight to zero outright, regardless of hint logic.
func (t *Table) MarkFalse(c card.Card) {
	t.weights[c.Color][c.Value-1] = 0
}

// DecrementWeightIfPossible lowers c's weight by one if c is still a
// candidate; a no-op otherwise. Used when a copy of c becomes publicly
// visible in another hand or the discard pile.
func (t *Table) DecrementWeightIfPossible(c card.Card) {
	if t.weights[c.Color][c.Value-1] > 0 {
		t.weights[c.Color][c.Value-1]--
	}
}

// DecrementWeight lowers c's weight by one. It panics if c was not already
// possible: callers only reach here when every plausible identity should
// still be accounted for, so a zero weight means prior bookkeeping lost
// track of a real card — always an implementer bug.
func (t *Table) DecrementWeight(c card.Card) {
	if t.weights[c.Color][c.Value-1] <= 0 {
		panic(fmt.Sprintf("possibility: consistency violation decrementing weight for impossible card %s", c))
	}
	t.weights[c.Color][c.Value-1]--
}

// MarkColor keeps only possibilities whose color is (or is not) c,
// depending on isColor.
func (t *Table) MarkColor(c card.Color, isColor bool) {
	for _, color := range card.Colors {
		if (color == c) != isColor {
			for _, v := range card.Values {
				t.weights[color][v-1] = 0
			}
		}
	}
}

// MarkValue keeps only possibilities whose value is (or is not) v,
// depending on isValue.
func (t *Table) MarkValue(v card.Value, isValue bool) {
	for _, color := range card.Colors {
		for _, value := range card.Values {
			if (value == v) != isValue {
				t.weights[color][value-1] = 0
			}
		}
	}
}

// WeightedScore computes the weight-averaged value of scoreFn over every
// remaining possibility, or 0 if none remain.
func (t Table) WeightedScore(scoreFn func(card.Card) float64) float64 {
	var num, den float64
	for _, c := range card.Colors {
		for _, v := range card.Values {
			w := t.weights[c][v-1]
			if w <= 0 {
				continue
			}
			id := card.New(c, v)
			num += float64(w) * scoreFn(id)
			den += float64(w)
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// ProbabilityOf returns the weighted fraction of remaining possibilities
// satisfying pred.
func (t Table) ProbabilityOf(pred func(card.Card) bool) float64 {
	return t.WeightedScore(func(c card.Card) float64 {
		if pred(c) {
			return 1
		}
		return 0
	})
}

// ProbabilityPlayable, ProbabilityDead and ProbabilityDispensable express
// ProbabilityOf in terms of the board's own predicates.
func (t Table) ProbabilityPlayable(b *board.Board) float64 {
	return t.ProbabilityOf(b.IsPlayable)
}

func (t Table) ProbabilityDead(b *board.Board) float64 {
	return t.ProbabilityOf(b.IsDead)
}

func (t Table) ProbabilityDispensable(b *board.Board) float64 {
	return t.ProbabilityOf(b.IsDispensable)
}

// HandInfo is the possibility belief for every slot of one hand, in slot
// order; slots are appended on draw and removed (via Remove) on play or
// discard.
type HandInfo []Table

// NewHandInfo builds a fresh HandInfo of n slots, each seeded from counts.
func NewHandInfo(n int, counts card.Counts) HandInfo {
	h := make(HandInfo, n)
	for i := range h {
		h[i] = NewTable(counts)
	}
	return h
}

// Remove drops slot, shifting later slots down (mirrors a hand after a
// play or discard, before any replacement is drawn).
func (h *HandInfo) Remove(slot int) {
	*h = append((*h)[:slot], (*h)[slot+1:]...)
}

// Push appends a freshly seeded table for a newly drawn card.
func (h *HandInfo) Push(counts card.Counts) {
	*h = append(*h, NewTable(counts))
}

// UpdateForHint refines every slot against a hint result: matching slots
// are narrowed to the hinted property, non-matching slots have it ruled
// out.
func (h HandInfo) UpdateForHint(hint board.Hinted, matches []bool) {
	for i, table := range h {
		if hint.IsColor {
			table.MarkColor(hint.Color, matches[i])
		} else {
			table.MarkValue(hint.Value, matches[i])
		}
		h[i] = table
	}
}

// sortedByScoreDesc is a helper shared by the information strategy: it
// returns slot indices sorted by descending probability (as computed by
// score), breaking ties by ascending index — the ordering used throughout
// spec.md's question-selection policy.
func sortedByScoreDesc(indices []int, score func(int) float64) []int {
	out := append([]int(nil), indices...)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := score(out[i]), score(out[j])
		if si != sj {
			return si > sj
		}
		return out[i] < out[j]
	})
	return out
}

// SortedByScoreDesc exposes sortedByScoreDesc for use by other packages
// that rank slots the same way (internal/strategy/info).
func SortedByScoreDesc(indices []int, score func(int) float64) []int {
	return sortedByScoreDesc(indices, score)
}
