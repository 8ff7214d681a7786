// Package board implements the Hanabi board state: fireworks, discard pile,
// hint/life counters, and the turn log. It holds no hands and no deck order
// — those belong to the game state machine in internal/hanabi.
package board

import "github.com/vctt94/hanasim/internal/card"

// Board aggregates the shared, fully-public counters of a Hanabi game.
type Board struct {
	NumPlayers int
	HandSize   int

	Fireworks [card.NumColors]card.Value // 0 means empty

	Discard       []card.Card
	discardCounts card.Counts

	Hints      int
	TotalHints int
	Lives      int
	TotalLives int

	DeckSize int

	CurrentPlayer int
	Turn          int

	// FinalCountdown is the number of turns remaining after the deck runs
	// dry. Zero means the deck has not yet run out.
	FinalCountdown int

	Log []TurnRecord
}

// New creates a fresh Board for the given options, with deckSize cards left
// to draw.
func New(numPlayers, handSize, totalHints, totalLives, deckSize int) Board {
	return Board{
		NumPlayers:    numPlayers,
		HandSize:      handSize,
		Hints:         totalHints,
		TotalHints:    totalHints,
		Lives:         totalLives,
		TotalLives:    totalLives,
		DeckSize:      deckSize,
		discardCounts: card.NewCounts(),
	}
}

// TotalCards is the fixed size of a standard deck.
const TotalCards = 50

// IsPlayable reports whether c is exactly one above its color's firework top.
func (b *Board) IsPlayable(c card.Card) bool {
	return b.Fireworks[c.Color]+1 == c.Value
}

// IsDead reports whether c's firework can never reach c.Value: either the
// firework has already passed it, or some value strictly between the
// current top and c.Value has had every copy discarded.
func (b *Board) IsDead(c card.Card) bool {
	top := b.Fireworks[c.Color]
	if c.Value <= top {
		return true
	}
	for v := top + 1; v < c.Value; v++ {
		needed := card.New(c.Color, v)
		if b.discardCounts.Remaining(needed) <= 0 {
			return true
		}
	}
	return false
}

// IsDispensable reports whether c is not strictly required for any firework
// to reach 5: already played, dead, or not the last surviving copy.
func (b *Board) IsDispensable(c card.Card) bool {
	if c.Value <= b.Fireworks[c.Color] {
		return true
	}
	if b.IsDead(c) {
		return true
	}
	return b.discardCounts.Remaining(c) > 1
}

// PlaceOnFirework advances c's color firework by one, returning whether a
// bonus hint was earned (completing the firework at value 5).
func (b *Board) PlaceOnFirework(c card.Card) (bonusHint bool) {
	if b.Fireworks[c.Color]+1 != c.Value {
		panic("board: attempted to place a non-playable card on a firework")
	}
	b.Fireworks[c.Color] = c.Value
	return c.Value == card.FinalValue
}

// PlaceOnDiscard moves c to the discard pile and tallies it.
func (b *Board) PlaceOnDiscard(c card.Card) {
	b.Discard = append(b.Discard, c)
	b.discardCounts.Increment(c)
}

// DiscardCounts exposes the public discard tally, used to seed fresh
// possibility tables for newly drawn slots.
func (b *Board) DiscardCounts() card.Counts {
	return b.discardCounts
}

// DiscardSize is the number of cards in the discard pile.
func (b *Board) DiscardSize() int {
	return len(b.Discard)
}

// AddHint clamps a hint-token gain at TotalHints.
func (b *Board) AddHint() {
	if b.Hints < b.TotalHints {
		b.Hints++
	}
}

// Score is the sum of the firework tops, used for all three termination
// reasons (see the Open Question decision in DESIGN.md).
func (b *Board) Score() int {
	total := 0
	for _, top := range b.Fireworks {
		total += int(top)
	}
	return total
}

// FireworksComplete reports whether every firework has reached 5.
func (b *Board) FireworksComplete() bool {
	for _, top := range b.Fireworks {
		if top != card.FinalValue {
			return false
		}
	}
	return true
}

// PlayerToLeft returns the next player in turn order after p.
func (b *Board) PlayerToLeft(p int) int {
	return (p + 1) % b.NumPlayers
}

// Players returns every player index in turn order starting at 0.
func (b *Board) Players() []int {
	players := make([]int, b.NumPlayers)
	for i := range players {
		players[i] = i
	}
	return players
}

// ChoiceKind tags the variant of a Choice.
type ChoiceKind uint8

const (
	ChoicePlay ChoiceKind = iota
	ChoiceDiscard
	ChoiceHint
)

// Hinted is a tagged union: either a color hint or a value hint.
type Hinted struct {
	IsColor bool
	Color   card.Color
	Value   card.Value
}

func HintColor(c card.Color) Hinted { return Hinted{IsColor: true, Color: c} }
func HintValue(v card.Value) Hinted { return Hinted{IsColor: false, Value: v} }

// Matches reports whether c matches this hint.
func (h Hinted) Matches(c card.Card) bool {
	if h.IsColor {
		return c.Color == h.Color
	}
	return c.Value == h.Value
}

// Choice is the tagged move a player submits on their turn.
type Choice struct {
	Kind   ChoiceKind
	Slot   int    // Play/Discard
	Target int    // Hint: target player
	Hinted Hinted // Hint
}

func Play(slot int) Choice    { return Choice{Kind: ChoicePlay, Slot: slot} }
func Discard(slot int) Choice { return Choice{Kind: ChoiceDiscard, Slot: slot} }
func Hint(target int, h Hinted) Choice {
	return Choice{Kind: ChoiceHint, Target: target, Hinted: h}
}

// ResultKind tags the variant of a Result.
type ResultKind uint8

const (
	ResultPlay ResultKind = iota
	ResultDiscard
	ResultHint
)

// Result is the tagged outcome recorded for a processed Choice.
type Result struct {
	Kind ResultKind

	// Play
	PlayedCard card.Card
	Success    bool

	// Discard
	DiscardedCard card.Card

	// Play and Discard: whether a replacement card was drawn from the deck.
	Drew bool

	// Hint
	Matches []bool
}

// TurnRecord is one entry of the public turn log.
type TurnRecord struct {
	Player int
	Choice Choice
	Result Result
}
