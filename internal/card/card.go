// Package card defines the identity and ordering of Hanabi cards, and the
// dense per-identity counters shared by the possibility and public-info
// layers.
package card

import "fmt"

// Color is one of the five fixed firework suits. The order here is
// canonical: it fixes the suit_index used by the JSON trace exporter.
type Color uint8

const (
	Red Color = iota
	Yellow
	Green
	Blue
	White
	NumColors = 5
)

// Colors lists every color in canonical order.
var Colors = [NumColors]Color{Red, Yellow, Green, Blue, White}

var colorNames = [NumColors]string{"red", "yellow", "green", "blue", "white"}
var colorLetters = [NumColors]string{"r", "y", "g", "b", "w"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Letter returns the single-character abbreviation used in log output.
func (c Color) Letter() string {
	if int(c) < len(colorLetters) {
		return colorLetters[c]
	}
	return "?"
}

// Value is a card rank in [1,5].
type Value uint8

const (
	MinValue   Value = 1
	MaxValue   Value = 5
	NumValues        = 5
	FinalValue       = MaxValue
)

// Values lists every value in ascending order.
var Values = [NumValues]Value{1, 2, 3, 4, 5}

// CountForValue returns the number of copies of a given value present in a
// full deck, for every color: {1:3, 2:2, 3:2, 4:2, 5:1}.
func CountForValue(v Value) int {
	switch v {
	case 1:
		return 3
	case 2, 3, 4:
		return 2
	case 5:
		return 1
	default:
		panic(fmt.Sprintf("card: unexpected value %d", v))
	}
}

// Card is a single (color, value) identity. Cards are comparable directly
// with ==, and totally ordered by Less.
type Card struct {
	Color Color
	Value Value
}

// New builds a Card, panicking on an out-of-range value (an implementer bug,
// never a user input).
func New(color Color, value Value) Card {
	if value < MinValue || value > MaxValue {
		panic(fmt.Sprintf("card: value %d out of range", value))
	}
	return Card{Color: color, Value: value}
}

// Less orders cards by (color, value).
func (c Card) Less(other Card) bool {
	if c.Color != other.Color {
		return c.Color < other.Color
	}
	return c.Value < other.Value
}

func (c Card) String() string {
	return fmt.Sprintf("%s%d", c.Color.Letter(), c.Value)
}

// FullDeck returns the 50 cards of a standard Hanabi deck, unshuffled, in
// canonical (color, value) order.
func FullDeck() []Card {
	deck := make([]Card, 0, 50)
	for _, c := range Colors {
		for _, v := range Values {
			for i := 0; i < CountForValue(v); i++ {
				deck = append(deck, New(c, v))
			}
		}
	}
	return deck
}

// Counts is a dense per-identity tally of cards that have become public
// (played or discarded). It backs both the possibility table's initial
// weights and the discard pile's "has this run out" queries.
type Counts struct {
	n [NumColors][NumValues]int
}

// NewCounts returns an all-zero tally.
func NewCounts() Counts {
	return Counts{}
}

// Get returns how many copies of card have been tallied.
func (c Counts) Get(card Card) int {
	return c.n[card.Color][card.Value-1]
}

// Remaining returns how many copies of card have not yet been tallied.
func (c Counts) Remaining(card Card) int {
	return CountForValue(card.Value) - c.Get(card)
}

// Increment records one more public copy of card.
func (c *Counts) Increment(card Card) {
	c.n[card.Color][card.Value-1]++
}
