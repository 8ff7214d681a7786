// Package hat implements the modular-arithmetic "hat-guessing" protocol:
// encoding an integer of public questions about every other player's hand
// into the single physical hint a turn allows, and decoding it back out
// on every other player's side. Every player runs the identical protocol
// against the identical public belief state (internal/publicinfo), so no
// side channel beyond the legal hint itself is ever used.
package hat

import (
	"fmt"

	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/possibility"
	"github.com/vctt94/hanasim/internal/publicinfo"
)

// ModulusInformation is a value in Z/modulus, the unit the hat protocol
// moves in: a hint, a question's answer, and an inferred fact about a hand
// are all one of these.
type ModulusInformation struct {
	Modulus int
	Value   int
}

// New builds a ModulusInformation, panicking if value does not fit modulus
// — always a caller bug.
func New(modulus, value int) ModulusInformation {
	if value < 0 || value >= modulus {
		panic(fmt.Sprintf("hat: value %d does not fit modulus %d", value, modulus))
	}
	return ModulusInformation{Modulus: modulus, Value: value}
}

// None is the zero element: no information, modulus 1.
func None() ModulusInformation { return ModulusInformation{Modulus: 1, Value: 0} }

// Combine folds other in as a higher-order digit: equivalent to treating
// (m, other) as a two-digit mixed-radix number with other's modulus as the
// next radix.
func (m *ModulusInformation) Combine(other ModulusInformation) {
	m.Value += m.Modulus * other.Value
	m.Modulus *= other.Modulus
}

// Split peels off the low-order digit sized modulus, leaving m holding the
// remaining higher-order digits. It panics if modulus does not evenly
// divide m's modulus.
func (m *ModulusInformation) Split(modulus int) ModulusInformation {
	if m.Modulus%modulus != 0 {
		panic(fmt.Sprintf("hat: modulus %d does not divide %d", modulus, m.Modulus))
	}
	low := m.Value % modulus
	m.Value /= modulus
	m.Modulus /= modulus
	return ModulusInformation{Modulus: modulus, Value: low}
}

// CastUp widens m's modulus without changing its value. It panics if
// modulus is smaller than m's current modulus.
func (m *ModulusInformation) CastUp(modulus int) {
	if m.Modulus > modulus {
		panic(fmt.Sprintf("hat: cannot cast up from modulus %d to smaller %d", m.Modulus, modulus))
	}
	m.Modulus = modulus
}

// CastDown narrows m's modulus. It panics if modulus is larger than m's
// current modulus, or if m's value would not fit.
func (m *ModulusInformation) CastDown(modulus int) {
	if m.Modulus < modulus || m.Value >= modulus {
		panic(fmt.Sprintf("hat: cannot cast down from modulus %d to %d holding value %d", m.Modulus, modulus, m.Value))
	}
	m.Modulus = modulus
}

// Add performs modular addition; both operands must share a modulus.
func (m *ModulusInformation) Add(other ModulusInformation) {
	if m.Modulus != other.Modulus {
		panic(fmt.Sprintf("hat: cannot add mismatched moduli %d and %d", m.Modulus, other.Modulus))
	}
	m.Value = (m.Value + other.Value) % m.Modulus
}

// Subtract performs modular subtraction; both operands must share a
// modulus.
func (m *ModulusInformation) Subtract(other ModulusInformation) {
	if m.Modulus != other.Modulus {
		panic(fmt.Sprintf("hat: cannot subtract mismatched moduli %d and %d", m.Modulus, other.Modulus))
	}
	m.Value = (m.Modulus + m.Value - other.Value) % m.Modulus
}

// Question is one fixed-size, deterministic probe a player can pose about
// another player's hand: how many distinct answers it has (InfoAmount),
// what the true answer is given the hand and board (Answer), and how a
// possibility table should be narrowed once the answer is known
// (AcknowledgeAnswer).
type Question interface {
	InfoAmount() int
	Answer(hand []card.Card, b *board.Board) int
	AcknowledgeAnswer(value int, hand possibility.HandInfo, b *board.Board)
}

// AnswerInfo wraps a Question's true answer as a ModulusInformation.
func AnswerInfo(q Question, hand []card.Card, b *board.Board) ModulusInformation {
	return New(q.InfoAmount(), q.Answer(hand, b))
}

// CardHasProperty asks whether the card at Index has Property: a
// two-valued question, the simplest building block.
type CardHasProperty struct {
	Index    int
	Name     string
	Property func(*board.Board, card.Card) bool
}

func (q CardHasProperty) InfoAmount() int { return 2 }

func (q CardHasProperty) Answer(hand []card.Card, b *board.Board) int {
	if q.Property(b, hand[q.Index]) {
		return 1
	}
	return 0
}

func (q CardHasProperty) AcknowledgeAnswer(value int, hand possibility.HandInfo, b *board.Board) {
	table := hand[q.Index]
	has := value == 1
	for _, c := range table.Possibilities() {
		if q.Property(b, c) != has {
			table.MarkFalse(c)
		}
	}
	hand[q.Index] = table
}

// IsPlayable and IsDead build the two CardHasProperty questions the
// information strategy asks most: whether the card at index is currently
// playable, or certain to never be playable again.
func IsPlayable(index int) CardHasProperty {
	return CardHasProperty{Index: index, Name: "playable", Property: (*board.Board).IsPlayable}
}

func IsDead(index int) CardHasProperty {
	return CardHasProperty{Index: index, Name: "dead", Property: (*board.Board).IsDead}
}

// AdditiveCombo folds several questions into one: the answer identifies
// the first sub-question that came back nonzero (and its value), at the
// combined cost of one unit per sub-question's unused zero-answer plus a
// shared final unit. Sub-questions after the first nonzero one are left
// unasked — their answer could not be observed without spending more
// budget, so only their preceding candidates are acknowledged false.
type AdditiveCombo struct {
	Questions []Question
}

func (q AdditiveCombo) InfoAmount() int {
	total := 1
	for _, sub := range q.Questions {
		total += sub.InfoAmount() - 1
	}
	return total
}

func (q AdditiveCombo) Answer(hand []card.Card, b *board.Board) int {
	offset := 0
	for _, sub := range q.Questions {
		a := sub.Answer(hand, b)
		if a != 0 {
			return offset + a
		}
		offset += sub.InfoAmount() - 1
	}
	return 0
}

func (q AdditiveCombo) AcknowledgeAnswer(value int, hand possibility.HandInfo, b *board.Board) {
	if value == 0 {
		for _, sub := range q.Questions {
			sub.AcknowledgeAnswer(0, hand, b)
		}
		return
	}
	remaining := value
	for _, sub := range q.Questions {
		amt := sub.InfoAmount() - 1
		if remaining <= amt {
			sub.AcknowledgeAnswer(remaining, hand, b)
			return
		}
		sub.AcknowledgeAnswer(0, hand, b)
		remaining -= amt
	}
}

// CardPossibilityPartition divides the still-possible identities of the
// card at Index into up to nPartitions buckets (dead possibilities always
// share one bucket, since telling them apart is worthless) and asks which
// bucket the true card falls in.
type CardPossibilityPartition struct {
	Index     int
	Buckets   int
	partition map[card.Card]int
}

// NewCardPossibilityPartition builds a partition for the possibility table
// at hand[index], using at most maxPartitions buckets.
func NewCardPossibilityPartition(index, maxPartitions int, table possibility.Table, b *board.Board) CardPossibilityPartition {
	var alive, dead []card.Card
	for _, c := range table.Possibilities() {
		if b.IsDead(c) {
			dead = append(dead, c)
		} else {
			alive = append(alive, c)
		}
	}

	blocks := maxPartitions
	if len(dead) > 0 {
		blocks--
	}
	if blocks < 1 {
		blocks = 1
	}

	partition := make(map[card.Card]int, len(alive)+len(dead))
	for i, c := range alive {
		partition[c] = i % blocks
	}
	buckets := blocks
	if len(dead) > 0 {
		for _, c := range dead {
			partition[c] = blocks
		}
		buckets = blocks + 1
	}

	return CardPossibilityPartition{Index: index, Buckets: buckets, partition: partition}
}

func (q CardPossibilityPartition) InfoAmount() int { return q.Buckets }

func (q CardPossibilityPartition) Answer(hand []card.Card, b *board.Board) int {
	return q.partition[hand[q.Index]]
}

func (q CardPossibilityPartition) AcknowledgeAnswer(value int, hand possibility.HandInfo, b *board.Board) {
	table := hand[q.Index]
	for _, c := range table.Possibilities() {
		if q.partition[c] != value {
			table.MarkFalse(c)
		}
	}
	hand[q.Index] = table
}

// Asker builds the deterministic, public-info-only question list a
// strategy poses about one player's hand, given an information budget.
// Every player must build the identical list from identical public state
// for the protocol to stay synchronized — internal/strategy/info is the
// only implementation.
type Asker interface {
	AskQuestions(player int, hand possibility.HandInfo, b *board.Board, infoBudget int) []Question
}

func localModulus(questions []Question) int {
	m := 1
	for _, q := range questions {
		m *= q.InfoAmount()
	}
	return m
}

// GetHatInfoForPlayer asks player's questions against their real hand,
// folds the answers into one ModulusInformation scoped to infoBudget, and
// — as a side effect every caller relies on — acknowledges those answers
// into the shared public snapshot, exactly as every player will once they
// decode the resulting hint.
func GetHatInfoForPlayer(asker Asker, snap *publicinfo.Snapshot, b *board.Board, player int, actualHand []card.Card, infoBudget int) ModulusInformation {
	hand := snap.Hands[player]
	questions := asker.AskQuestions(player, hand, b, infoBudget)

	answer := None()
	for _, q := range questions {
		a := AnswerInfo(q, actualHand, b)
		q.AcknowledgeAnswer(a.Value, hand, b)
		answer.Combine(a)
	}
	snap.Hands[player] = hand
	answer.CastUp(infoBudget)
	return answer
}

// UpdateFromHatInfoForPlayer is the inverse of GetHatInfoForPlayer: given a
// ModulusInformation scoped to infoBudget but actually carrying only this
// player's own digits, it narrows the player's possibility tables exactly
// as GetHatInfoForPlayer's acknowledgements would have.
func UpdateFromHatInfoForPlayer(asker Asker, snap *publicinfo.Snapshot, b *board.Board, player int, info ModulusInformation, infoBudget int) {
	hand := snap.Hands[player]
	questions := asker.AskQuestions(player, hand, b, infoBudget)

	local := localModulus(questions)
	info.CastDown(local)
	for _, q := range questions {
		part := info.Split(q.InfoAmount())
		q.AcknowledgeAnswer(part.Value, hand, b)
	}
	snap.Hands[player] = hand
}

// playersAfter lists every player except start, in turn order starting
// immediately after start.
func playersAfter(start, numPlayers int) []int {
	out := make([]int, 0, numPlayers-1)
	for i := 1; i < numPlayers; i++ {
		out = append(out, (start+i)%numPlayers)
	}
	return out
}

// GetHatSum computes the single number the hinter physically encodes: the
// modular sum, over every player but the hinter, of that player's hat
// info. Every GetHatInfoForPlayer call mutates the shared snapshot, so by
// the time this returns, the hinter's own public view already reflects
// the information their hint is about to reveal.
func GetHatSum(asker Asker, snap *publicinfo.Snapshot, b *board.Board, hinter int, actualHands map[int][]card.Card, numPlayers, infoBudget int) ModulusInformation {
	sum := New(infoBudget, 0)
	for _, p := range playersAfter(hinter, numPlayers) {
		info := GetHatInfoForPlayer(asker, snap, b, p, actualHands[p], infoBudget)
		sum.Add(info)
	}
	return sum
}

// UpdateFromHatSum decodes a hint's encoded sum from self's point of view.
// Every other non-hinter player's contribution can be recomputed directly
// (self can see their hands), so subtracting all of them leaves either
// exactly zero (if self is the hinter, asserted) or self's own unknown
// digit, which is then folded into self's own possibility tables via
// UpdateFromHatInfoForPlayer.
func UpdateFromHatSum(asker Asker, snap *publicinfo.Snapshot, b *board.Board, hinter, self int, actualHands map[int][]card.Card, numPlayers, infoBudget int, sum ModulusInformation) {
	remaining := sum
	for _, p := range playersAfter(hinter, numPlayers) {
		if p == self {
			continue
		}
		info := GetHatInfoForPlayer(asker, snap, b, p, actualHands[p], infoBudget)
		remaining.Subtract(info)
	}
	if self == hinter {
		if remaining.Value != 0 {
			panic("hat: consistency violation decoding a hint the hinter themself gave")
		}
		return
	}
	UpdateFromHatInfoForPlayer(asker, snap, b, self, remaining, infoBudget)
}
