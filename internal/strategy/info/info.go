// Package info implements the information strategy: the cooperative
// "hat-guessing" player that never looks at its own cards, instead
// deriving every decision from the public belief state every player
// maintains identically (internal/publicinfo) and the physical-hint
// encoding protocol (internal/hat). It is the strategy the harness exists
// to evaluate.
package info

import (
	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/hanabi"
	"github.com/vctt94/hanasim/internal/hat"
	"github.com/vctt94/hanasim/internal/possibility"
	"github.com/vctt94/hanasim/internal/publicinfo"
	"github.com/vctt94/hanasim/internal/strategy"
)

// Config builds one shared public-info snapshot per game; every seat's
// player reads and mutates the same snapshot so the protocol stays
// synchronized.
type Config struct{}

func (Config) Initialize(opts hanabi.GameOptions) strategy.GameStrategy {
	snap := publicinfo.New(opts.NumPlayers, opts.HandSize)
	return &gameStrategy{opts: opts, snap: &snap}
}

type gameStrategy struct {
	opts hanabi.GameOptions
	snap *publicinfo.Snapshot
}

func (g *gameStrategy) NewPlayer(seat, numPlayers int) strategy.Player {
	return player{me: seat, numPlayers: numPlayers, snap: g.snap}
}

type player struct {
	me         int
	numPlayers int
	snap       *publicinfo.Snapshot
}

// playersAfter lists every player except start, in turn order starting
// immediately after start — the canonical order the hat protocol sums
// and decomposes information in.
func playersAfter(start, numPlayers int) []int {
	out := make([]int, 0, numPlayers-1)
	for i := 1; i < numPlayers; i++ {
		out = append(out, (start+i)%numPlayers)
	}
	return out
}

// mayBeAllOneColor/mayBeAllOneValue report whether, given only public
// information, it remains possible that every slot in hand shares a
// single color (or value). When so, a hint about that hand is "wasted"
// less efficiently, so its channel capacity drops by one.
func mayBeAllOneColor(hand possibility.HandInfo) bool {
	for _, c := range card.Colors {
		all := true
		for _, table := range hand {
			if !anyWithColor(table, c) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func anyWithColor(table possibility.Table, c card.Color) bool {
	for _, p := range table.Possibilities() {
		if p.Color == c {
			return true
		}
	}
	return false
}

func mayBeAllOneValue(hand possibility.HandInfo) bool {
	for _, v := range card.Values {
		all := true
		for _, table := range hand {
			if !anyWithValue(table, v) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func anyWithValue(table possibility.Table, v card.Value) bool {
	for _, p := range table.Possibilities() {
		if p.Value == v {
			return true
		}
	}
	return false
}

// getInfoPerPlayer is the physical hint's channel capacity for a target
// hand: ordinarily 4 (value, color, or one of two structured fallbacks),
// dropping to 3 whenever every card in the hand could still turn out to
// share one color or one value, since an ordinary hint can't rule that
// structure out.
func getInfoPerPlayer(hand possibility.HandInfo) int {
	if !mayBeAllOneColor(hand) && !mayBeAllOneValue(hand) {
		return 4
	}
	return 3
}

// findUselessIndices returns every slot that is certainly dead, or a
// certain duplicate of an earlier determined slot in the same hand.
func findUselessIndices(hand possibility.HandInfo, b *board.Board) []int {
	seen := make(map[card.Card]bool)
	var out []int
	for i, table := range hand {
		if table.ProbabilityDead(b) == 1.0 {
			out = append(out, i)
			continue
		}
		if c, ok := table.Card(); ok {
			if seen[c] {
				out = append(out, i)
			} else {
				seen[c] = true
			}
		}
	}
	return out
}

// getIndexForHint picks which slot of target's hand a hint should be
// about: the slot a hint can narrow the most (not already dead or fully
// known, and missing the most of color/value determination), breaking
// ties by lowest index. It depends only on public information, so every
// player computes the same index independently.
func (p player) getIndexForHint(target int, b *board.Board) int {
	hand := p.snap.Hands[target]
	bestIdx, bestScore := 0, -1
	for i, table := range hand {
		score := 0
		if table.ProbabilityDead(b) != 1.0 && !table.IsDetermined() {
			score = 1
			if !table.ColorDetermined() {
				score++
			}
			if !table.ValueDetermined() {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx
}

// AskQuestions builds the deterministic set of questions asked about one
// player's hand within an information budget: first whether undetermined
// slots not yet known to be playable, with play probability at least 0.2,
// are playable (folded into one AdditiveCombo to save
// budget, plus dead-checks if room remains), then, for any leftover
// budget, which partition of its remaining possibilities each
// undetermined card falls into.
func (p player) AskQuestions(target int, hand possibility.HandInfo, b *board.Board, budget int) []hat.Question {
	var out []hat.Question
	used := 1

	pPlay := make([]float64, len(hand))
	pDead := make([]float64, len(hand))
	knownPlayable, knownDead := 0, 0
	for i, table := range hand {
		pPlay[i] = table.ProbabilityPlayable(b)
		pDead[i] = table.ProbabilityDead(b)
		if pPlay[i] == 1.0 {
			knownPlayable++
		}
		if pDead[i] == 1.0 {
			knownDead++
		}
	}

	if knownPlayable == 0 {
		var playCandidates []int
		for i, table := range hand {
			if table.IsDetermined() || pDead[i] >= 1.0 || pPlay[i] >= 1.0 || pPlay[i] < 0.2 {
				continue
			}
			playCandidates = append(playCandidates, i)
		}
		playCandidates = possibility.SortedByScoreDesc(playCandidates, func(i int) float64 { return pPlay[i] })

		var selected []int
		comboFactor := 1
		for _, i := range playCandidates {
			next := comboFactor + 1
			if used*next > budget {
				break
			}
			selected = append(selected, i)
			comboFactor = next
		}
		for i, j := 0, len(selected)-1; i < j; i, j = i+1, j-1 {
			selected[i], selected[j] = selected[j], selected[i]
		}

		comboQs := make([]hat.Question, 0, len(selected))
		for _, i := range selected {
			comboQs = append(comboQs, hat.IsPlayable(i))
		}

		if knownDead == 0 {
			var deadCandidates []int
			for i, table := range hand {
				if table.IsDetermined() || pDead[i] >= 1.0 || pDead[i] <= 0 {
					continue
				}
				deadCandidates = append(deadCandidates, i)
			}
			deadCandidates = possibility.SortedByScoreDesc(deadCandidates, func(i int) float64 { return pDead[i] })
			for _, i := range deadCandidates {
				next := comboFactor + 1
				if used*next > budget {
					break
				}
				comboQs = append(comboQs, hat.IsDead(i))
				comboFactor = next
			}
		}

		if len(comboQs) > 0 {
			out = append(out, hat.AdditiveCombo{Questions: comboQs})
			used *= comboFactor
		}
	}

	var partitionCandidates []int
	for i, table := range hand {
		if table.IsDetermined() || pDead[i] == 1.0 {
			continue
		}
		partitionCandidates = append(partitionCandidates, i)
	}
	partitionCandidates = possibility.SortedByScoreDesc(partitionCandidates, func(i int) float64 { return pPlay[i] })

	for _, i := range partitionCandidates {
		room := budget / used
		if room < 2 {
			break
		}
		part := hat.NewCardPossibilityPartition(i, room, hand[i], b)
		if part.InfoAmount() < 2 {
			continue
		}
		out = append(out, part)
		used *= part.InfoAmount()
	}

	return out
}

// getHint runs the encode half of the protocol: sum up every other
// player's hat info, decompose that number into a target player, card
// index, and hint type, and translate the type into a concrete Hinted.
func (p player) getHint(view hanabi.PlayerView) board.Choice {
	targets := playersAfter(p.me, p.numPlayers)
	capacity := make(map[int]int, len(targets))
	total := 0
	for _, q := range targets {
		capacity[q] = getInfoPerPlayer(p.snap.Hands[q])
		total += capacity[q]
	}

	sum := hat.GetHatSum(p, p.snap, &view.Board, p.me, view.OtherHands(), p.numPlayers, total)

	val := sum.Value
	target := targets[0]
	hintType := val
	for _, q := range targets {
		amt := capacity[q]
		if val < amt {
			target = q
			hintType = val
			break
		}
		val -= amt
	}

	cardIdx := p.getIndexForHint(target, &view.Board)
	hand := view.Hand(target)
	trueCard := hand[cardIdx]
	targetCap := capacity[target]

	var hinted board.Hinted
	switch {
	case hintType == 0:
		hinted = board.HintValue(trueCard.Value)
	case hintType == 1:
		hinted = board.HintColor(trueCard.Color)
	case targetCap == 3:
		// Capacity 3 has only one non-matching bucket (type 2): either
		// hint kind decodes the same way, so either is eligible.
		hinted = bestNonMatchingHint(hand, trueCard, true, true)
	case hintType == 2:
		// Capacity 4, type 2 must decode back to type 2: inferFromHint
		// reads a non-matching value hint as type 2, a non-matching
		// color hint as type 3, so only value hints are eligible here.
		hinted = bestNonMatchingHint(hand, trueCard, true, false)
	default:
		// hintType == 3: symmetric restriction to color-only.
		hinted = bestNonMatchingHint(hand, trueCard, false, true)
	}
	return board.Hint(target, hinted)
}

// bestNonMatchingHint picks, among hints that would not match trueCard,
// the one matching the most other cards in hand — maximizing the
// information the physical hint carries as a side effect of its
// legality. allowValue/allowColor restrict the search to the hint kinds
// that still decode to the intended protocol type (internal/hat and
// inferFromHint distinguish a non-matching value hint from a non-matching
// color hint, so mixing the two candidate pools would desync the decode).
func bestNonMatchingHint(hand []card.Card, trueCard card.Card, allowValue, allowColor bool) board.Hinted {
	var candidates []board.Hinted
	if allowValue {
		for _, v := range card.Values {
			if v != trueCard.Value {
				candidates = append(candidates, board.HintValue(v))
			}
		}
	}
	if allowColor {
		for _, c := range card.Colors {
			if c != trueCard.Color {
				candidates = append(candidates, board.HintColor(c))
			}
		}
	}

	best := board.HintValue(trueCard.Value) // safe fallback: always matches trueCard itself
	bestCount := -1
	for _, h := range candidates {
		count := 0
		for _, c := range hand {
			if h.Matches(c) {
				count++
			}
		}
		if count > 0 && count > bestCount {
			bestCount = count
			best = h
		}
	}
	return best
}

// Decide implements the information strategy's decision order: play a
// card only a hint-derived certainty says is playable, take a calculated
// risk when discards are cheap and lives allow it, clear out known-dead
// cards, otherwise hint, and fall back to the least costly discard.
func (p player) Decide(view hanabi.PlayerView) board.Choice {
	private := p.snap.PrivateInfo(p.me, view.OtherHands())
	b := &view.Board

	if idx, ok := bestCertainPlay(private, view); ok {
		return board.Play(idx)
	}

	handSize := len(private)
	discardThreshold := board.TotalCards - 25 - p.numPlayers*handSize
	softDiscardThreshold := discardThreshold - 5
	if p.numPlayers >= 5 {
		softDiscardThreshold = discardThreshold
	}

	if b.Lives > 1 && b.DiscardSize() <= discardThreshold {
		if idx, pPlay, ok := bestRiskyPlay(private, b); ok && pPlay > 0.75 {
			return board.Play(idx)
		}
	}

	publicUseless := findUselessIndices(p.snap.Hands[p.me], b)
	privateUseless := findUselessIndices(private, b)

	if b.DiscardSize() <= softDiscardThreshold {
		if len(publicUseless) > 1 {
			return p.discardOrHint(publicUseless[0], view)
		}
		if len(privateUseless) > 0 {
			return p.discardOrHint(privateUseless[0], view)
		}
	}

	if b.Hints > 0 && view.SomeoneElseCanPlay() {
		return p.getHint(view)
	}

	if len(publicUseless) > 1 {
		return p.discardOrHint(publicUseless[0], view)
	}
	if len(privateUseless) > 0 {
		return p.discardOrHint(privateUseless[0], view)
	}

	bestIdx, bestScore := 0, -1.0
	for i, table := range private {
		score := table.WeightedScore(func(c card.Card) float64 {
			seen := 0.0
			if view.CanSee(c) {
				seen = 1
			}
			disp := 0.0
			if b.IsDispensable(c) {
				disp = 1
			}
			return 20*seen + 10*disp + float64(c.Value)
		})
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return p.discardOrHint(bestIdx, view)
}

// discardOrHint discards idx, unless hints are already at the cap (where
// discarding is illegal) — in which case it falls back to a protocol
// hint instead of offering an illegal move.
func (p player) discardOrHint(idx int, view hanabi.PlayerView) board.Choice {
	if view.Board.Hints >= view.Board.TotalHints {
		return p.getHint(view)
	}
	return board.Discard(idx)
}

// bestCertainPlay returns the slot maximizing average play value among
// every slot whose private belief is certainly playable, if any exist.
func bestCertainPlay(private possibility.HandInfo, view hanabi.PlayerView) (int, bool) {
	bestIdx, bestScore, found := 0, -1.0, false
	for i, table := range private {
		if table.ProbabilityPlayable(&view.Board) != 1.0 {
			continue
		}
		score := table.WeightedScore(func(c card.Card) float64 {
			numWith := 1
			for _, hand := range view.OtherHands() {
				for _, h := range hand {
					if h == c {
						numWith++
					}
				}
			}
			return float64(10-int(c.Value)) / float64(numWith)
		})
		if !found || score > bestScore {
			found = true
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx, found
}

// bestRiskyPlay returns the slot most likely playable among those
// certainly either playable or dead (so a miss costs nothing useful),
// along with its play probability.
func bestRiskyPlay(private possibility.HandInfo, b *board.Board) (int, float64, bool) {
	bestIdx, bestP, found := 0, -1.0, false
	for i, table := range private {
		safe := table.ProbabilityOf(func(c card.Card) bool { return b.IsPlayable(c) || b.IsDead(c) })
		if safe != 1.0 {
			continue
		}
		p := table.ProbabilityPlayable(b)
		if !found || p > bestP {
			found = true
			bestP = p
			bestIdx = i
		}
	}
	return bestIdx, bestP, found
}

// Update folds a resolved turn into the shared public snapshot: hints are
// decoded before they narrow their target, plays and discards simply
// reveal their card to everyone.
func (p player) Update(view hanabi.PlayerView, rec board.TurnRecord) {
	switch rec.Choice.Kind {
	case board.ChoiceHint:
		p.inferFromHint(rec, view)
		p.snap.ApplyHint(rec.Choice.Target, rec.Choice.Hinted, rec.Result.Matches)
	case board.ChoiceDiscard:
		p.snap.ApplyPlayOrDiscard(rec.Player, rec.Choice.Slot, rec.Result.DiscardedCard, rec.Result.Drew)
	case board.ChoicePlay:
		p.snap.ApplyPlayOrDiscard(rec.Player, rec.Choice.Slot, rec.Result.PlayedCard, rec.Result.Drew)
	}
}

// inferFromHint is the decode half of the protocol: reconstruct the
// number the hinter's physical hint encoded, then fold it into this
// player's own possibility tables via the hat-sum inverse.
func (p player) inferFromHint(rec board.TurnRecord, view hanabi.PlayerView) {
	hinter := rec.Player
	target := rec.Choice.Target
	targets := playersAfter(hinter, p.numPlayers)

	capacity := make(map[int]int, len(targets))
	total := 0
	offset := 0
	for _, q := range targets {
		capacity[q] = getInfoPerPlayer(p.snap.Hands[q])
		if q == target {
			offset = total
		}
		total += capacity[q]
	}

	targetCap := capacity[target]
	cardIdx := p.getIndexForHint(target, &view.Board)
	matched := false
	if cardIdx < len(rec.Result.Matches) {
		matched = rec.Result.Matches[cardIdx]
	}
	isColorHint := rec.Choice.Hinted.IsColor

	var hintType int
	switch {
	case !isColorHint && matched:
		hintType = 0
	case isColorHint && matched:
		hintType = 1
	case targetCap == 3:
		hintType = 2
	case !isColorHint:
		hintType = 2
	default:
		hintType = 3
	}

	sum := hat.New(total, offset+hintType)
	hat.UpdateFromHatSum(p, p.snap, &view.Board, hinter, p.me, view.OtherHands(), p.numPlayers, total, sum)
}
