// Package trace renders a finished game as the JSON replay format
// consumed by external Hanabi viewers: the exact schema from spec.md §6,
// one object per game, keyed by the game's seed.
package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/card"
	"github.com/vctt94/hanasim/internal/hanabi"
)

// cardJSON is one deck/hand card: {rank, suit}, suit a canonical color
// index (see card.Colors).
type cardJSON struct {
	Rank int `json:"rank"`
	Suit int `json:"suit"`
}

func toCardJSON(c card.Card) cardJSON {
	return cardJSON{Rank: int(c.Value), Suit: int(c.Color)}
}

// clueJSON is a hint's payload: type 0 is a value clue, type 1 a color
// clue; value holds either the literal value or the color's canonical
// index.
type clueJSON struct {
	Type  int `json:"type"`
	Value int `json:"value"`
}

// actionJSON is one logged move. type 0 = hint, 1 = play, 2 = discard.
type actionJSON struct {
	Type   int       `json:"type"`
	Target int       `json:"target"`
	Clue   *clueJSON `json:"clue,omitempty"`
}

// Trace is the full per-game JSON document.
type Trace struct {
	Variant     string          `json:"variant"`
	Players     []string        `json:"players"`
	FirstPlayer int             `json:"first_player"`
	Notes       [][]string      `json:"notes"`
	Deck        []cardJSON      `json:"deck"`
	Actions     []actionJSON    `json:"actions"`
}

// FromGame builds a Trace from a finished (or in-progress) game's public
// log and initial deck. The deck is emitted in draw order (reversed from
// internal storage, which pops from the end — see spec.md §6).
func FromGame(g *hanabi.Game) Trace {
	opts := g.Options()

	players := make([]string, opts.NumPlayers)
	notes := make([][]string, opts.NumPlayers)
	for i := range players {
		players[i] = fmt.Sprintf("Player %d", i)
		notes[i] = []string{}
	}

	initial := g.InitialDeck()
	deck := make([]cardJSON, len(initial))
	for i, c := range initial {
		deck[len(initial)-1-i] = toCardJSON(c)
	}

	actions := make([]actionJSON, 0, len(g.Board.Log))
	for _, rec := range g.Board.Log {
		actions = append(actions, toActionJSON(rec))
	}

	return Trace{
		Variant:     "No Variant",
		Players:     players,
		FirstPlayer: 0,
		Notes:       notes,
		Deck:        deck,
		Actions:     actions,
	}
}

func toActionJSON(rec board.TurnRecord) actionJSON {
	switch rec.Choice.Kind {
	case board.ChoiceHint:
		clue := clueJSON{Type: 0, Value: int(rec.Choice.Hinted.Value)}
		if rec.Choice.Hinted.IsColor {
			clue = clueJSON{Type: 1, Value: int(rec.Choice.Hinted.Color)}
		}
		return actionJSON{Type: 0, Target: rec.Choice.Target, Clue: &clue}
	case board.ChoicePlay:
		return actionJSON{Type: 1, Target: rec.Choice.Slot}
	case board.ChoiceDiscard:
		return actionJSON{Type: 2, Target: rec.Choice.Slot}
	default:
		panic(fmt.Sprintf("trace: unknown choice kind %d", rec.Choice.Kind))
	}
}

// Marshal renders t as indentless JSON, matching the compact per-game
// files the simulator writes one of per trial.
func Marshal(t Trace) ([]byte, error) {
	return json.Marshal(t)
}

// Path substitutes seed into pattern wherever "%s" appears, mirroring the
// CLI's `-j PATTERN` flag (spec.md §6).
func Path(pattern string, seed int64) string {
	return strings.ReplaceAll(pattern, "%s", strconv.FormatInt(seed, 10))
}
