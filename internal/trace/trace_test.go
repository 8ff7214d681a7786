package trace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vctt94/hanasim/internal/board"
	"github.com/vctt94/hanasim/internal/hanabi"
)

func TestFromGameDeckIsReversedDrawOrder(t *testing.T) {
	opts, err := hanabi.DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := hanabi.NewGame(opts, 5)
	require.NoError(t, err)

	tr := FromGame(g)
	initial := g.InitialDeck()
	require.Len(t, tr.Deck, len(initial))
	require.Equal(t, toCardJSON(initial[len(initial)-1]), tr.Deck[0])
	require.Equal(t, toCardJSON(initial[0]), tr.Deck[len(initial)-1])
}

func TestFromGameEncodesEveryActionKind(t *testing.T) {
	opts, err := hanabi.DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := hanabi.NewGame(opts, 5)
	require.NoError(t, err)

	hintedValue := g.Hands[1][0].Value
	_, err = g.Apply(board.Hint(1, board.HintValue(hintedValue)))
	require.NoError(t, err)
	_, err = g.Apply(board.Discard(0))
	require.NoError(t, err)
	_, err = g.Apply(board.Play(0))
	require.NoError(t, err)

	tr := FromGame(g)
	require.Len(t, tr.Actions, 3)

	require.Equal(t, 0, tr.Actions[0].Type)
	require.NotNil(t, tr.Actions[0].Clue)
	require.Equal(t, 0, tr.Actions[0].Clue.Type)
	require.Equal(t, int(hintedValue), tr.Actions[0].Clue.Value)

	require.Equal(t, 2, tr.Actions[1].Type)
	require.Equal(t, 1, tr.Actions[2].Type)
}

func TestFromGameColorClueUsesCanonicalIndex(t *testing.T) {
	opts, err := hanabi.DefaultGameOptions(2)
	require.NoError(t, err)
	g, err := hanabi.NewGame(opts, 9)
	require.NoError(t, err)

	target := g.Board.PlayerToLeft(g.Board.CurrentPlayer)
	hand := g.Hands[target]
	_, err = g.Apply(board.Hint(target, board.HintColor(hand[0].Color)))
	require.NoError(t, err)

	tr := FromGame(g)
	require.Equal(t, 1, tr.Actions[0].Clue.Type)
	require.Equal(t, int(hand[0].Color), tr.Actions[0].Clue.Value)
}

func TestMarshalProducesValidJSONWithFixedSchemaKeys(t *testing.T) {
	opts, err := hanabi.DefaultGameOptions(3)
	require.NoError(t, err)
	g, err := hanabi.NewGame(opts, 3)
	require.NoError(t, err)

	tr := FromGame(g)
	data, err := Marshal(tr)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "No Variant", decoded["variant"])
	require.Equal(t, float64(0), decoded["first_player"])
	require.Contains(t, decoded, "deck")
	require.Contains(t, decoded, "actions")
	require.Contains(t, decoded, "players")
	require.Contains(t, decoded, "notes")
}

func TestPathSubstitutesSeed(t *testing.T) {
	require.Equal(t, "traces/42.json", Path("traces/%s.json", 42))
}
