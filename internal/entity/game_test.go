package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()

	game, err := NewGame("123", MarkX)
	require.NoError(t, err)

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Human X", func(t *testing.T) {
		// Given: a new game where the human plays X
		game := newTestGame(t)

		// Then: the game waits for X on an empty board
		expectedGame := &Game{
			ID:        "123",
			Turn:      MarkX,
			Status:    StatusNotStarted,
			HumanMark: MarkX,
			BotMark:   MarkO,
		}

		require.Equal(t, expectedGame, game)
		assert.True(t, game.IsHumanTurn())
		assert.False(t, game.IsBotTurn())
	})

	t.Run("Human O lets the bot open", func(t *testing.T) {
		game, err := NewGame("123", MarkO)

		require.NoError(t, err)
		assert.Equal(t, MarkX, game.BotMark)
		assert.True(t, game.IsBotTurn())
	})

	t.Run("Empty human mark is rejected", func(t *testing.T) {
		_, err := NewGame("123", Empty)

		require.ErrorIs(t, err, ErrInvalidMark)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful turn", func(t *testing.T) {
		// Given: a new game
		game := newTestGame(t)

		// When: X plays the center
		err := game.MakeTurn(MarkX, Move{Row: 1, Col: 1})
		require.NoError(t, err)

		// Then: the board holds the mark, the turn flips and the game is in progress
		expectedGame := &Game{
			ID:        "123",
			Board:     Board{e, e, e, e, x, e, e, e, e},
			Turn:      MarkO,
			Status:    StatusInProgress,
			HumanMark: MarkX,
			BotMark:   MarkO,
		}

		require.Equal(t, expectedGame, game)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X holds the center
		game := newTestGame(t)
		require.NoError(t, game.MakeTurn(MarkX, Move{Row: 1, Col: 1}))
		before := *game

		// When: O plays the same cell
		err := game.MakeTurn(MarkO, Move{Row: 1, Col: 1})

		// Then: the move is rejected and nothing changes
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, ErrCellOccupied)
		require.Equal(t, before, *game)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		game := newTestGame(t)

		err := game.MakeTurn(MarkO, Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, StatusNotStarted, game.Status)
	})

	t.Run("Win finishes the game", func(t *testing.T) {
		// Given: X is one move from the top row
		game := newTestGame(t)
		for _, step := range []struct {
			mark Mark
			move Move
		}{
			{MarkX, Move{0, 0}},
			{MarkO, Move{1, 0}},
			{MarkX, Move{0, 1}},
			{MarkO, Move{1, 1}},
		} {
			require.NoError(t, game.MakeTurn(step.mark, step.move))
		}

		// When: X completes the row
		require.NoError(t, game.MakeTurn(MarkX, Move{0, 2}))

		// Then: the game is won by X and no further turns are accepted
		assert.Equal(t, StatusWonByX, game.Status)
		assert.Equal(t, MarkX, game.Winner)
		assert.Equal(t, Empty, game.Turn)
		assert.True(t, game.IsFinished())

		err := game.MakeTurn(MarkO, Move{2, 2})
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Full board without a line is drawn", func(t *testing.T) {
		game := newTestGame(t)
		moves := []Move{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2}}

		mark := MarkX
		for _, move := range moves {
			require.NoError(t, game.MakeTurn(mark, move))
			mark = mark.Opponent()
		}

		assert.Equal(t, StatusDrawn, game.Status)
		assert.Equal(t, Draw, game.Outcome())
		assert.Equal(t, Empty, game.Winner)
	})
}

func TestGame_Restart(t *testing.T) {
	// Given: a finished game
	game := newTestGame(t)
	game.Board = Board{
		x, x, x,
		o, o, e,
		e, e, e,
	}
	game.UpdateGameState()
	require.Equal(t, StatusWonByX, game.Status)

	// When: the game is restarted
	game.Restart()

	// Then: the board is empty and the game is waiting for X
	assert.Equal(t, Board{}, game.Board)
	assert.Equal(t, StatusNotStarted, game.Status)
	assert.Equal(t, MarkX, game.Turn)
	assert.Equal(t, Empty, game.Winner)
	assert.Equal(t, MarkX, game.HumanMark)
	assert.Equal(t, MarkO, game.BotMark)
}

func TestGame_JSON(t *testing.T) {
	// Given: a game in progress
	game := newTestGame(t)
	require.NoError(t, game.MakeTurn(MarkX, Move{0, 0}))

	// When: it is encoded
	data, err := json.Marshal(game)
	require.NoError(t, err)

	// Then: marks are written as text and decode back
	assert.Contains(t, string(data), `"board":["X","","","","","","","",""]`)
	assert.Contains(t, string(data), `"player_turn":"O"`)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *game, decoded)
}
