package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func TestBotService_MakeTurn(t *testing.T) {
	bot := NewBotService()

	t.Run("Bot blocks the human", func(t *testing.T) {
		// Given: the human (X) threatens the top row and it is the bot's turn
		game, err := entity.NewGame("g1", entity.MarkX)
		require.NoError(t, err)
		require.NoError(t, game.MakeTurn(entity.MarkX, entity.Move{Row: 0, Col: 0}))
		require.NoError(t, game.MakeTurn(entity.MarkO, entity.Move{Row: 1, Col: 1}))
		require.NoError(t, game.MakeTurn(entity.MarkX, entity.Move{Row: 0, Col: 1}))

		// When: the bot makes its turn
		move, err := bot.MakeTurn(game)

		// Then: it plays the block and hands the turn back
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
		assert.Equal(t, entity.MarkO, game.Board.At(move))
		assert.Equal(t, entity.MarkX, game.Turn)
	})

	t.Run("Bot opens when it plays X", func(t *testing.T) {
		game, err := entity.NewGame("g2", entity.MarkO)
		require.NoError(t, err)

		move, err := bot.MakeTurn(game)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
		assert.Equal(t, entity.StatusInProgress, game.Status)
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Error when it is the human's turn", func(t *testing.T) {
		game, err := entity.NewGame("g3", entity.MarkX)
		require.NoError(t, err)

		_, err = bot.MakeTurn(game)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.Board{}, game.Board)
	})

	t.Run("Error when the game is finished", func(t *testing.T) {
		game, err := entity.NewGame("g4", entity.MarkX)
		require.NoError(t, err)
		game.Board = entity.Board{
			entity.MarkX, entity.MarkX, entity.MarkX,
			entity.MarkO, entity.MarkO,
		}
		game.UpdateGameState()

		_, err = bot.MakeTurn(game)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestBotService_Hint(t *testing.T) {
	// Given: the human (X) can win on (0,2)
	game, err := entity.NewGame("g5", entity.MarkX)
	require.NoError(t, err)
	game.Board = entity.Board{
		entity.MarkX, entity.MarkX, entity.Empty,
		entity.MarkO, entity.MarkO, entity.Empty,
	}
	game.Turn = entity.MarkX
	game.UpdateGameState()

	// When: asking for a hint
	move, err := NewBotService().Hint(game)

	// Then: the winning cell is suggested and the board is untouched
	require.NoError(t, err)
	assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	assert.Equal(t, entity.Empty, game.Board.At(move))
}
