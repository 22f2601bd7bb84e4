package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip", func(t *testing.T) {
		// Given: a stored game
		repo := NewMemoryGameRepository()
		game := newStoredGame(t)
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		// When: it is read back
		retrieved, err := repo.GetByID(ctx, game.ID)

		// Then: an equal copy is returned
		require.NoError(t, err)
		assert.Equal(t, game, retrieved)
	})

	t.Run("Stored games are copies", func(t *testing.T) {
		// Given: a stored game
		repo := NewMemoryGameRepository()
		game := newStoredGame(t)
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		// When: the caller changes its value and the one it read back
		game.Restart()
		retrieved, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		require.NoError(t, retrieved.MakeTurn(entity.MarkO, entity.Move{Row: 0, Col: 0}))

		// Then: the stored session is unaffected
		again, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, again.Board.At(entity.Move{Row: 1, Col: 1}))
		assert.Equal(t, entity.Empty, again.Board.At(entity.Move{Row: 0, Col: 0}))
	})

	t.Run("Missing game", func(t *testing.T) {
		repo := NewMemoryGameRepository()

		_, err := repo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, ErrGameNotFound)

		err = repo.DeleteByID(ctx, "nope")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewMemoryGameRepository()
		game := newStoredGame(t)
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		require.NoError(t, repo.DeleteByID(ctx, game.ID))

		_, err := repo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
