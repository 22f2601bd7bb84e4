package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var errStorageIsFull = errors.New("storage is full")

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and stores a game with a UUID", func(t *testing.T) {
		// Given: a repository that accepts writes
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: a game is created for a human playing X
		game, err := NewGameService(repo).CreateGame(ctx, entity.MarkX)

		// Then: the game is stored and waiting for X
		require.NoError(t, err)
		_, parseErr := uuid.Parse(game.ID)
		require.NoError(t, parseErr)
		assert.Equal(t, entity.StatusNotStarted, game.Status)
		assert.Equal(t, entity.MarkO, game.BotMark)
		repo.AssertExpectations(t)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", ctx, mock.Anything).Return(errStorageIsFull).Once()

		game, err := NewGameService(repo).CreateGame(ctx, entity.MarkX)

		require.ErrorIs(t, err, errStorageIsFull)
		assert.Nil(t, game)
	})

	t.Run("Rejects an empty human mark", func(t *testing.T) {
		repo := &mockGameRepo{}

		_, err := NewGameService(repo).CreateGame(ctx, entity.Empty)

		require.ErrorIs(t, err, entity.ErrInvalidMark)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})
}

func TestGameService_GetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	stored := &entity.Game{ID: "g1", Status: entity.StatusInProgress}

	repo := &mockGameRepo{}
	repo.On("GetByID", ctx, "g1").Return(stored, nil).Once()
	repo.On("CreateOrUpdate", ctx, stored).Return(nil).Once()
	repo.On("DeleteByID", ctx, "g1").Return(errStorageIsFull).Once()

	svc := NewGameService(repo)

	game, err := svc.GetGameByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, stored, game)

	require.NoError(t, svc.UpdateGame(ctx, game))

	err = svc.DeleteGame(ctx, "g1")
	require.ErrorIs(t, err, errStorageIsFull)

	repo.AssertExpectations(t)
}
