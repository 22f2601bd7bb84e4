package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameService interface {
	CreateGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
	Hint(game *entity.Game) (entity.Move, error)
}

// GameManager - runs human vs bot sessions on top of the game and bot services.
type GameManager struct {
	logger *slog.Logger

	gameService gameService
	botService  botService
}

func NewGameManager(logger *slog.Logger, gameService gameService, botService botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameService: gameService,
		botService:  botService,
	}
}

// NewGame - creates a session. When the bot owns X it opens right away.
func (that *GameManager) NewGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.playBot(ctx, game); err != nil {
			return nil, err
		}
	}

	that.logger.Info("game created", "game_id", game.ID, "human_mark", game.HumanMark.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human's move. A rejected move returns the unchanged game with the error.
func (that *GameManager) MakeTurn(ctx context.Context, id string, move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(game.HumanMark, move); err != nil {
		log.Debug("human move rejected", "move", move.String(), "error", err)
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logFinished(game)

	return game, nil
}

// MakeBotTurn - the bot's reply. Callers insert their own delay before calling it.
func (that *GameManager) MakeBotTurn(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = that.playBot(ctx, game); err != nil {
		return game, err
	}

	that.logFinished(game)

	return game, nil
}

// Hint - the best move for the human on the current board.
func (that *GameManager) Hint(ctx context.Context, id string) (entity.Move, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return entity.Move{}, err
	}

	move, err := that.botService.Hint(game)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to get hint: %w", err)
	}

	return move, nil
}

// Restart - wipes the board, keeping the session and the marks.
func (that *GameManager) Restart(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Restart()

	if game.IsBotTurn() {
		if err = that.playBot(ctx, game); err != nil {
			return nil, err
		}
	} else if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game restarted", "game_id", game.ID)

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameService.DeleteGame(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "game_id", id)

	return nil
}

func (that *GameManager) playBot(ctx context.Context, game *entity.Game) error {
	move, err := that.botService.MakeTurn(game)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot played", "game_id", game.ID, "move", move.String())

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) logFinished(game *entity.Game) {
	if game.IsFinished() {
		that.logger.Info("game finished", "game_id", game.ID, "status", string(game.Status))
	}
}
