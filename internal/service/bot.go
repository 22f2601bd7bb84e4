package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

type BotService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
	Hint(game *entity.Game) (entity.Move, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn - plays the optimal move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) (entity.Move, error) {
	if game.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	if !game.IsBotTurn() {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	move, err := minimax.BestMove(game.Board, game.BotMark)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to find bot move: %w", err)
	}

	if err = game.MakeTurn(game.BotMark, move); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return move, nil
}

// Hint - the move the bot would play in the human's place.
func (that *botService) Hint(game *entity.Game) (entity.Move, error) {
	if game.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	move, err := minimax.BestMove(game.Board, game.HumanMark)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to find hint: %w", err)
	}

	return move, nil
}
