// Package minimax picks optimal tic-tac-toe moves by exhaustive game-tree search.
package minimax

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	ScoreWin  = 1
	ScoreLoss = -1
	ScoreDraw = 0
)

// ScoredMove - a legal move with its minimax value for the side that plays it.
type ScoredMove struct {
	Move  entity.Move `json:"move"`
	Score int         `json:"score"`
}

// BestMove - returns the optimal move for side. Among equal scores the first move in row-major order wins.
// Scores carry no depth, so an immediate win is not preferred over an earlier move that forces a win later.
func BestMove(board entity.Board, side entity.Mark) (entity.Move, error) {
	scored, err := MoveValues(board, side)
	if err != nil {
		return entity.Move{}, err
	}

	best := scored[0]
	for _, candidate := range scored[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	return best.Move, nil
}

// MoveValues - scores every legal move for side, in row-major order.
func MoveValues(board entity.Board, side entity.Mark) ([]ScoredMove, error) {
	if !side.IsPlayer() {
		return nil, fmt.Errorf("%w: side to move must be X or O", entity.ErrInvalidMark)
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return nil, apperror.ErrNoLegalMove
	}

	scored := make([]ScoredMove, 0, len(moves))
	for _, move := range moves {
		next, err := board.Place(move, side)
		if err != nil {
			return nil, fmt.Errorf("failed to place %s at %s: %w", side, move, err)
		}

		scored = append(scored, ScoredMove{
			Move:  move,
			Score: Value(next, side.Opponent(), side),
		})
	}

	return scored, nil
}

// Value - minimax value of board with toMove to play, seen from maximizer.
func Value(board entity.Board, toMove, maximizer entity.Mark) int {
	switch board.Winner() {
	case maximizer:
		return ScoreWin
	case maximizer.Opponent():
		return ScoreLoss
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return ScoreDraw
	}

	maximizing := toMove == maximizer

	best := ScoreWin + 1
	if maximizing {
		best = ScoreLoss - 1
	}

	for _, move := range moves {
		// board is a value, so the child is a private copy
		child := board
		child[move.Index()] = toMove

		score := Value(child, toMove.Opponent(), maximizer)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
