package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusWonByX     Status = "won_by_x"
	StatusWonByO     Status = "won_by_o"
	StatusDrawn      Status = "drawn"
)

// Game - a single human vs bot session.
type Game struct {
	ID        string `json:"id"`
	Board     Board  `json:"board"`
	Turn      Mark   `json:"player_turn"`
	Status    Status `json:"status"`
	Winner    Mark   `json:"winner"`
	HumanMark Mark   `json:"human_mark"`
	BotMark   Mark   `json:"bot_mark"`
}

// NewGame - creates a session with an empty board and X to move. The bot takes the other mark.
func NewGame(id string, humanMark Mark) (*Game, error) {
	if !humanMark.IsPlayer() {
		return nil, fmt.Errorf("%w: human must play X or O", ErrInvalidMark)
	}

	return &Game{
		ID:        id,
		Turn:      MarkX,
		Status:    StatusNotStarted,
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
	}, nil
}

func (that *Game) Outcome() Outcome {
	return that.Board.Outcome()
}

// UpdateGameState - derives status and winner from the board.
func (that *Game) UpdateGameState() {
	switch that.Board.Outcome() {
	case WinX:
		that.Winner = MarkX
		that.Status = StatusWonByX
		that.Turn = Empty
	case WinO:
		that.Winner = MarkO
		that.Status = StatusWonByO
		that.Turn = Empty
	case Draw:
		that.Winner = Empty
		that.Status = StatusDrawn
		that.Turn = Empty
	default:
		that.Winner = Empty
		if that.Board == (Board{}) {
			that.Status = StatusNotStarted
		} else {
			that.Status = StatusInProgress
		}
	}
}

// MakeTurn - places mark at move if it is mark's turn and the move is legal.
// On error the session is left untouched.
func (that *Game) MakeTurn(mark Mark, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	board, err := that.Board.Place(move, mark)
	if err != nil {
		return err
	}

	that.Board = board
	that.Turn = mark.Opponent()

	that.UpdateGameState()

	return nil
}

// Restart - discards the board and returns the session to NotStarted.
func (that *Game) Restart() {
	that.Board = Board{}
	that.Turn = MarkX
	that.Winner = Empty
	that.Status = StatusNotStarted
}

func (that *Game) IsFinished() bool {
	switch that.Status {
	case StatusWonByX, StatusWonByO, StatusDrawn:
		return true
	default:
		return false
	}
}

func (that *Game) IsBotTurn() bool {
	return !that.IsFinished() && that.Turn == that.BotMark
}

func (that *Game) IsHumanTurn() bool {
	return !that.IsFinished() && that.Turn == that.HumanMark
}
