package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrIllegalMove  = errors.New("illegal move")
	ErrNoLegalMove  = errors.New("no legal moves left")
)
