package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const BoardSize = 3

// Mark - the content of a single cell.
type Mark uint8

const (
	Empty Mark = iota
	MarkX
	MarkO
)

// Outcome - the result of a board, recomputed on every query.
type Outcome uint8

const (
	InProgress Outcome = iota
	WinX
	WinO
	Draw
)

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrOutOfRange   = errors.New("cell is out of range")
	ErrInvalidMark  = errors.New("invalid mark")

	// WinCombos - rows, then columns, then diagonals.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

func (that Mark) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// Opponent - returns the other side. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

func (that Mark) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

// ParseMark - parses "X", "O" (any case) or "" into a Mark.
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return MarkX, nil
	case "O":
		return MarkO, nil
	case "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}

func (that Outcome) String() string {
	switch that {
	case WinX:
		return "win_x"
	case WinO:
		return "win_o"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Move - a (row, column) coordinate, both in [0, 2].
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Index - row-major cell index of an in-range move.
func (that Move) Index() int {
	return that.Row*BoardSize + that.Col
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// MoveFromIndex - converts a row-major cell index into a Move.
func MoveFromIndex(i int) Move {
	return Move{Row: i / BoardSize, Col: i % BoardSize}
}

// Board - 3x3 grid stored row-major. It is a plain value: copying it copies the grid.
type Board [BoardSize * BoardSize]Mark

// At - returns the mark at move, Empty for out of range coordinates.
func (that Board) At(move Move) Mark {
	if !move.InRange() {
		return Empty
	}

	return that[move.Index()]
}

// LegalMoves - every empty cell in row-major order.
func (that Board) LegalMoves() []Move {
	moves := make([]Move, 0, len(that))
	for i, cell := range that {
		if cell == Empty {
			moves = append(moves, MoveFromIndex(i))
		}
	}

	return moves
}

// Place - returns a copy of the board with mark written at move. The receiver is never modified.
func (that Board) Place(move Move, mark Mark) (Board, error) {
	if !mark.IsPlayer() {
		return that, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrInvalidMark)
	}

	if !move.InRange() {
		return that, fmt.Errorf("%w: %w: %s", apperror.ErrIllegalMove, ErrOutOfRange, move)
	}

	if that[move.Index()] != Empty {
		return that, fmt.Errorf("%w: %w: %s", apperror.ErrIllegalMove, ErrCellOccupied, move)
	}

	next := that
	next[move.Index()] = mark

	return next, nil
}

// Winner - mark of the first complete line, Empty when there is none.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// HasWon - checks whether mark owns a complete line.
func (that Board) HasWon(mark Mark) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that Board) IsDraw() bool {
	return that.IsFull() && that.Winner() == Empty
}

func (that Board) IsTerminal() bool {
	return that.Winner() != Empty || that.IsDraw()
}

func (that Board) Outcome() Outcome {
	switch that.Winner() {
	case MarkX:
		return WinX
	case MarkO:
		return WinO
	}

	if that.IsFull() {
		return Draw
	}

	return InProgress
}

// Count - number of cells holding mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}

	return n
}

// String - debug view, empty cells show their coordinates.
func (that Board) String() string {
	var sb strings.Builder

	for row := 0; row < BoardSize; row++ {
		cells := make([]string, 0, BoardSize)
		for col := 0; col < BoardSize; col++ {
			move := Move{Row: row, Col: col}
			if mark := that.At(move); mark != Empty {
				cells = append(cells, mark.String())
			} else {
				cells = append(cells, move.String())
			}
		}

		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")

		if row < BoardSize-1 {
			sb.WriteString(strings.Repeat("-", 15))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
