// Package tui draws the game board in a terminal and lets a human play the bot with keys or the mouse.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	title = "Smart Tic-Tac-Toe with Minimax AI"

	msgStart    = "Your Turn! Click any cell to start."
	msgYourTurn = "Your turn! Make your move."
	msgThinking = "AI is thinking..."
	msgTaken    = "Cell already taken! Try another cell."
	msgWon      = "Congratulations! You won!"
	msgLost     = "AI wins! Better luck next time!"
	msgDraw     = "It's a draw! Good game!"

	helpLine = "arrows/1-9 select, enter/space play, r restart, q quit"

	titleY   = 0
	statusY  = 2
	boardX   = 2
	boardY   = 4
	cellW    = 4
	cellH    = 2
	buttonsY = boardY + entity.BoardSize*cellH + 1
	helpY    = buttonsY + 2

	restartLabel = "[Restart]"
	quitLabel    = "[Quit]"
	restartX     = boardX
	quitX        = restartX + len(restartLabel) + 2
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorNavy).Bold(true)
	styleX       = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleO       = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleGood    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWarn    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleBad     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDraw    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleButton  = tcell.StyleDefault.Reverse(true)
)

type gameManager interface {
	NewGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, move entity.Move) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, id string) (*entity.Game, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
}

// botTurnEvent - scheduled bot reply. Events from an earlier generation are stale after a restart.
type botTurnEvent struct {
	generation int
}

type quitEvent struct{}

// UI - a single game session drawn on a tcell screen. All fields are owned by the event loop.
type UI struct {
	logger    *slog.Logger
	screen    tcell.Screen
	manager   gameManager
	humanMark entity.Mark
	botDelay  time.Duration

	game        *entity.Game
	cursor      entity.Move
	status      string
	statusStyle tcell.Style
	thinking    bool
	generation  int
	lastButtons tcell.ButtonMask
}

func New(logger *slog.Logger, screen tcell.Screen, manager gameManager, humanMark entity.Mark, botDelay time.Duration) *UI {
	return &UI{
		logger:    logger.With("component", "tui"),
		screen:    screen,
		manager:   manager,
		humanMark: humanMark,
		botDelay:  botDelay,
		cursor:    entity.Move{Row: 1, Col: 1},
	}
}

// Run - starts a game and processes events until the user quits or ctx is canceled.
// The screen must already be initialized.
func (that *UI) Run(ctx context.Context) error {
	if err := that.start(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = that.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
		case <-done:
		}
	}()

	for {
		ev := that.screen.PollEvent()
		if ev == nil {
			return nil
		}

		if that.handleEvent(ctx, ev) {
			return nil
		}
	}
}

func (that *UI) start(ctx context.Context) error {
	game, err := that.manager.NewGame(ctx, that.humanMark)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.game = game
	that.setStatus(msgStart, styleGood)
	that.draw()

	return nil
}

// handleEvent - returns true when the UI should exit.
func (that *UI) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		that.screen.Sync()
	case *tcell.EventKey:
		if that.handleKey(ctx, ev) {
			return true
		}
	case *tcell.EventMouse:
		if that.handleMouse(ctx, ev) {
			return true
		}
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case quitEvent:
			return true
		case botTurnEvent:
			if data.generation == that.generation {
				that.botTurn(ctx)
			}
		}
	}

	that.draw()

	return false
}

func (that *UI) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		that.moveCursor(-1, 0)
	case tcell.KeyDown:
		that.moveCursor(1, 0)
	case tcell.KeyLeft:
		that.moveCursor(0, -1)
	case tcell.KeyRight:
		that.moveCursor(0, 1)
	case tcell.KeyEnter:
		that.play(ctx, that.cursor)
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q' || r == 'Q':
			return true
		case r == 'r' || r == 'R':
			that.restart(ctx)
		case r == ' ':
			that.play(ctx, that.cursor)
		case r >= '1' && r <= '9':
			that.cursor = entity.MoveFromIndex(int(r - '1'))
			that.play(ctx, that.cursor)
		}
	}

	return false
}

func (that *UI) handleMouse(ctx context.Context, ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && that.lastButtons&tcell.Button1 == 0
	that.lastButtons = buttons

	if !pressed {
		return false
	}

	x, y := ev.Position()

	if y == buttonsY {
		switch {
		case x >= restartX && x < restartX+len(restartLabel):
			that.restart(ctx)
		case x >= quitX && x < quitX+len(quitLabel):
			return true
		}

		return false
	}

	if move, ok := cellAt(x, y); ok {
		that.cursor = move
		that.play(ctx, move)
	}

	return false
}

// cellAt - maps screen coordinates to a board cell, skipping the grid lines.
func cellAt(x, y int) (entity.Move, bool) {
	dx, dy := x-boardX, y-boardY
	if dx < 0 || dy < 0 || dy%cellH != 0 || dx%cellW == cellW-1 {
		return entity.Move{}, false
	}

	move := entity.Move{Row: dy / cellH, Col: dx / cellW}

	return move, move.InRange()
}

func (that *UI) moveCursor(dRow, dCol int) {
	that.cursor.Row = (that.cursor.Row + dRow + entity.BoardSize) % entity.BoardSize
	that.cursor.Col = (that.cursor.Col + dCol + entity.BoardSize) % entity.BoardSize
}

// play - the human's move, ignored while the game is over or the bot is thinking.
func (that *UI) play(ctx context.Context, move entity.Move) {
	if that.thinking || that.game.IsFinished() {
		return
	}

	game, err := that.manager.MakeTurn(ctx, that.game.ID, move)
	if err != nil {
		if errors.Is(err, apperror.ErrIllegalMove) {
			that.setStatus(msgTaken, styleWarn)
			return
		}

		that.fail("human turn failed", err)

		return
	}

	that.game = game

	if that.showResult() {
		return
	}

	that.setStatus(msgThinking, styleWarn)
	that.thinking = true
	that.scheduleBotTurn(ctx)
}

func (that *UI) scheduleBotTurn(ctx context.Context) {
	if that.botDelay <= 0 {
		that.botTurn(ctx)
		return
	}

	event := botTurnEvent{generation: that.generation}
	time.AfterFunc(that.botDelay, func() {
		_ = that.screen.PostEvent(tcell.NewEventInterrupt(event))
	})
}

func (that *UI) botTurn(ctx context.Context) {
	if !that.thinking {
		return
	}

	that.thinking = false

	game, err := that.manager.MakeBotTurn(ctx, that.game.ID)
	if err != nil {
		that.fail("bot turn failed", err)
		return
	}

	that.game = game

	if !that.showResult() {
		that.setStatus(msgYourTurn, styleGood)
	}
}

func (that *UI) restart(ctx context.Context) {
	game, err := that.manager.Restart(ctx, that.game.ID)
	if err != nil {
		that.fail("restart failed", err)
		return
	}

	that.game = game
	that.thinking = false
	that.generation++
	that.setStatus(msgStart, styleGood)
}

// showResult - sets the final message and reports whether the game is over.
func (that *UI) showResult() bool {
	switch that.game.Status {
	case entity.StatusWonByX, entity.StatusWonByO:
		if that.game.Winner == that.game.HumanMark {
			that.setStatus(msgWon, styleGood)
		} else {
			that.setStatus(msgLost, styleBad)
		}
	case entity.StatusDrawn:
		that.setStatus(msgDraw, styleDraw)
	default:
		return false
	}

	return true
}

func (that *UI) fail(msg string, err error) {
	that.logger.Error(msg, "error", err)
	that.thinking = false
	that.setStatus("Error: "+err.Error(), styleBad)
}

func (that *UI) setStatus(msg string, style tcell.Style) {
	that.status = msg
	that.statusStyle = style
}

func (that *UI) draw() {
	that.screen.Clear()

	that.drawText(0, titleY, title, styleTitle)
	that.drawText(0, statusY, that.status, that.statusStyle)

	for row := 0; row < entity.BoardSize; row++ {
		y := boardY + row*cellH

		for col := 0; col < entity.BoardSize; col++ {
			x := boardX + col*cellW
			move := entity.Move{Row: row, Col: col}

			that.drawCell(x, y, move)

			if col < entity.BoardSize-1 {
				that.screen.SetContent(x+cellW-1, y, '|', nil, styleDefault)
			}
		}

		if row < entity.BoardSize-1 {
			that.drawText(boardX, y+1, "---+---+---", styleDefault)
		}
	}

	that.drawText(restartX, buttonsY, restartLabel, styleButton)
	that.drawText(quitX, buttonsY, quitLabel, styleButton)
	that.drawText(0, helpY, helpLine, styleDefault)

	that.screen.Show()
}

func (that *UI) drawCell(x, y int, move entity.Move) {
	mark := that.game.Board.At(move)

	style := styleDefault
	switch mark {
	case entity.MarkX:
		style = styleX
	case entity.MarkO:
		style = styleO
	}

	if move == that.cursor && !that.game.IsFinished() {
		style = style.Reverse(true)
	}

	symbol := ' '
	if mark != entity.Empty {
		symbol = []rune(mark.String())[0]
	}

	that.screen.SetContent(x, y, ' ', nil, style)
	that.screen.SetContent(x+1, y, symbol, nil, style)
	that.screen.SetContent(x+2, y, ' ', nil, style)
}

func (that *UI) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		that.screen.SetContent(x+i, y, r, nil, style)
	}
}
