package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/tui"
)

// main - plays one human vs bot session in the terminal.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	conf := config.MustLoad("config.yml")

	logOut, closeLog, err := openLog(conf.TUI.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: config.ParseLogLevel(conf.LogLevel)}))

	humanMark, err := entity.ParseMark(conf.Game.HumanMark)
	if err != nil {
		return fmt.Errorf("invalid human mark: %w", err)
	}

	manager := usecase.NewGameManager(
		logger,
		service.NewGameService(repository.NewMemoryGameRepository()),
		service.NewBotService(),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}

	if err = screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return tui.New(logger, screen, manager, humanMark, conf.Game.BotDelay).Run(ctx)
}

// openLog - the terminal belongs to the board, so logs go to a file or nowhere.
func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, func() { _ = file.Close() }, nil
}
