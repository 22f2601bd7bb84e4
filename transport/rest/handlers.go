package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

type gameManager interface {
	NewGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, move entity.Move) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, id string) (*entity.Game, error)
	Hint(ctx context.Context, id string) (entity.Move, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type handlers struct {
	logger   *slog.Logger
	manager  gameManager
	botDelay time.Duration
}

type newGameRequest struct {
	HumanMark entity.Mark `json:"human_mark"`
}

type errorResponse struct {
	Error string       `json:"error"`
	Game  *entity.Game `json:"game,omitempty"`
}

func newHandlers(logger *slog.Logger, manager gameManager, botDelay time.Duration) *handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		manager:  manager,
		botDelay: botDelay,
	}
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	req := newGameRequest{HumanMark: entity.MarkX}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if req.HumanMark == entity.Empty {
		req.HumanMark = entity.MarkX
	}

	game, err := that.manager.NewGame(r.Context(), req.HumanMark)
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.manager.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// makeTurn - plays the human's move, waits botDelay, then lets the bot answer.
// Once the human move is saved the bot always replies, even if the request is canceled during the delay.
func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var move entity.Move
	if err := decodeBody(r, &move); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	game, err := that.manager.MakeTurn(ctx, id, move)
	if err != nil {
		that.writeError(w, r, err, game)
		return
	}

	if game.IsBotTurn() {
		if err = sleepContext(ctx, that.botDelay); err != nil {
			that.logger.Debug("turn request canceled during bot delay", "game_id", id, "error", err)
		}

		if game, err = that.manager.MakeBotTurn(context.WithoutCancel(ctx), id); err != nil {
			that.writeError(w, r, err, game)
			return
		}
	}

	writeJSON(w, http.StatusOK, game)
}

// botTurn - lets the bot answer a pending turn without a human move.
func (that *handlers) botTurn(w http.ResponseWriter, r *http.Request) {
	game, err := that.manager.MakeBotTurn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err, game)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) hint(w http.ResponseWriter, r *http.Request) {
	move, err := that.manager.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, move)
}

func (that *handlers) restart(w http.ResponseWriter, r *http.Request) {
	game, err := that.manager.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error, game *entity.Game) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNoLegalMove):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrInvalidMark):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Game: game})
}

func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
