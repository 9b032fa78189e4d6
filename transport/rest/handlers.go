package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/layout"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

type gameManager interface {
	Play(ctx context.Context, x, y int) (entity.MoveResult, entity.Snapshot, error)
	Tap(ctx context.Context, px, py float64, boardPixels int) (entity.MoveResult, entity.Snapshot, error)
	Decide(ctx context.Context, decision usecase.Decision) (entity.Snapshot, error)
	Undo(ctx context.Context) entity.Snapshot
	Reset(ctx context.Context) entity.Snapshot
	Snapshot(ctx context.Context) entity.Snapshot
}

type moveRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type tapRequest struct {
	PX          float64 `json:"px"`
	PY          float64 `json:"py"`
	BoardPixels int     `json:"board_pixels,omitempty"`
}

type decideRequest struct {
	Choice usecase.Decision `json:"choice"`
}

// Response is the body of every board endpoint.
type Response struct {
	Snapshot entity.Snapshot    `json:"snapshot"`
	Result   *entity.MoveResult `json:"result,omitempty"`
	Error    string             `json:"error,omitempty"`
}

type handlers struct {
	logger     *slog.Logger
	game       gameManager
	viewPixels int
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) board(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, Response{Snapshot: that.game.Snapshot(r.Context())})
}

func (that *handlers) boardText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(layout.RenderText(that.game.Snapshot(r.Context()))))
}

func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.X == nil || req.Y == nil {
		that.writeError(w, r, http.StatusBadRequest, "x and y are required")
		return
	}

	result, snapshot, err := that.game.Play(r.Context(), *req.X, *req.Y)
	that.writeMove(w, result, snapshot, err)
}

func (that *handlers) tap(w http.ResponseWriter, r *http.Request) {
	var req tapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, r, http.StatusBadRequest, "invalid tap")
		return
	}

	if req.BoardPixels == 0 {
		req.BoardPixels = that.viewPixels
	}

	result, snapshot, err := that.game.Tap(r.Context(), req.PX, req.PY, req.BoardPixels)
	that.writeMove(w, result, snapshot, err)
}

func (that *handlers) undo(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, Response{Snapshot: that.game.Undo(r.Context())})
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, Response{Snapshot: that.game.Reset(r.Context())})
}

func (that *handlers) decide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, r, http.StatusBadRequest, "invalid decision")
		return
	}

	snapshot, err := that.game.Decide(r.Context(), req.Choice)
	if err != nil {
		that.writeJSON(w, statusFor(err), Response{Snapshot: snapshot, Error: err.Error()})
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Snapshot: snapshot})
}

func (that *handlers) writeMove(w http.ResponseWriter, result entity.MoveResult, snapshot entity.Snapshot, err error) {
	if err != nil {
		that.writeJSON(w, statusFor(err), Response{Snapshot: snapshot, Result: &result, Error: err.Error()})
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Snapshot: snapshot, Result: &result})
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	that.writeJSON(w, status, Response{Snapshot: that.game.Snapshot(r.Context()), Error: message})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

// statusFor - maps game errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCoordinate),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrBoardLocked),
		errors.Is(err, apperror.ErrOutsideBoard):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrNoPendingDecision):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrUnknownDecision):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
