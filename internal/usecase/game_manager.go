package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/layout"
)

// Decision is what the players choose once a game is won.
type Decision string

const (
	DecisionRestart Decision = "restart"
	DecisionView    Decision = "view"
)

type boardEngine interface {
	ApplyMove(x, y int) (entity.MoveResult, error)
	Undo() (entity.Point, bool)
	Reset()
	SetLocked(locked bool)
	Size() int
	Snapshot() entity.Snapshot
}

// GameManager owns the board of a running process and serializes every call into it.
type GameManager struct {
	logger *slog.Logger

	mu     sync.Mutex
	engine boardEngine

	winner           entity.Stone
	awaitingDecision bool
}

func NewGameManager(logger *slog.Logger, engine boardEngine) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		engine: engine,
	}
}

// Play - places the next stone at (x, y).
// Once a move wins, no move is accepted until the players decide what to do.
func (that *GameManager) Play(_ context.Context, x, y int) (entity.MoveResult, entity.Snapshot, error) {
	log := that.logger.With("method", "Play", "x", x, "y", y)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.awaitingDecision {
		log.Debug("move while a decision is pending")
		return entity.MoveResult{}, that.snapshot(), fmt.Errorf("failed make move: %w", apperror.ErrBoardLocked)
	}

	result, err := that.engine.ApplyMove(x, y)
	if err != nil {
		log.Debug("move rejected", "error", err)
		return result, that.snapshot(), fmt.Errorf("failed make move: %w", err)
	}

	if result.IsWin {
		that.winner = result.Color
		that.awaitingDecision = true
		log.Info("game won", "color", result.Color)
	}

	return result, that.snapshot(), nil
}

// Tap - plays the intersection under a pointer position on a board view of boardPixels.
func (that *GameManager) Tap(ctx context.Context, px, py float64, boardPixels int) (entity.MoveResult, entity.Snapshot, error) {
	point, ok := layout.Locate(px, py, boardPixels, that.size())
	if !ok {
		that.logger.Debug("tap missed the board", "method", "Tap", "px", px, "py", py, "board_pixels", boardPixels)
		return entity.MoveResult{}, that.Snapshot(ctx), fmt.Errorf("failed resolve tap: %w", apperror.ErrOutsideBoard)
	}

	return that.Play(ctx, point.X, point.Y)
}

// Decide - restarts the game or locks it for viewing after a win.
func (that *GameManager) Decide(_ context.Context, decision Decision) (entity.Snapshot, error) {
	log := that.logger.With("method", "Decide", "decision", decision)

	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.awaitingDecision {
		return that.snapshot(), apperror.ErrNoPendingDecision
	}

	switch decision {
	case DecisionRestart:
		that.engine.Reset()
		that.clearOutcome()
	case DecisionView:
		that.engine.SetLocked(true)
		that.awaitingDecision = false
	default:
		return that.snapshot(), fmt.Errorf("%w: %q", apperror.ErrUnknownDecision, decision)
	}

	log.Info("decision applied")

	return that.snapshot(), nil
}

// Undo - takes back the last move. Undoing a winning move reopens the game.
func (that *GameManager) Undo(_ context.Context) entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	point, ok := that.engine.Undo()
	if ok {
		that.clearOutcome()
		that.logger.Debug("move undone", "method", "Undo", "x", point.X, "y", point.Y)
	}

	return that.snapshot()
}

func (that *GameManager) Reset(_ context.Context) entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.engine.Reset()
	that.clearOutcome()
	that.logger.Info("board reset", "method", "Reset")

	return that.snapshot()
}

func (that *GameManager) Snapshot(_ context.Context) entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *GameManager) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.engine.Size()
}

func (that *GameManager) clearOutcome() {
	that.winner = entity.Empty
	that.awaitingDecision = false
}

// snapshot - must be called with mu held.
func (that *GameManager) snapshot() entity.Snapshot {
	snapshot := that.engine.Snapshot()
	snapshot.Winner = that.winner
	snapshot.AwaitingDecision = that.awaitingDecision

	return snapshot
}
