package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const maxWaitDuration = 30 * time.Second

// ViewPixels - board view size handed to transports under test, 40px between lines on a 15x15 board.
const ViewPixels = 640

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Engine *gomoku.Engine
	Game   *usecase.GameManager
}

// New - a fresh standard game for one test. The context is canceled when the test ends.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	level := slog.LevelWarn
	if testing.Verbose() {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	engine := gomoku.NewStandard()

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Engine: engine,
		Game:   usecase.NewGameManager(logger, engine),
	}
}

// PlayWin - black wins with a vertical five in column 7, white answers in column 0.
func (that *Suite) PlayWin(ctx context.Context) {
	that.Helper()

	for y := 7; y < 11; y++ {
		if _, _, err := that.Game.Play(ctx, 7, y); err != nil {
			that.Fatalf("black move failed: %v", err)
		}

		if _, _, err := that.Game.Play(ctx, 0, y); err != nil {
			that.Fatalf("white move failed: %v", err)
		}
	}

	result, _, err := that.Game.Play(ctx, 7, 11)
	if err != nil {
		that.Fatalf("winning move failed: %v", err)
	}

	if !result.IsWin {
		that.Fatalf("expected a win, got %+v", result)
	}
}
