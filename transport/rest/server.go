package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter - routes of the board API. viewPixels is the board view size used for taps that do not send one.
func NewRouter(logger *slog.Logger, game gameManager, viewPixels int) http.Handler {
	h := &handlers{
		logger:     logger.With("component", "rest"),
		game:       game,
		viewPixels: viewPixels,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.ping)
	r.Route("/board", func(r chi.Router) {
		r.Get("/", h.board)
		r.Get("/text", h.boardText)
		r.Post("/move", h.move)
		r.Post("/tap", h.tap)
		r.Post("/undo", h.undo)
		r.Post("/reset", h.reset)
		r.Post("/decide", h.decide)
	})

	return r
}

// Start - serves handler until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
