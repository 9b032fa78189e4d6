package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
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

type handlerFunc func(ctx context.Context, payload json.RawMessage) ResponsePayload

type Server struct {
	logger     *slog.Logger
	game       gameManager
	viewPixels int

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

// New - viewPixels is the board view size used for taps that do not send one.
func New(logger *slog.Logger, game gameManager, viewPixels int) *Server {
	server := &Server{
		logger:     logger.With("component", "websocket"),
		game:       game,
		viewPixels: viewPixels,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionBoardState] = server.handleState
	server.handlers[actionGameMove] = server.handleMove
	server.handlers[actionGameTap] = server.handleTap
	server.handlers[actionGameUndo] = server.handleUndo
	server.handlers[actionGameReset] = server.handleReset
	server.handlers[actionGameDecide] = server.handleDecide

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
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

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection", "client", uuid.NewString())

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn, log); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, log *slog.Logger) error {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("failed to read message: %w", err)
			}

			return nil
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Debug("malformed message", "error", err)
			if err = that.sendMessage(conn, actionError, ResponsePayload{Snapshot: that.game.Snapshot(ctx), Error: errMalformedMessage}); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			payload := ResponsePayload{Snapshot: that.game.Snapshot(ctx), Error: errUnknownAction}
			if err = that.sendMessage(conn, message.Action, payload); err != nil {
				return err
			}
			continue
		}

		if err = that.sendMessage(conn, message.Action, handler(ctx, message.Payload)); err != nil {
			return err
		}
	}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
