package websocket

import (
	"context"
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

func (that *Server) handleState(ctx context.Context, _ json.RawMessage) ResponsePayload {
	return ResponsePayload{Snapshot: that.game.Snapshot(ctx)}
}

func (that *Server) handleMove(ctx context.Context, payload json.RawMessage) ResponsePayload {
	var req movePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.X == nil || req.Y == nil {
		return that.invalidPayload(ctx)
	}

	return moveResponse(that.game.Play(ctx, *req.X, *req.Y))
}

func (that *Server) handleTap(ctx context.Context, payload json.RawMessage) ResponsePayload {
	var req tapPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return that.invalidPayload(ctx)
	}

	if req.BoardPixels == 0 {
		req.BoardPixels = that.viewPixels
	}

	return moveResponse(that.game.Tap(ctx, req.PX, req.PY, req.BoardPixels))
}

func (that *Server) handleUndo(ctx context.Context, _ json.RawMessage) ResponsePayload {
	return ResponsePayload{Snapshot: that.game.Undo(ctx)}
}

func (that *Server) handleReset(ctx context.Context, _ json.RawMessage) ResponsePayload {
	return ResponsePayload{Snapshot: that.game.Reset(ctx)}
}

func (that *Server) handleDecide(ctx context.Context, payload json.RawMessage) ResponsePayload {
	var req decidePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return that.invalidPayload(ctx)
	}

	snapshot, err := that.game.Decide(ctx, req.Choice)
	if err != nil {
		return ResponsePayload{Snapshot: snapshot, Error: err.Error()}
	}

	return ResponsePayload{Snapshot: snapshot}
}

func (that *Server) invalidPayload(ctx context.Context) ResponsePayload {
	return ResponsePayload{Snapshot: that.game.Snapshot(ctx), Error: errInvalidPayload}
}

func moveResponse(result entity.MoveResult, snapshot entity.Snapshot, err error) ResponsePayload {
	payload := ResponsePayload{Snapshot: snapshot, Result: &result}
	if err != nil {
		payload.Error = err.Error()
	}

	return payload
}
