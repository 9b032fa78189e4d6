package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const (
	actionBoardState = "board:state"
	actionGameMove   = "game:move"
	actionGameTap    = "game:tap"
	actionGameUndo   = "game:undo"
	actionGameReset  = "game:reset"
	actionGameDecide = "game:decide"
	actionError      = "error"
)

const (
	errMalformedMessage = "malformed message"
	errUnknownAction    = "unknown action"
	errInvalidPayload   = "invalid payload"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ResponsePayload is sent back for every action.
type ResponsePayload struct {
	Snapshot entity.Snapshot    `json:"snapshot"`
	Result   *entity.MoveResult `json:"result,omitempty"`
	Error    string             `json:"error,omitempty"`
}

type movePayload struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type tapPayload struct {
	PX          float64 `json:"px"`
	PY          float64 `json:"py"`
	BoardPixels int     `json:"board_pixels,omitempty"`
}

type decidePayload struct {
	Choice usecase.Decision `json:"choice"`
}
