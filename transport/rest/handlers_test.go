package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
)

func newRouter(st *suite.Suite) http.Handler {
	return NewRouter(st.Logger, st.Game, suite.ViewPixels)
}

func do(t *testing.T, handler http.Handler, method, path, body string) (int, Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())

	return rr.Code, resp
}

func TestPing(t *testing.T) {
	_, st := suite.New(t)
	handler := newRouter(st)

	// When: /ping is requested
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// Then: pong is returned
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestBoard(t *testing.T) {
	t.Run("Empty board", func(t *testing.T) {
		// Given: a new game
		_, st := suite.New(t)
		handler := newRouter(st)

		// When: the board is requested
		code, resp := do(t, handler, http.MethodGet, "/board", "")

		// Then: an empty 15x15 board with black to move is returned
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, entity.DefaultBoardSize, resp.Snapshot.Size)
		assert.Len(t, resp.Snapshot.Board, entity.DefaultBoardSize)
		assert.Equal(t, entity.Black, resp.Snapshot.Turn)
		assert.Zero(t, resp.Snapshot.MoveCount)
	})

	t.Run("Text board", func(t *testing.T) {
		// Given: a game with a black stone at (0, 0)
		ctx, st := suite.New(t)
		handler := newRouter(st)
		_, _, err := st.Game.Play(ctx, 0, 0)
		require.NoError(t, err)

		// When: the text board is requested
		req := httptest.NewRequest(http.MethodGet, "/board/text", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		// Then: the first row starts with the black stone
		require.Equal(t, http.StatusOK, rr.Code)
		lines := strings.Split(strings.TrimSuffix(rr.Body.String(), "\n"), "\n")
		require.Len(t, lines, entity.DefaultBoardSize)
		assert.Equal(t, "X"+strings.Repeat(".", entity.DefaultBoardSize-1), lines[0])
	})
}

func TestMove(t *testing.T) {
	t.Run("Move is applied", func(t *testing.T) {
		// Given: a new game
		_, st := suite.New(t)
		handler := newRouter(st)

		// When: black plays (7, 7)
		code, resp := do(t, handler, http.MethodPost, "/board/move", `{"x":7,"y":7}`)

		// Then: the result and the snapshot show the stone
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, resp.Result)
		assert.True(t, resp.Result.Placed)
		assert.Equal(t, entity.Black, resp.Result.Color)
		assert.Equal(t, entity.Black, resp.Snapshot.At(7, 7))
		assert.Equal(t, entity.White, resp.Snapshot.Turn)
	})

	t.Run("Rejected moves", func(t *testing.T) {
		tests := []struct {
			name   string
			body   string
			status int
		}{
			{name: "Out of range", body: `{"x":15,"y":0}`, status: http.StatusUnprocessableEntity},
			{name: "Occupied", body: `{"x":1,"y":1}`, status: http.StatusUnprocessableEntity},
			{name: "Missing y", body: `{"x":1}`, status: http.StatusBadRequest},
			{name: "Broken body", body: `{`, status: http.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Given: a game with a black stone at (1, 1)
				ctx, st := suite.New(t)
				handler := newRouter(st)
				_, _, err := st.Game.Play(ctx, 1, 1)
				require.NoError(t, err)

				// When: the bad move is sent
				code, resp := do(t, handler, http.MethodPost, "/board/move", tt.body)

				// Then: the status matches and the board is unchanged
				assert.Equal(t, tt.status, code)
				assert.NotEmpty(t, resp.Error)
				assert.Equal(t, 1, resp.Snapshot.MoveCount)
			})
		}
	})

	t.Run("Winning move", func(t *testing.T) {
		// Given: black has four in column 7
		ctx, st := suite.New(t)
		handler := newRouter(st)
		for y := 7; y < 11; y++ {
			_, _, err := st.Game.Play(ctx, 7, y)
			require.NoError(t, err)
			_, _, err = st.Game.Play(ctx, 0, y)
			require.NoError(t, err)
		}

		// When: black plays (7, 11)
		code, resp := do(t, handler, http.MethodPost, "/board/move", `{"x":7,"y":11}`)

		// Then: the win is reported and a decision is awaited
		require.Equal(t, http.StatusOK, code)
		assert.True(t, resp.Result.IsWin)
		assert.Equal(t, entity.Black, resp.Snapshot.Winner)
		assert.True(t, resp.Snapshot.AwaitingDecision)
	})
}

func TestTap(t *testing.T) {
	t.Run("Tap with the default view size", func(t *testing.T) {
		// Given: a new game and a 640px view, so lines are 40px apart
		_, st := suite.New(t)
		handler := newRouter(st)

		// When: the player taps near the second line in both directions
		code, resp := do(t, handler, http.MethodPost, "/board/tap", `{"px":82,"py":78}`)

		// Then: the stone lands on (1, 1)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, entity.Point{X: 1, Y: 1}, resp.Result.Point)
	})

	t.Run("Tap on the margin", func(t *testing.T) {
		// Given: a new game
		_, st := suite.New(t)
		handler := newRouter(st)

		// When: the player taps the margin of a 320px view
		code, resp := do(t, handler, http.MethodPost, "/board/tap", `{"px":2,"py":2,"board_pixels":320}`)

		// Then: the tap is rejected
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.NotEmpty(t, resp.Error)
	})
}

func TestUndoResetDecide(t *testing.T) {
	t.Run("Undo", func(t *testing.T) {
		// Given: a game with two moves
		ctx, st := suite.New(t)
		handler := newRouter(st)
		_, _, err := st.Game.Play(ctx, 1, 1)
		require.NoError(t, err)
		_, _, err = st.Game.Play(ctx, 2, 2)
		require.NoError(t, err)

		// When: undo is requested
		code, resp := do(t, handler, http.MethodPost, "/board/undo", "")

		// Then: white's move is gone and white is to move again
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1, resp.Snapshot.MoveCount)
		assert.Equal(t, entity.White, resp.Snapshot.Turn)
		assert.Equal(t, entity.Empty, resp.Snapshot.At(2, 2))
	})

	t.Run("Reset", func(t *testing.T) {
		// Given: a won game
		ctx, st := suite.New(t)
		handler := newRouter(st)
		st.PlayWin(ctx)

		// When: reset is requested
		code, resp := do(t, handler, http.MethodPost, "/board/reset", "")

		// Then: the board is empty again
		require.Equal(t, http.StatusOK, code)
		assert.Zero(t, resp.Snapshot.MoveCount)
		assert.False(t, resp.Snapshot.IsFinished())
	})

	t.Run("View after a win", func(t *testing.T) {
		// Given: a won game
		ctx, st := suite.New(t)
		handler := newRouter(st)
		st.PlayWin(ctx)

		// When: the players choose to view the board
		code, resp := do(t, handler, http.MethodPost, "/board/decide", `{"choice":"view"}`)

		// Then: the board is locked
		require.Equal(t, http.StatusOK, code)
		assert.True(t, resp.Snapshot.Locked)
		assert.True(t, st.Engine.IsLocked())
	})

	t.Run("Decision without a win", func(t *testing.T) {
		// Given: a new game
		_, st := suite.New(t)
		handler := newRouter(st)

		// When: a decision is sent
		code, resp := do(t, handler, http.MethodPost, "/board/decide", `{"choice":"restart"}`)

		// Then: the request conflicts with the game state
		assert.Equal(t, http.StatusConflict, code)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("Unknown decision", func(t *testing.T) {
		// Given: a won game
		ctx, st := suite.New(t)
		handler := newRouter(st)
		st.PlayWin(ctx)

		// When: an unknown choice is sent
		code, _ := do(t, handler, http.MethodPost, "/board/decide", `{"choice":"rematch"}`)

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, code)
	})
}
