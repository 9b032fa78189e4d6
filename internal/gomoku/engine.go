package gomoku

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// winThreshold - both scans of a line start at the placed stone, so it is counted twice.
// Five in a row adds up to six.
const winThreshold = 5

var ErrInvalidBoardSize = errors.New("board size must be positive")

// direction is one half of a line through a cell, the opposite half is (-dx, -dy).
type direction struct {
	dx, dy int
}

var lines = [4]direction{
	{dx: 0, dy: 1}, // vertical
	{dx: 1, dy: 0}, // horizontal
	{dx: 1, dy: 1}, // top-left to bottom-right
	{dx: 1, dy: -1},
}

// Engine owns the board, the move log, the turn and the lock flag of one game.
// It is not safe for concurrent use.
type Engine struct {
	size   int
	cells  []entity.Stone
	moves  []entity.Point
	turn   entity.Stone
	locked bool
}

// New - creates an empty board of the given size with black to move.
func New(size int) (*Engine, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}

	return &Engine{
		size:  size,
		cells: make([]entity.Stone, size*size),
		moves: make([]entity.Point, 0, size*size),
		turn:  entity.Black,
	}, nil
}

// NewStandard - creates a 15x15 engine.
func NewStandard() *Engine {
	engine, _ := New(entity.DefaultBoardSize)
	return engine
}

// ApplyMove - places a stone of the current color at (x, y).
// A rejected move leaves the game untouched.
func (that *Engine) ApplyMove(x, y int) (entity.MoveResult, error) {
	if err := that.validateMove(x, y); err != nil {
		return entity.MoveResult{}, fmt.Errorf("move (%d, %d) rejected: %w", x, y, err)
	}

	color := that.turn
	that.cells[that.index(x, y)] = color
	that.moves = append(that.moves, entity.Point{X: x, Y: y})

	isWin := that.checkLine(x, y, color)
	that.turn = color.Opponent()

	return entity.MoveResult{
		Placed: true,
		Color:  color,
		IsWin:  isWin,
		Point:  entity.Point{X: x, Y: y},
	}, nil
}

// validateMove - checks the range first, then the lock, then the cell.
func (that *Engine) validateMove(x, y int) error {
	if !that.inBounds(x, y) {
		return apperror.ErrInvalidCoordinate
	}

	if that.locked {
		return apperror.ErrBoardLocked
	}

	if that.cells[that.index(x, y)] != entity.Empty {
		return apperror.ErrCellOccupied
	}

	return nil
}

// Undo - takes back the last move and gives the turn to whoever played it.
// It reports false when there is nothing to undo.
func (that *Engine) Undo() (entity.Point, bool) {
	if len(that.moves) == 0 {
		return entity.Point{}, false
	}

	last := that.moves[len(that.moves)-1]
	that.moves = that.moves[:len(that.moves)-1]

	idx := that.index(last.X, last.Y)
	that.turn = that.cells[idx]
	that.cells[idx] = entity.Empty
	that.locked = false

	return last, true
}

// Reset - empties the board and starts over with black.
func (that *Engine) Reset() {
	for i := range that.cells {
		that.cells[i] = entity.Empty
	}

	that.moves = that.moves[:0]
	that.turn = entity.Black
	that.locked = false
}

func (that *Engine) SetLocked(locked bool) {
	that.locked = locked
}

func (that *Engine) IsLocked() bool {
	return that.locked
}

func (that *Engine) CurrentTurn() entity.Stone {
	return that.turn
}

func (that *Engine) MoveCount() int {
	return len(that.moves)
}

func (that *Engine) Size() int {
	return that.size
}

func (that *Engine) CellAt(x, y int) (entity.Stone, error) {
	if !that.inBounds(x, y) {
		return entity.Empty, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCoordinate, x, y)
	}

	return that.cells[that.index(x, y)], nil
}

// Moves - returns a copy of the move log in play order.
func (that *Engine) Moves() []entity.Point {
	moves := make([]entity.Point, len(that.moves))
	copy(moves, that.moves)

	return moves
}

func (that *Engine) LastMove() (entity.Point, bool) {
	if len(that.moves) == 0 {
		return entity.Point{}, false
	}

	return that.moves[len(that.moves)-1], true
}

// Snapshot - deep copy of the game state.
func (that *Engine) Snapshot() entity.Snapshot {
	board := make([][]entity.Stone, that.size)
	for x := range board {
		board[x] = make([]entity.Stone, that.size)
		copy(board[x], that.cells[x*that.size:(x+1)*that.size])
	}

	return entity.Snapshot{
		Size:      that.size,
		Board:     board,
		Turn:      that.turn,
		Locked:    that.locked,
		Moves:     that.Moves(),
		MoveCount: len(that.moves),
	}
}

// checkLine - reports whether the stone at (x, y) completes five or more in a row.
func (that *Engine) checkLine(x, y int, color entity.Stone) bool {
	for _, line := range lines {
		amount := that.countFrom(x, y, -line.dx, -line.dy, color)
		amount += that.countFrom(x, y, line.dx, line.dy, color)

		if amount > winThreshold {
			return true
		}
	}

	return false
}

// countFrom - counts same-colored stones starting at (x, y) itself and walking toward the edge.
func (that *Engine) countFrom(x, y, dx, dy int, color entity.Stone) int {
	amount := 0
	for i, j := x, y; that.inBounds(i, j); i, j = i+dx, j+dy {
		if that.cells[that.index(i, j)] != color {
			break
		}
		amount++
	}

	return amount
}

func (that *Engine) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < that.size && y < that.size
}

func (that *Engine) index(x, y int) int {
	return x*that.size + y
}
