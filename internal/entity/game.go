package entity

import (
	"errors"
	"fmt"
)

// DefaultBoardSize - the standard Gomoku board is 15x15.
const DefaultBoardSize = 15

// Stone is the content of one board cell.
type Stone int

const (
	Empty Stone = iota
	Black
	White
)

const (
	textEmpty = ""
	textBlack = "black"
	textWhite = "white"
)

var ErrUnknownStone = errors.New("unknown stone")

// Opponent - returns the color that moves after this one.
func (that Stone) Opponent() Stone {
	switch that {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (that Stone) String() string {
	switch that {
	case Black:
		return textBlack
	case White:
		return textWhite
	default:
		return "empty"
	}
}

func (that Stone) MarshalText() ([]byte, error) {
	switch that {
	case Empty:
		return []byte(textEmpty), nil
	case Black:
		return []byte(textBlack), nil
	case White:
		return []byte(textWhite), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStone, that)
	}
}

func (that *Stone) UnmarshalText(text []byte) error {
	switch string(text) {
	case textEmpty:
		*that = Empty
	case textBlack:
		*that = Black
	case textWhite:
		*that = White
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStone, text)
	}

	return nil
}

// Point is a board coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MoveResult is returned for every attempted move. Placed is false when the move was rejected.
type MoveResult struct {
	Placed bool  `json:"placed"`
	Color  Stone `json:"color"`
	IsWin  bool  `json:"is_win"`
	Point  Point `json:"point"`
}

// Snapshot is a read-only copy of a game, Board is indexed [x][y].
type Snapshot struct {
	Size      int       `json:"size"`
	Board     [][]Stone `json:"board"`
	Turn      Stone     `json:"turn"`
	Locked    bool      `json:"locked"`
	Moves     []Point   `json:"moves"`
	MoveCount int       `json:"move_count"`

	Winner           Stone `json:"winner"`
	AwaitingDecision bool  `json:"awaiting_decision"`
}

// At - returns the stone at the given point, Empty when the point is off the board.
func (that Snapshot) At(x, y int) Stone {
	if x < 0 || y < 0 || x >= len(that.Board) || y >= len(that.Board[x]) {
		return Empty
	}

	return that.Board[x][y]
}

// IsFinished - a winner was reported and the players have not undone or reset yet.
func (that Snapshot) IsFinished() bool {
	return that.Winner != Empty
}
