package apperror

import "errors"

var (
	ErrInvalidCoordinate = errors.New("coordinate is outside the board")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrBoardLocked       = errors.New("board is locked")
	ErrOutsideBoard      = errors.New("tap does not hit a board intersection")
	ErrNoPendingDecision = errors.New("no finished game is waiting for a decision")
	ErrUnknownDecision   = errors.New("unknown decision")
)
