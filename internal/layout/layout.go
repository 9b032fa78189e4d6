// Package layout maps screen geometry to board intersections and renders boards as text.
package layout

import (
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	glyphEmpty = '.'
	glyphBlack = 'X'
	glyphWhite = 'O'
)

// MeasureBoard - side of the square board view that fits into width x height.
// The side is a multiple of size+1 so every grid line lands on a whole pixel.
func MeasureBoard(width, height, size int) int {
	side := min(width, height)
	if side <= 0 || size < 1 {
		return 0
	}

	return side / (size + 1) * (size + 1)
}

// Locate - resolves a tap at (px, py) on a board view of boardPixels to an intersection.
// Intersection (i, j) is drawn at (pitch*(i+1), pitch*(j+1)). A square of one pitch is centred
// on the tap and the first intersection inside it wins.
func Locate(px, py float64, boardPixels, size int) (entity.Point, bool) {
	if size < 1 {
		return entity.Point{}, false
	}

	pitch := boardPixels / (size + 1)
	if pitch <= 0 {
		return entity.Point{}, false
	}

	hit := newTapRect(px, py, pitch)
	for i := 1; i <= size; i++ {
		for j := 1; j <= size; j++ {
			if hit.contains(pitch*i, pitch*j) {
				return entity.Point{X: i - 1, Y: j - 1}, true
			}
		}
	}

	return entity.Point{}, false
}

// tapRect is half-open: left and top are inside, right and bottom are not.
type tapRect struct {
	left, top, right, bottom int
}

func newTapRect(px, py float64, side int) tapRect {
	half := float64(side / 2)

	return tapRect{
		left:   int(px - half),
		top:    int(py - half),
		right:  int(px + half),
		bottom: int(py + half),
	}
}

func (that tapRect) contains(x, y int) bool {
	return that.left < that.right && that.top < that.bottom &&
		x >= that.left && x < that.right && y >= that.top && y < that.bottom
}

// RenderText - one line per row, X for black, O for white.
func RenderText(snapshot entity.Snapshot) string {
	var sb strings.Builder
	sb.Grow(snapshot.Size * (snapshot.Size + 1))

	for y := 0; y < snapshot.Size; y++ {
		for x := 0; x < snapshot.Size; x++ {
			sb.WriteByte(glyph(snapshot.At(x, y)))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func glyph(stone entity.Stone) byte {
	switch stone {
	case entity.Black:
		return glyphBlack
	case entity.White:
		return glyphWhite
	default:
		return glyphEmpty
	}
}
