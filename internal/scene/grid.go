// Package scene holds the glyph layers of a scene and composites them onto
// the screen.
package scene

import (
	"errors"
	"math"
)

// ErrCoordinateOverflow is returned when a sprite cell coordinate cannot be
// represented. Wrapped coordinates would silently corrupt the draw target,
// so the condition is fatal for the loop.
var ErrCoordinateOverflow = errors.New("scene: sprite coordinate overflow")

// Grid is an ordered sequence of glyph rows. Rows may have different lengths.
type Grid [][]rune

// GridFromLines converts text lines into a grid, one rune per cell.
func GridFromLines(lines []string) Grid {
	g := make(Grid, len(lines))
	for i, line := range lines {
		g[i] = []rune(line)
	}
	return g
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// RowWidth returns the number of cells in row.
func (g Grid) RowWidth(row int) int {
	if row < 0 || row >= len(g) {
		return 0
	}
	return len(g[row])
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// At returns the glyph at (row, col), or a space outside the grid.
func (g Grid) At(row, col int) rune {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ' '
	}
	return g[row][col]
}

// Sprite is the character: a fixed glyph grid at a mutable position in cell
// units. X accumulates fractional movement; drawing uses the floor.
type Sprite struct {
	Cells Grid
	X, Y  float64
}

// maxCellCoord bounds positions to what an int holds on every platform.
const maxCellCoord = math.MaxInt32

// CellPos returns the integer cell position of the sprite origin.
func (s *Sprite) CellPos() (row, col int, err error) {
	col, err = cellCoord(s.X)
	if err != nil {
		return 0, 0, err
	}
	row, err = cellCoord(s.Y)
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

// Move shifts the sprite horizontally by dx cells.
func (s *Sprite) Move(dx float64) {
	s.X += dx
}

func cellCoord(v float64) (int, error) {
	f := math.Floor(v)
	if math.IsNaN(f) || f > maxCellCoord || f < -maxCellCoord {
		return 0, ErrCoordinateOverflow
	}
	return int(f), nil
}

// addCoord adds a sprite-local offset to an origin with an explicit overflow
// check.
func addCoord(origin, offset int) (int, error) {
	sum := origin + offset
	if (offset > 0 && sum < origin) || (offset < 0 && sum > origin) {
		return 0, ErrCoordinateOverflow
	}
	return sum, nil
}
