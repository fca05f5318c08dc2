// Package viewport maps the fixed logical glyph grid onto a physical surface.
package viewport

import "image"

// Logical screen geometry. Every layer is laid out on this grid regardless of
// the physical window size.
const (
	BaseWidth  = 320
	BaseHeight = 200
	CellWidth  = 8
	CellHeight = 8
	Cols       = BaseWidth / CellWidth  // 40 columns
	Rows       = BaseHeight / CellHeight // 25 rows
)

// Viewport holds the physical surface size and the per-axis scale factors
// derived from it. Scales are independent, so the grid stretches to fill the
// surface without letterboxing.
type Viewport struct {
	Width  int
	Height int
	ScaleX float64
	ScaleY float64
}

// New computes the viewport for a physical surface of width x height pixels.
func New(width, height int) Viewport {
	return Viewport{
		Width:  width,
		Height: height,
		ScaleX: float64(width) / BaseWidth,
		ScaleY: float64(height) / BaseHeight,
	}
}

// CellRect returns the physical destination rectangle of logical cell
// (row, col). Every component is truncated toward zero.
func (v Viewport) CellRect(row, col int) image.Rectangle {
	x := int(float64(col*CellWidth) * v.ScaleX)
	y := int(float64(row*CellHeight) * v.ScaleY)
	w := int(CellWidth * v.ScaleX)
	h := int(CellHeight * v.ScaleY)
	return image.Rect(x, y, x+w, y+h)
}

// InGrid reports whether (row, col) lies on the visible logical grid.
func InGrid(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Size is a window size candidate in physical pixels.
type Size struct {
	Width  int
	Height int
}

// WindowSizes lists the window sizes the player can cycle through: successive
// multiples of the base width at the 8:5 base aspect that fit the display.
// The base size is appended until at least two entries exist so cycling
// always has somewhere to go.
func WindowSizes(screenWidth, screenHeight int) []Size {
	var sizes []Size
	width := BaseWidth
	height := width * BaseHeight / BaseWidth
	for width <= screenWidth && height <= screenHeight {
		sizes = append(sizes, Size{Width: width, Height: height})
		width += BaseWidth
		height = width * BaseHeight / BaseWidth
	}
	for len(sizes) < 2 {
		sizes = append(sizes, Size{Width: BaseWidth, Height: BaseHeight})
	}
	return sizes
}
