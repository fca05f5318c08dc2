// Package fog tracks which landscape cells the character has uncovered.
// Reveal is permanent: once a cell has been within range it stays visible
// for the rest of the session.
package fog

import "github.com/bits-and-blooms/bitset"

// RevealRadius is the half-width of the square reveal box around the character.
const RevealRadius = 6

// Cell is a landscape coordinate.
type Cell struct {
	Row, Col int
}

// Bounds describes the shape of the grid being tracked. Rows may be ragged,
// so each row carries its own width.
type Bounds interface {
	Height() int
	RowWidth(row int) int
}

// Tracker owns the reveal set for one landscape grid. Membership is stored as
// a bitset indexed row*width+col over the grid's bounding box.
type Tracker struct {
	bounds Bounds
	width  int
	height int
	radius int
	bits   *bitset.BitSet
}

// NewTracker creates an empty tracker for the given landscape using the
// standard reveal radius.
func NewTracker(bounds Bounds) *Tracker {
	return NewTrackerWithRadius(bounds, RevealRadius)
}

// NewTrackerWithRadius creates an empty tracker with a custom radius.
func NewTrackerWithRadius(bounds Bounds, radius int) *Tracker {
	height := bounds.Height()
	width := 0
	for row := 0; row < height; row++ {
		if w := bounds.RowWidth(row); w > width {
			width = w
		}
	}
	return &Tracker{
		bounds: bounds,
		width:  width,
		height: height,
		radius: radius,
		bits:   bitset.New(uint(width * height)),
	}
}

// Update reveals every landscape cell inside the box of half-width radius
// centred on (charRow, charCol). It returns the number of newly revealed cells.
func (t *Tracker) Update(charRow, charCol int) int {
	added := 0
	for row := 0; row < t.height; row++ {
		if distance(row, charRow) > int64(t.radius) {
			continue
		}
		rowWidth := t.bounds.RowWidth(row)
		for col := 0; col < rowWidth; col++ {
			if distance(col, charCol) > int64(t.radius) {
				continue
			}
			if t.insert(row, col) {
				added++
			}
		}
	}
	return added
}

// IsRevealed reports whether (row, col) has ever been revealed. Coordinates
// outside the landscape are never revealed.
func (t *Tracker) IsRevealed(row, col int) bool {
	idx, ok := t.index(row, col)
	if !ok {
		return false
	}
	return t.bits.Test(idx)
}

// Count returns the number of revealed cells.
func (t *Tracker) Count() int {
	return int(t.bits.Count())
}

// Cells returns the revealed cells in row-major order.
func (t *Tracker) Cells() []Cell {
	cells := make([]Cell, 0, t.Count())
	for idx, ok := t.bits.NextSet(0); ok; idx, ok = t.bits.NextSet(idx + 1) {
		cells = append(cells, Cell{Row: int(idx) / t.width, Col: int(idx) % t.width})
	}
	return cells
}

func (t *Tracker) insert(row, col int) bool {
	idx, ok := t.index(row, col)
	if !ok {
		return false
	}
	if t.bits.Test(idx) {
		return false
	}
	t.bits.Set(idx)
	return true
}

func (t *Tracker) index(row, col int) (uint, bool) {
	if row < 0 || row >= t.height || col < 0 || col >= t.width {
		return 0, false
	}
	return uint(row*t.width + col), true
}

// distance is |a-b| computed in 64 bits so it cannot wrap on 32-bit targets.
func distance(a, b int) int64 {
	d := int64(a) - int64(b)
	if d < 0 {
		return -d
	}
	return d
}
