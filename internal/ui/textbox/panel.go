package textbox

import (
	"image/color"
	"strings"

	"chosenoffset.com/fabricof/internal/core/viewport"
	"chosenoffset.com/fabricof/internal/render"
)

// Default placement inside the lower frame of the background.
const (
	DefaultRow    = 16
	DefaultCol    = 1
	DefaultWidth  = 37 // text area width in columns
	DefaultHeight = 8  // visible lines
)

// Scroll markers are drawn in the column right of the text area.
const (
	markerUp   = '▲'
	markerDown = '▼'
)

// Panel is the dialogue box: its entries, the area it occupies on the logical
// grid, and the current scroll offset.
type Panel struct {
	// Placement on the logical grid
	Row, Col      int
	Width, Height int

	entries []string
	lines   []string // wrapped entries, rebuilt when entries change
	offset  int

	textColor color.RGBA
}

// NewPanel creates an empty panel at the given grid position.
func NewPanel(row, col, width, height int) *Panel {
	return &Panel{
		Row:       row,
		Col:       col,
		Width:     width,
		Height:    height,
		textColor: color.RGBA{255, 255, 255, 255},
	}
}

// NewDefaultPanel creates a panel in the standard lower frame.
func NewDefaultPanel() *Panel {
	return NewPanel(DefaultRow, DefaultCol, DefaultWidth, DefaultHeight)
}

// SetEntries replaces the dialogue and re-clamps the scroll offset.
func (p *Panel) SetEntries(entries []string) {
	p.entries = append([]string(nil), entries...)
	p.lines = WrapAll(p.entries, p.Width)
	p.offset = clamp(p.offset, 0, p.MaxScroll())
}

// AddEntry appends one dialogue entry.
func (p *Panel) AddEntry(text string) {
	p.entries = append(p.entries, text)
	p.lines = append(p.lines, Wrap(text, p.Width)...)
}

// Entries returns the raw dialogue entries.
func (p *Panel) Entries() []string {
	return p.entries
}

// Offset returns the current scroll offset.
func (p *Panel) Offset() int {
	return p.offset
}

// MaxScroll returns the largest valid scroll offset.
func (p *Panel) MaxScroll() int {
	return maxScroll(len(p.lines), p.Height)
}

// Scroll moves the window by delta lines, clamped to [0, MaxScroll].
func (p *Panel) Scroll(delta int) {
	p.SetOffset(p.offset + delta)
}

// SetOffset sets the scroll offset, clamped to [0, MaxScroll].
func (p *Panel) SetOffset(offset int) {
	p.offset = clamp(offset, 0, p.MaxScroll())
}

// VisibleLines returns the lines currently inside the window.
func (p *Panel) VisibleLines() []string {
	return window(p.lines, p.Height, p.offset)
}

// Transcript returns every wrapped line joined by newlines.
func (p *Panel) Transcript() string {
	return strings.Join(p.lines, "\n")
}

// Draw renders the visible lines as glyph cells. Lines that overflow the text
// area are clipped to the logical grid, not to the panel.
func (p *Panel) Draw(screen render.Image, glyphs render.GlyphRasterizer, vp viewport.Viewport) {
	for i, line := range p.VisibleLines() {
		row := p.Row + i
		col := p.Col
		for _, ch := range line {
			if ch != ' ' && viewport.InGrid(row, col) {
				// A glyph the font cannot draw leaves a gap.
				_ = render.DrawGlyph(screen, glyphs, ch, p.textColor, vp.CellRect(row, col))
			}
			col++
		}
	}

	markerCol := p.Col + p.Width
	if p.offset > 0 && viewport.InGrid(p.Row, markerCol) {
		_ = render.DrawGlyph(screen, glyphs, markerUp, p.textColor, vp.CellRect(p.Row, markerCol))
	}
	bottom := p.Row + p.Height - 1
	if p.offset < p.MaxScroll() && viewport.InGrid(bottom, markerCol) {
		_ = render.DrawGlyph(screen, glyphs, markerDown, p.textColor, vp.CellRect(bottom, markerCol))
	}
}
