// Package rendertest provides in-memory render collaborators for tests.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/fabricof/internal/render"
)

// Draw records one DrawImage call on a Screen.
type Draw struct {
	Glyph rune
	Tint  color.Color
	Dst   image.Rectangle
}

// Screen is a render.Image that records glyph blits instead of drawing.
type Screen struct {
	Width, Height int
	Draws         []Draw
	Filled        color.Color
	Cleared       int
}

// NewScreen returns an empty recording screen of the given size.
func NewScreen(width, height int) *Screen {
	return &Screen{Width: width, Height: height}
}

func (s *Screen) Size() (int, int) { return s.Width, s.Height }
func (s *Screen) Fill(clr color.Color) { s.Filled = clr }
func (s *Screen) Clear() { s.Cleared++; s.Draws = nil }
func (s *Screen) Dispose() {}

// DrawImage records the blit. Sources other than a *Glyph are recorded with a
// zero rune.
func (s *Screen) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	d := Draw{}
	if g, ok := src.(*Glyph); ok {
		d.Glyph = g.Rune
		d.Tint = g.Tint
	}
	if opts != nil {
		d.Dst = opts.Dst
	}
	s.Draws = append(s.Draws, d)
}

// At returns the draws whose destination starts at (x, y).
func (s *Screen) At(x, y int) []Draw {
	var out []Draw
	for _, d := range s.Draws {
		if d.Dst.Min.X == x && d.Dst.Min.Y == y {
			out = append(out, d)
		}
	}
	return out
}

// Glyph is the image produced by Rasterizer.
type Glyph struct {
	Rune     rune
	Tint     color.Color
	Disposed bool
}

func (g *Glyph) Size() (int, int) { return 8, 8 }
func (g *Glyph) Fill(color.Color) {}
func (g *Glyph) Clear() {}
func (g *Glyph) DrawImage(render.Image, *render.DrawImageOptions) {}
func (g *Glyph) Dispose() { g.Disposed = true }

// Rasterizer is a render.GlyphRasterizer that fails for the runes listed in
// Unsupported and remembers every glyph it handed out.
type Rasterizer struct {
	Unsupported map[rune]bool
	Issued      []*Glyph
}

// NewRasterizer returns a rasterizer that rejects the given runes.
func NewRasterizer(unsupported ...rune) *Rasterizer {
	r := &Rasterizer{Unsupported: make(map[rune]bool)}
	for _, ch := range unsupported {
		r.Unsupported[ch] = true
	}
	return r
}

// RasterizeGlyph implements render.GlyphRasterizer.
func (r *Rasterizer) RasterizeGlyph(ch rune, tint color.Color) (render.Image, error) {
	if r.Unsupported[ch] {
		return nil, render.ErrGlyphUnsupported
	}
	g := &Glyph{Rune: ch, Tint: tint}
	r.Issued = append(r.Issued, g)
	return g, nil
}

// Window is an in-memory render.Window.
type Window struct {
	Title                   string
	Width, Height           int
	Resizable               bool
	Fullscreen              bool
	MonitorWidth, MonitorHt int
	SizeCalls               int
}

func (w *Window) SetTitle(title string) { w.Title = title }
func (w *Window) SetSize(width, height int) { w.Width, w.Height = width, height; w.SizeCalls++ }
func (w *Window) Size() (int, int) { return w.Width, w.Height }
func (w *Window) SetResizable(resizable bool) { w.Resizable = resizable }
func (w *Window) SetFullscreen(fullscreen bool) { w.Fullscreen = fullscreen }
func (w *Window) IsFullscreen() bool { return w.Fullscreen }
func (w *Window) MonitorSize() (int, int) { return w.MonitorWidth, w.MonitorHt }

// Input is a render.InputSource that replays queued ticks of events.
type Input struct {
	Ticks [][]render.Event
}

// Push queues the events for one tick.
func (in *Input) Push(events ...render.Event) {
	in.Ticks = append(in.Ticks, events)
}

// Poll returns the next queued tick, or nothing once the queue is empty.
func (in *Input) Poll() []render.Event {
	if len(in.Ticks) == 0 {
		return nil
	}
	events := in.Ticks[0]
	in.Ticks = in.Ticks[1:]
	return events
}

// KeyDown builds a key-down event.
func KeyDown(k render.Key) render.Event {
	return render.Event{Kind: render.EventKeyDown, Key: k}
}

// KeyUp builds a key-up event.
func KeyUp(k render.Key) render.Event {
	return render.Event{Kind: render.EventKeyUp, Key: k}
}

// Quit builds a quit event.
func Quit() render.Event {
	return render.Event{Kind: render.EventQuit}
}
