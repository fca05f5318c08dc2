// Package terminal presents the game in a text terminal with tcell. Each
// logical glyph lands in one terminal cell; the window is the terminal itself.
package terminal

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"chosenoffset.com/fabricof/internal/render"
)

// CellSize is the pixel size one terminal cell stands for. Reported sizes are
// terminal cells times CellSize, so a 40×25 terminal is the 320×200 base.
const CellSize = 8

// FrameDelay is the fixed sleep after each presented frame.
const FrameDelay = 16 * time.Millisecond

const eventBuffer = 100

// Terminal owns the tcell screen. It is the window, the input source and the
// engine for the terminal backend.
type Terminal struct {
	screen     tcell.Screen
	events     chan tcell.Event
	title      string
	fullscreen bool
	frameDelay time.Duration
}

// Open initializes the controlling terminal and starts forwarding its
// events.
func Open() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	t := newTerminal(screen)
	go t.forwardEvents()
	return t, nil
}

func newTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen:     screen,
		events:     make(chan tcell.Event, eventBuffer),
		frameDelay: FrameDelay,
	}
}

// forwardEvents moves blocking PollEvent results into the buffered channel.
// It exits once the screen is finalized.
func (t *Terminal) forwardEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.events <- ev
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// SetTitle sets the terminal window title where the terminal supports it.
func (t *Terminal) SetTitle(title string) {
	t.title = title
	t.screen.SetTitle(title)
}

// SetSize is a no-op: the terminal decides its own size.
func (t *Terminal) SetSize(width, height int) {}

// Size returns the terminal size in pixel units.
func (t *Terminal) Size() (int, int) {
	cols, rows := t.screen.Size()
	return cols * CellSize, rows * CellSize
}

// SetResizable is a no-op.
func (t *Terminal) SetResizable(bool) {}

// SetFullscreen records the mode. The terminal always fills its window.
func (t *Terminal) SetFullscreen(fullscreen bool) {
	t.fullscreen = fullscreen
}

// IsFullscreen reports the recorded mode.
func (t *Terminal) IsFullscreen() bool {
	return t.fullscreen
}

// MonitorSize reports the terminal size; there is nothing larger to grow to.
func (t *Terminal) MonitorSize() (int, int) {
	return t.Size()
}

// Poll drains the pending terminal events without blocking. Terminals report
// no key releases, so each key press yields a down/up pair and a held key
// moves once per auto-repeat.
func (t *Terminal) Poll() []render.Event {
	var events []render.Event
	for {
		select {
		case ev := <-t.events:
			events = append(events, translate(ev)...)
		default:
			return events
		}
	}
}

func translate(ev tcell.Event) []render.Event {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return nil
	}
	if key.Key() == tcell.KeyCtrlC {
		return []render.Event{{Kind: render.EventQuit}}
	}
	k := mapKey(key)
	if k == render.KeyUnknown {
		return nil
	}
	return []render.Event{
		{Kind: render.EventKeyDown, Key: k},
		{Kind: render.EventKeyUp, Key: k},
	}
}

func mapKey(ev *tcell.EventKey) render.Key {
	switch ev.Key() {
	case tcell.KeyEscape:
		return render.KeyEscape
	case tcell.KeyLeft:
		return render.KeyLeft
	case tcell.KeyRight:
		return render.KeyRight
	case tcell.KeyUp:
		return render.KeyUp
	case tcell.KeyDown:
		return render.KeyDown
	case tcell.KeyPgUp:
		return render.KeyPageUp
	case tcell.KeyPgDn:
		return render.KeyPageDown
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'f':
			return render.KeyF
		case 'r':
			return render.KeyR
		case 'c':
			return render.KeyC
		}
	}
	return render.KeyUnknown
}

// RunGame runs update, draw and present until the game terminates.
func (t *Terminal) RunGame(game render.Game) error {
	frames := 0
	for {
		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrTerminate) {
				log.Printf("[Terminal] Stopped after %d frames", frames)
				return nil
			}
			return err
		}

		w, h := game.Layout(t.Size())
		game.Draw(&screenImage{term: t, width: w, height: h})
		t.screen.Show()
		frames++

		time.Sleep(t.frameDelay)
	}
}

// screenImage draws onto the terminal cells.
type screenImage struct {
	term          *Terminal
	width, height int
	bg            tcell.Color
}

func (s *screenImage) Size() (int, int) { return s.width, s.height }

// Fill clears every cell to clr.
func (s *screenImage) Fill(clr color.Color) {
	s.bg = toColor(clr)
	s.term.screen.Fill(' ', tcell.StyleDefault.Background(s.bg))
}

func (s *screenImage) Clear() {
	s.bg = tcell.ColorDefault
	s.term.screen.Clear()
}

func (s *screenImage) Dispose() {}

// DrawImage places a glyph in the cell holding the top-left corner of
// opts.Dst. Sources other than glyphs are ignored.
func (s *screenImage) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	g, ok := src.(*glyphImage)
	if !ok {
		return
	}
	x, y := 0, 0
	if opts != nil {
		x, y = opts.Dst.Min.X/CellSize, opts.Dst.Min.Y/CellSize
	}
	style := tcell.StyleDefault.Foreground(g.fg).Background(s.bg)
	s.term.screen.SetContent(x, y, g.ch, nil, style)
}

// glyphImage is a rune and its colour standing in for a rasterized glyph.
type glyphImage struct {
	ch rune
	fg tcell.Color
}

func (g *glyphImage) Size() (int, int) { return CellSize, CellSize }
func (g *glyphImage) Fill(color.Color) {}
func (g *glyphImage) Clear() {}
func (g *glyphImage) DrawImage(render.Image, *render.DrawImageOptions) {}
func (g *glyphImage) Dispose() {}

// GlyphRasterizer produces terminal glyphs. Runes that are not printable or
// that do not occupy exactly one cell are unsupported.
type GlyphRasterizer struct{}

// RasterizeGlyph implements render.GlyphRasterizer.
func (GlyphRasterizer) RasterizeGlyph(ch rune, tint color.Color) (render.Image, error) {
	if !unicode.IsPrint(ch) || runewidth.RuneWidth(ch) != 1 {
		return nil, render.ErrGlyphUnsupported
	}
	return &glyphImage{ch: ch, fg: toColor(tint)}, nil
}

func toColor(clr color.Color) tcell.Color {
	r, g, b, _ := clr.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
