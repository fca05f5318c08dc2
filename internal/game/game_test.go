package game

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"chosenoffset.com/fabricof/internal/config"
	"chosenoffset.com/fabricof/internal/render"
	"chosenoffset.com/fabricof/internal/render/rendertest"
	"chosenoffset.com/fabricof/internal/scene"
	"chosenoffset.com/fabricof/internal/settings"
)

// fakeClock advances by step on every call.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

type recordingChime struct {
	reveals []int
}

func (r *recordingChime) Reveal(n int) { r.reveals = append(r.reveals, n) }
func (r *recordingChime) Close()       {}

type recordingClipboard struct {
	text string
	err  error
}

func (c *recordingClipboard) WriteAll(text string) error {
	c.text = text
	return c.err
}

type harness struct {
	game      *Game
	window    *rendertest.Window
	input     *rendertest.Input
	glyphs    *rendertest.Rasterizer
	chime     *recordingChime
	clipboard *recordingClipboard
}

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Default()
	if err != nil {
		t.Fatalf("Failed to load default scene: %v", err)
	}
	return s
}

func newHarness(t *testing.T, s *scene.Scene, display settings.Display) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Movement = config.MovementConfig{Speed: 12, Multiplier: 1}

	h := &harness{
		window:    &rendertest.Window{MonitorWidth: 1920, MonitorHt: 1080},
		input:     &rendertest.Input{},
		glyphs:    rendertest.NewRasterizer(),
		chime:     &recordingChime{},
		clipboard: &recordingClipboard{},
	}
	clock := &fakeClock{t: time.Unix(0, 0), step: 250 * time.Millisecond}
	h.game = New(Options{
		Config:    cfg,
		Scene:     s,
		Display:   display,
		Window:    h.window,
		Input:     h.input,
		Glyphs:    h.glyphs,
		Chime:     h.chime,
		Clipboard: h.clipboard,
		Now:       clock.Now,
	})
	return h
}

func TestNewConfiguresWindow(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 2})

	if h.window.Title != "The Fabricof" {
		t.Errorf("Expected title 'The Fabricof', got '%s'", h.window.Title)
	}
	if !h.window.Resizable {
		t.Error("Expected a resizable window")
	}
	if h.window.Width != 960 || h.window.Height != 600 {
		t.Errorf("Expected 960x600 for size index 2, got %dx%d", h.window.Width, h.window.Height)
	}
	if len(h.game.State.WindowSizes) != 5 {
		t.Errorf("Expected 5 window sizes on a 1920x1080 display, got %d", len(h.game.State.WindowSizes))
	}
	if h.game.State.Run != Running {
		t.Errorf("Expected Running, got %v", h.game.State.Run)
	}
}

func TestNewClampsSizeIndexAndRestoresFullscreen(t *testing.T) {
	s := testScene(t)
	cfg := config.DefaultConfig()
	window := &rendertest.Window{MonitorWidth: 320, MonitorHt: 200}
	g := New(Options{
		Config:  cfg,
		Scene:   s,
		Display: settings.Display{SizeIndex: 7, Fullscreen: true},
		Window:  window,
		Input:   &rendertest.Input{},
		Glyphs:  rendertest.NewRasterizer(),
	})

	if g.State.SizeIndex != 1 {
		t.Errorf("Expected size index clamped to 1, got %d", g.State.SizeIndex)
	}
	if !window.Fullscreen || !g.State.Fullscreen {
		t.Error("Expected fullscreen to be restored")
	}
}

func TestMoveRightRevealsAroundCharacter(t *testing.T) {
	s := testScene(t)
	s.Character.X, s.Character.Y = 7, 8
	h := newHarness(t, s, settings.Display{SizeIndex: 2})

	// 12 cells/s for 0.25s moves 3 cells.
	h.input.Push(rendertest.KeyDown(render.KeyRight), rendertest.KeyUp(render.KeyRight))
	if err := h.game.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if h.game.State.Character.X != 10 {
		t.Errorf("Expected character x=10, got %v", h.game.State.Character.X)
	}
	if !h.game.State.Reveal.IsRevealed(8, 10) {
		t.Error("Expected (8,10) to be revealed")
	}
	if h.game.State.Reveal.IsRevealed(0, 0) {
		t.Error("Expected (0,0) to stay hidden")
	}
}

func TestRevealNeverShrinks(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 2})

	prev := 0
	h.input.Push(rendertest.KeyDown(render.KeyLeft))
	for i := 0; i < 20; i++ {
		if err := h.game.Update(); err != nil {
			t.Fatal(err)
		}
		n := h.game.State.Reveal.Count()
		if n < prev {
			t.Fatalf("Reveal count shrank from %d to %d", prev, n)
		}
		prev = n
	}
}

func TestChimeOnlyForNewCells(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 2})

	for i := 0; i < 3; i++ {
		if err := h.game.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if len(h.chime.reveals) != 1 {
		t.Fatalf("Expected a single chime for the first reveal, got %v", h.chime.reveals)
	}
	if h.chime.reveals[0] <= 0 {
		t.Errorf("Expected a positive reveal count, got %d", h.chime.reveals[0])
	}
}

func TestQuitTerminates(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 2})

	h.input.Push(rendertest.KeyDown(render.KeyEscape))
	if err := h.game.Update(); !errors.Is(err, render.ErrTerminate) {
		t.Fatalf("Expected ErrTerminate, got %v", err)
	}
	if h.game.State.Run != Stopped {
		t.Errorf("Expected Stopped, got %v", h.game.State.Run)
	}
	// Stopped is terminal.
	if err := h.game.Update(); !errors.Is(err, render.ErrTerminate) {
		t.Errorf("Expected ErrTerminate after stopping, got %v", err)
	}
}

func TestWindowModeKeys(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 4})
	calls := h.window.SizeCalls

	// Index 4 is the last size on this display, so R wraps to 0.
	h.input.Push(rendertest.KeyDown(render.KeyR))
	if err := h.game.Update(); err != nil {
		t.Fatal(err)
	}
	if h.game.State.SizeIndex != 0 || h.window.Width != 320 {
		t.Errorf("Expected wrap to 320x200, got index %d, width %d", h.game.State.SizeIndex, h.window.Width)
	}
	if !h.game.State.ViewportDirty {
		t.Error("Expected viewport dirty after resize")
	}

	h.input.Push(rendertest.KeyDown(render.KeyF))
	h.input.Push(rendertest.KeyDown(render.KeyR))
	for i := 0; i < 2; i++ {
		if err := h.game.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if !h.window.Fullscreen {
		t.Error("Expected fullscreen after F")
	}
	if h.window.SizeCalls != calls+1 {
		t.Errorf("Expected R to be ignored while fullscreen, got %d size calls", h.window.SizeCalls-calls)
	}

	if got := h.game.Display(); got.SizeIndex != 0 || !got.Fullscreen {
		t.Errorf("Expected display {0 true}, got %+v", got)
	}
}

func TestScrollAndCopy(t *testing.T) {
	s := testScene(t)
	s.Dialogue = nil
	for i := 0; i < 10; i++ {
		s.Dialogue = append(s.Dialogue, "entry")
	}
	h := newHarness(t, s, settings.Display{SizeIndex: 2})

	h.input.Push(
		rendertest.KeyDown(render.KeyDown),
		rendertest.KeyDown(render.KeyDown),
		rendertest.KeyDown(render.KeyDown),
		rendertest.KeyDown(render.KeyC),
	)
	if err := h.game.Update(); err != nil {
		t.Fatal(err)
	}
	if h.game.State.Textbox.Offset() != 2 {
		t.Errorf("Expected scroll clamped to 2, got %d", h.game.State.Textbox.Offset())
	}
	if strings.Count(h.clipboard.text, "entry") != 10 {
		t.Errorf("Expected transcript with 10 entries, got %q", h.clipboard.text)
	}
}

func TestClipboardFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 2})
	h.clipboard.err = errors.New("no clipboard")

	h.input.Push(rendertest.KeyDown(render.KeyC))
	if err := h.game.Update(); err != nil {
		t.Errorf("Expected clipboard failure to be ignored, got %v", err)
	}
}

func TestDrawRecomputesViewport(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 2})
	if err := h.game.Update(); err != nil {
		t.Fatal(err)
	}

	w, hgt := h.game.Layout(640, 400)
	if w != 640 || hgt != 400 {
		t.Errorf("Expected Layout to return the outside size, got %dx%d", w, hgt)
	}
	if !h.game.State.ViewportDirty {
		t.Error("Expected Layout to mark the viewport dirty on a new size")
	}

	screen := rendertest.NewScreen(640, 400)
	h.game.Draw(screen)

	if h.game.State.ViewportDirty {
		t.Error("Expected Draw to recompute the viewport")
	}
	if h.game.State.Viewport.ScaleX != 2 || h.game.State.Viewport.ScaleY != 2 {
		t.Errorf("Expected scale 2x2, got %vx%v", h.game.State.Viewport.ScaleX, h.game.State.Viewport.ScaleY)
	}
	if screen.Filled != clearColor {
		t.Errorf("Expected screen cleared to black, got %v", screen.Filled)
	}
	if len(screen.Draws) == 0 {
		t.Error("Expected glyphs to be drawn")
	}
	// Top-left frame corner of the background at 2x.
	if d := screen.At(0, 0); len(d) == 0 || d[0].Tint != scene.BackgroundTint || d[0].Dst.Dx() != 16 {
		t.Errorf("Expected a 16px background glyph at the origin, got %+v", d)
	}

	// Same size again keeps the viewport clean.
	h.game.Layout(640, 400)
	if h.game.State.ViewportDirty {
		t.Error("Expected an unchanged size to keep the viewport clean")
	}
}

func TestCharacterOverflowIsFatal(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 2})
	h.game.State.Character.X = 1e300

	if err := h.game.Update(); !errors.Is(err, scene.ErrCoordinateOverflow) {
		t.Errorf("Expected ErrCoordinateOverflow from Update, got %v", err)
	}
}

func TestDrawOverflowSurfacesInUpdate(t *testing.T) {
	h := newHarness(t, testScene(t), settings.Display{SizeIndex: 2})
	h.game.State.Character.Y = math.NaN()

	h.game.Draw(rendertest.NewScreen(320, 200))
	if err := h.game.Update(); !errors.Is(err, scene.ErrCoordinateOverflow) {
		t.Errorf("Expected the draw failure from Update, got %v", err)
	}
}
