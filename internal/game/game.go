package game

import (
	"fmt"
	"log"
	"time"

	"chosenoffset.com/fabricof/internal/audio"
	"chosenoffset.com/fabricof/internal/config"
	"chosenoffset.com/fabricof/internal/core/fog"
	"chosenoffset.com/fabricof/internal/core/viewport"
	"chosenoffset.com/fabricof/internal/input"
	"chosenoffset.com/fabricof/internal/render"
	"chosenoffset.com/fabricof/internal/scene"
	"chosenoffset.com/fabricof/internal/settings"
	"chosenoffset.com/fabricof/internal/ui/textbox"
)

// maxFrameDelta caps dt after a stall so a single tick cannot teleport the
// character.
const maxFrameDelta = 0.25

// Options wires a Game to its collaborators.
type Options struct {
	Config    *config.Config
	Scene     *scene.Scene
	Display   settings.Display
	Window    render.Window
	Input     render.InputSource
	Glyphs    render.GlyphRasterizer
	Chime     audio.Player     // nil plays nothing
	Clipboard Clipboard        // nil disables copy
	Now       func() time.Time // nil uses time.Now
}

// Game runs one tick of input → reveal → compose per engine frame.
type Game struct {
	State *GameState

	input      render.InputSource
	controller *input.Controller
	compositor *scene.Compositor
	glyphs     render.GlyphRasterizer
	chime      audio.Player

	now  func() time.Time
	last time.Time

	// drawErr carries a fatal draw failure into the next Update.
	drawErr error

	// Debug
	FrameCount int
}

// New builds the game state from the scene and applies the initial window
// mode.
func New(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	chime := opts.Chime
	if chime == nil {
		chime = audio.Silent{}
	}

	character := opts.Scene.Character
	panel := textbox.NewDefaultPanel()
	panel.SetEntries(opts.Scene.Dialogue)

	monitorW, monitorH := opts.Window.MonitorSize()
	sizes := viewport.WindowSizes(monitorW, monitorH)

	state := &GameState{
		Run:           Running,
		Character:     &character,
		Reveal:        fog.NewTracker(opts.Scene.Landscape),
		Textbox:       panel,
		ViewportDirty: true,
		WindowSizes:   sizes,
		SizeIndex:     max(0, min(opts.Display.SizeIndex, len(sizes)-1)),
		window:        opts.Window,
		clipboard:     opts.Clipboard,
	}

	size := sizes[state.SizeIndex]
	opts.Window.SetTitle(cfg.Window.Title)
	opts.Window.SetResizable(true)
	opts.Window.SetSize(size.Width, size.Height)
	if opts.Display.Fullscreen {
		state.Fullscreen = true
		opts.Window.SetFullscreen(true)
	}
	log.Printf("[Game] Window %dx%d (size %d of %d), fullscreen %v",
		size.Width, size.Height, state.SizeIndex+1, len(sizes), state.Fullscreen)

	return &Game{
		State:      state,
		input:      opts.Input,
		controller: input.NewController(cfg.Movement),
		compositor: scene.NewCompositor(opts.Scene.Background, opts.Scene.Landscape, opts.Glyphs),
		glyphs:     opts.Glyphs,
		chime:      chime,
		now:        now,
		last:       now(),
	}
}

// Update handles input and reveals landscape around the character.
// It returns render.ErrTerminate once the loop has stopped.
func (g *Game) Update() error {
	if g.drawErr != nil {
		return g.drawErr
	}
	if g.State.Run == Stopped {
		return render.ErrTerminate
	}

	now := g.now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	out := g.controller.Apply(g.State, g.input.Poll(), dt)
	if out.Stopped {
		return render.ErrTerminate
	}
	if out.ViewportDirty {
		g.State.ViewportDirty = true
	}

	row, col, err := g.State.Character.CellPos()
	if err != nil {
		return fmt.Errorf("character position: %w", err)
	}
	if n := g.State.Reveal.Update(row, col); n > 0 {
		g.chime.Reveal(n)
	}

	return nil
}

// Layout renders at the physical resolution. A change in outside size marks
// the viewport dirty.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.State.Viewport.Width || outsideHeight != g.State.Viewport.Height {
		g.State.ViewportDirty = true
	}
	return outsideWidth, outsideHeight
}

// Display returns the preferences to persist on exit.
func (g *Game) Display() settings.Display {
	return g.State.Display()
}
