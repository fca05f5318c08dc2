package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrTerminate is returned from Game.Update to end the run loop cleanly.
// Engines translate it into their own termination signal and return nil.
var ErrTerminate = errors.New("render: terminate")

// ErrGlyphUnsupported is returned by a GlyphRasterizer when the font has no
// glyph for the requested rune. Callers skip the cell and keep drawing.
var ErrGlyphUnsupported = errors.New("render: glyph not supported by font")

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Size returns the width and height in physical pixels.
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// DrawImage draws src stretched to fill opts.Dst.
	DrawImage(src Image, opts *DrawImageOptions)

	// Dispose releases the image resources.
	Dispose()
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	// Dst is the destination rectangle on the target image. The source is
	// scaled to fill it. An empty Dst draws the source unscaled at the origin.
	Dst image.Rectangle
}

// GlyphRasterizer turns a single character into a blittable cell image.
type GlyphRasterizer interface {
	// RasterizeGlyph returns a fresh image of ch drawn in tint. The caller owns
	// the result and disposes it after use.
	RasterizeGlyph(ch rune, tint color.Color) (Image, error)
}

// Window controls the platform window or surface the game is presented on.
type Window interface {
	SetTitle(title string)
	SetSize(width, height int)
	Size() (width, height int)
	SetResizable(resizable bool)

	// SetFullscreen switches between windowed mode and desktop-bounds fullscreen.
	SetFullscreen(fullscreen bool)
	IsFullscreen() bool

	// MonitorSize reports the current display resolution.
	MonitorSize() (width, height int)
}

// EventKind classifies an input event.
type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventKeyUp
)

// Event is a discrete input event produced once per tick.
type Event struct {
	Kind EventKind
	Key  Key
}

// InputSource produces the finite sequence of events for the current tick.
// Poll never blocks.
type InputSource interface {
	Poll() []Event
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game binds.
const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF // Fullscreen toggle
	KeyR // Window size cycle
	KeyC // Copy transcript
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
)

// String returns a readable key name for logging.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyF:
		return "F"
	case KeyR:
		return "R"
	case KeyC:
		return "C"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	default:
		return "Unknown"
	}
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the screen size.
	// The game renders at physical resolution, so implementations return the input.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

// DrawGlyph rasterizes ch in tint and blits it into dst on screen. The glyph
// image is created for this one draw and disposed afterwards. An empty dst
// draws nothing.
func DrawGlyph(screen Image, glyphs GlyphRasterizer, ch rune, tint color.Color, dst image.Rectangle) error {
	if dst.Empty() {
		return nil
	}
	img, err := glyphs.RasterizeGlyph(ch, tint)
	if err != nil {
		return err
	}
	screen.DrawImage(img, &DrawImageOptions{Dst: dst})
	img.Dispose()
	return nil
}
