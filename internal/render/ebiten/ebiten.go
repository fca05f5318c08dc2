package ebiten

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/fabricof/internal/glyph"
	"chosenoffset.com/fabricof/internal/render"
)

// Used when the monitor cannot be queried before the main loop starts.
const (
	fallbackMonitorWidth  = 1280
	fallbackMonitorHeight = 800
)

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// DrawImage draws src scaled into opts.Dst. A nil opts draws src unscaled at
// the origin; an empty Dst draws nothing.
func (i *EbitenImage) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	srcImg := src.(*EbitenImage).img

	ebitenOpts, ok := drawOptions(srcImg.Bounds().Dx(), srcImg.Bounds().Dy(), opts)
	if !ok {
		return
	}
	i.img.DrawImage(srcImg, ebitenOpts)
}

// drawOptions converts opts for a srcW×srcH source. It reports false when
// there is nothing to draw.
func drawOptions(srcW, srcH int, opts *render.DrawImageOptions) (*ebiten.DrawImageOptions, bool) {
	if opts == nil {
		return nil, true
	}
	if opts.Dst.Empty() {
		return nil, false
	}
	ebitenOpts := &ebiten.DrawImageOptions{}
	ebitenOpts.GeoM = dstGeoM(srcW, srcH, opts)
	return ebitenOpts, true
}

// dstGeoM maps a srcW×srcH image onto opts.Dst.
func dstGeoM(srcW, srcH int, opts *render.DrawImageOptions) ebiten.GeoM {
	var geoM ebiten.GeoM
	if srcW > 0 && srcH > 0 {
		geoM.Scale(float64(opts.Dst.Dx())/float64(srcW), float64(opts.Dst.Dy())/float64(srcH))
	}
	geoM.Translate(float64(opts.Dst.Min.X), float64(opts.Dst.Min.Y))
	return geoM
}

// WrapEbitenImage wraps an existing ebiten.Image as a render.Image.
func WrapEbitenImage(img *ebiten.Image) render.Image {
	return &EbitenImage{img: img}
}

// GlyphRasterizer uploads glyphs from a font face as ebiten images.
type GlyphRasterizer struct {
	face *glyph.Face
}

// NewGlyphRasterizer creates a rasterizer backed by face.
func NewGlyphRasterizer(face *glyph.Face) *GlyphRasterizer {
	return &GlyphRasterizer{face: face}
}

// RasterizeGlyph implements render.GlyphRasterizer.
func (r *GlyphRasterizer) RasterizeGlyph(ch rune, tint color.Color) (render.Image, error) {
	img, err := r.face.Rasterize(ch, tint)
	if err != nil {
		if errors.Is(err, glyph.ErrUnsupported) {
			return nil, render.ErrGlyphUnsupported
		}
		return nil, err
	}
	return &EbitenImage{img: ebiten.NewImageFromImage(img)}, nil
}

// EbitenWindow implements render.Window over the ebiten window.
type EbitenWindow struct{}

// NewWindow returns the ebiten window.
func NewWindow() *EbitenWindow {
	return &EbitenWindow{}
}

// SetTitle sets the window title.
func (w *EbitenWindow) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetSize sets the window size in pixels.
func (w *EbitenWindow) SetSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// Size returns the window size in pixels.
func (w *EbitenWindow) Size() (int, int) {
	return ebiten.WindowSize()
}

// SetResizable enables or disables window resizing.
func (w *EbitenWindow) SetResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetFullscreen switches desktop fullscreen on or off.
func (w *EbitenWindow) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

// IsFullscreen reports whether the window is fullscreen.
func (w *EbitenWindow) IsFullscreen() bool {
	return ebiten.IsFullscreen()
}

// MonitorSize returns the size of the current monitor.
func (w *EbitenWindow) MonitorSize() (int, int) {
	width, height := ebiten.Monitor().Size()
	if width == 0 || height == 0 {
		return fallbackMonitorWidth, fallbackMonitorHeight
	}
	return width, height
}

// boundKeys are the keys reported as events.
var boundKeys = map[ebiten.Key]render.Key{
	ebiten.KeyEscape:     render.KeyEscape,
	ebiten.KeyF:          render.KeyF,
	ebiten.KeyR:          render.KeyR,
	ebiten.KeyC:          render.KeyC,
	ebiten.KeyArrowLeft:  render.KeyLeft,
	ebiten.KeyArrowRight: render.KeyRight,
	ebiten.KeyArrowUp:    render.KeyUp,
	ebiten.KeyArrowDown:  render.KeyDown,
	ebiten.KeyPageUp:     render.KeyPageUp,
	ebiten.KeyPageDown:   render.KeyPageDown,
}

// EbitenInputSource turns ebiten key state transitions into events.
type EbitenInputSource struct {
	keys []ebiten.Key
}

// NewInputSource creates a new Ebiten-based input source.
func NewInputSource() *EbitenInputSource {
	return &EbitenInputSource{}
}

// Poll returns this tick's key transitions and a quit event when the window
// is being closed.
func (s *EbitenInputSource) Poll() []render.Event {
	var events []render.Event
	if ebiten.IsWindowBeingClosed() {
		events = append(events, render.Event{Kind: render.EventQuit})
	}

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	events = appendKeyEvents(events, render.EventKeyDown, s.keys)

	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	events = appendKeyEvents(events, render.EventKeyUp, s.keys)

	return events
}

func appendKeyEvents(events []render.Event, kind render.EventKind, keys []ebiten.Key) []render.Event {
	for _, k := range keys {
		if key, ok := boundKeys[k]; ok {
			events = append(events, render.Event{Kind: kind, Key: key})
		}
	}
	return events
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct {
	tps int
}

// NewEngine creates a new Ebiten-based game engine ticking at tps.
func NewEngine(tps int) *EbitenEngine {
	return &EbitenEngine{tps: tps}
}

// RunGame runs the game loop with the provided game. A render.ErrTerminate
// from Update ends the loop and RunGame returns nil.
func (e *EbitenEngine) RunGame(game render.Game) error {
	ebiten.SetTPS(e.tps)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(&gameAdapter{game: game})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrTerminate) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
