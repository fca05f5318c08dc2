package game

import (
	"fmt"
	"image/color"
	"log"

	"chosenoffset.com/fabricof/internal/render"
)

var clearColor = color.RGBA{0, 0, 0, 255}

// Draw renders the scene and the textbox to the screen.
func (g *Game) Draw(screen render.Image) {
	w, h := screen.Size()
	g.State.ensureViewport(w, h)

	screen.Fill(clearColor)

	if err := g.compositor.Draw(screen, g.State.Viewport, g.State.Reveal, g.State.Character); err != nil {
		if g.drawErr == nil {
			g.drawErr = fmt.Errorf("draw character: %w", err)
		}
		return
	}
	if g.compositor.Skipped > 0 && g.FrameCount == 0 {
		log.Printf("[Game] Warning: %d glyphs not supported by the font were skipped", g.compositor.Skipped)
	}

	g.State.Textbox.Draw(screen, g.glyphs, g.State.Viewport)
	g.FrameCount++
}
