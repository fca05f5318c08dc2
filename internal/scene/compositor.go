package scene

import (
	"image/color"

	"chosenoffset.com/fabricof/internal/core/viewport"
	"chosenoffset.com/fabricof/internal/render"
)

// Layer tints. Each layer draws every glyph in one fixed colour.
var (
	BackgroundTint = color.RGBA{255, 255, 0, 255} // yellow
	LandscapeTint  = color.RGBA{0, 255, 0, 255}   // green
	CharacterTint  = color.RGBA{255, 0, 0, 255}   // red
)

// Visibility answers whether a landscape cell has been revealed.
type Visibility interface {
	IsRevealed(row, col int) bool
}

// Compositor draws the scene layers in fixed z-order: background, revealed
// landscape, then the character sprite.
type Compositor struct {
	Background Grid
	Landscape  Grid
	Glyphs     render.GlyphRasterizer

	// Skipped counts glyphs the rasterizer rejected during the last Draw.
	Skipped int
}

// NewCompositor creates a compositor for the given layers.
func NewCompositor(background, landscape Grid, glyphs render.GlyphRasterizer) *Compositor {
	return &Compositor{
		Background: background,
		Landscape:  landscape,
		Glyphs:     glyphs,
	}
}

// Draw renders all three layers. Visibility must already reflect the
// character's current position. The only error is ErrCoordinateOverflow.
func (c *Compositor) Draw(screen render.Image, vp viewport.Viewport, fog Visibility, sprite *Sprite) error {
	c.Skipped = 0
	c.drawBackground(screen, vp)
	c.drawLandscape(screen, vp, fog)
	return c.drawSprite(screen, vp, sprite)
}

func (c *Compositor) drawBackground(screen render.Image, vp viewport.Viewport) {
	for row, cells := range c.Background {
		for col, ch := range cells {
			if ch == ' ' || !viewport.InGrid(row, col) {
				continue
			}
			c.drawCell(screen, vp, row, col, ch, BackgroundTint)
		}
	}
}

func (c *Compositor) drawLandscape(screen render.Image, vp viewport.Viewport, fog Visibility) {
	for row, cells := range c.Landscape {
		for col, ch := range cells {
			if !fog.IsRevealed(row, col) {
				continue
			}
			// Revealed blanks stay transparent.
			if ch == ' ' || !viewport.InGrid(row, col) {
				continue
			}
			c.drawCell(screen, vp, row, col, ch, LandscapeTint)
		}
	}
}

func (c *Compositor) drawSprite(screen render.Image, vp viewport.Viewport, sprite *Sprite) error {
	if sprite == nil {
		return nil
	}
	originRow, originCol, err := sprite.CellPos()
	if err != nil {
		return err
	}
	for r, cells := range sprite.Cells {
		row, err := addCoord(originRow, r)
		if err != nil {
			return err
		}
		for i, ch := range cells {
			col, err := addCoord(originCol, i)
			if err != nil {
				return err
			}
			if ch == ' ' || !viewport.InGrid(row, col) {
				continue
			}
			c.drawCell(screen, vp, row, col, ch, CharacterTint)
		}
	}
	return nil
}

func (c *Compositor) drawCell(screen render.Image, vp viewport.Viewport, row, col int, ch rune, tint color.Color) {
	if err := render.DrawGlyph(screen, c.Glyphs, ch, tint, vp.CellRect(row, col)); err != nil {
		c.Skipped++
	}
}
