// Package glyph rasterizes single characters from a TrueType font into small
// RGBA cell images. It is backend independent; the ebiten backend uploads the
// result as a texture.
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrUnsupported is returned when the font has no glyph for a rune.
var ErrUnsupported = errors.New("glyph: rune not in font")

// Face draws glyphs into fixed-size cells.
type Face struct {
	face       font.Face
	cellWidth  int
	cellHeight int
	ascent     int
}

// Load reads a TrueType/OpenType font from path at the given pixel size. An
// empty path selects the embedded Go Mono face.
func Load(path string, size float64, cellWidth, cellHeight int) (*Face, error) {
	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		data = b
	}
	return Parse(data, size, cellWidth, cellHeight)
}

// Parse builds a Face from raw font data.
func Parse(data []byte, size float64, cellWidth, cellHeight int) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return &Face{
		face:       face,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		ascent:     face.Metrics().Ascent.Ceil(),
	}, nil
}

// Has reports whether the font can draw ch.
func (f *Face) Has(ch rune) bool {
	_, ok := f.face.GlyphAdvance(ch)
	return ok
}

// Rasterize draws ch in tint onto a new transparent cell image.
func (f *Face) Rasterize(ch rune, tint color.Color) (*image.RGBA, error) {
	if !f.Has(ch) {
		return nil, ErrUnsupported
	}
	dst := image.NewRGBA(image.Rect(0, 0, f.cellWidth, f.cellHeight))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(tint),
		Face: f.face,
		Dot:  fixed.P(0, f.ascent),
	}
	d.DrawString(string(ch))
	return dst, nil
}

// Close releases the underlying face.
func (f *Face) Close() error {
	return f.face.Close()
}
