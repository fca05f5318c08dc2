package viewport

import (
	"image"
	"testing"
)

func TestCellRectDoubleScale(t *testing.T) {
	v := New(640, 400)

	got := v.CellRect(2, 3)
	want := image.Rect(48, 32, 64, 48)
	if got != want {
		t.Errorf("Expected rect %v, got %v", want, got)
	}
	if got.Dx() != 16 || got.Dy() != 16 {
		t.Errorf("Expected 16x16 cell, got %dx%d", got.Dx(), got.Dy())
	}
}

func TestCellRectTruncates(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		row, col      int
		want          image.Rectangle
	}{
		{"Base size", 320, 200, 1, 1, image.Rect(8, 8, 16, 16)},
		{"Fractional x scale", 500, 200, 0, 1, image.Rect(12, 0, 24, 8)},
		{"Fractional both", 333, 211, 3, 5, image.Rect(41, 25, 49, 33)},
		{"Independent axes", 960, 200, 2, 2, image.Rect(48, 16, 72, 24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.width, tt.height).CellRect(tt.row, tt.col)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewScales(t *testing.T) {
	v := New(960, 400)
	if v.ScaleX != 3 {
		t.Errorf("Expected ScaleX 3, got %v", v.ScaleX)
	}
	if v.ScaleY != 2 {
		t.Errorf("Expected ScaleY 2, got %v", v.ScaleY)
	}
}

func TestInGrid(t *testing.T) {
	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{24, 39, true},
		{25, 0, false},
		{0, 40, false},
		{0, 41, false},
		{-1, 5, false},
	}
	for _, tt := range tests {
		if got := InGrid(tt.row, tt.col); got != tt.want {
			t.Errorf("InGrid(%d, %d): expected %v, got %v", tt.row, tt.col, tt.want, got)
		}
	}
}

func TestWindowSizes(t *testing.T) {
	sizes := WindowSizes(1920, 1080)
	// 320x200 .. 1600x1000; 1920x1200 does not fit vertically.
	if len(sizes) != 5 {
		t.Fatalf("Expected 5 sizes, got %d: %v", len(sizes), sizes)
	}
	for i, s := range sizes {
		wantW := BaseWidth * (i + 1)
		if s.Width != wantW || s.Height != wantW*5/8 {
			t.Errorf("Size %d: expected %dx%d, got %dx%d", i, wantW, wantW*5/8, s.Width, s.Height)
		}
	}
}

func TestWindowSizesFallback(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"Only base fits", 400, 300},
		{"Nothing fits", 200, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sizes := WindowSizes(tt.width, tt.height)
			if len(sizes) < 2 {
				t.Fatalf("Expected at least 2 sizes, got %d", len(sizes))
			}
			for _, s := range sizes {
				if s.Width != BaseWidth || s.Height != BaseHeight {
					t.Errorf("Expected base size, got %dx%d", s.Width, s.Height)
				}
			}
		})
	}
}
