package game

import (
	"log"

	"chosenoffset.com/fabricof/internal/core/fog"
	"chosenoffset.com/fabricof/internal/core/viewport"
	"chosenoffset.com/fabricof/internal/render"
	"chosenoffset.com/fabricof/internal/scene"
	"chosenoffset.com/fabricof/internal/settings"
	"chosenoffset.com/fabricof/internal/ui/textbox"
)

// RunState is the loop state. The only transition is Running → Stopped.
type RunState int

const (
	Running RunState = iota
	Stopped
)

func (s RunState) String() string {
	if s == Stopped {
		return "Stopped"
	}
	return "Running"
}

// GameState is all mutable loop state. It is owned by the loop and passed by
// pointer through each phase of a tick.
type GameState struct {
	Run RunState

	// Character and what it has uncovered
	Character *scene.Sprite
	Reveal    *fog.Tracker

	// Dialogue
	Textbox *textbox.Panel

	// Presentation
	Viewport      viewport.Viewport
	ViewportDirty bool
	WindowSizes   []viewport.Size
	SizeIndex     int
	Fullscreen    bool

	window    render.Window
	clipboard Clipboard
}

// Stop ends the loop.
func (s *GameState) Stop() {
	if s.Run == Stopped {
		return
	}
	s.Run = Stopped
	log.Println("[Game] Stopping")
}

// ToggleFullscreen flips fullscreen and applies it to the window.
func (s *GameState) ToggleFullscreen() {
	s.Fullscreen = !s.Fullscreen
	s.window.SetFullscreen(s.Fullscreen)
	s.ViewportDirty = true
}

// NextWindowSize cycles to the next candidate size. It does nothing while
// fullscreen.
func (s *GameState) NextWindowSize() bool {
	if s.Fullscreen || len(s.WindowSizes) == 0 {
		return false
	}
	s.SizeIndex = (s.SizeIndex + 1) % len(s.WindowSizes)
	size := s.WindowSizes[s.SizeIndex]
	s.window.SetSize(size.Width, size.Height)
	s.ViewportDirty = true
	return true
}

// MoveCharacter shifts the character horizontally. Position is unbounded.
func (s *GameState) MoveCharacter(dx float64) {
	s.Character.Move(dx)
}

// ScrollText scrolls the textbox, clamped to its range.
func (s *GameState) ScrollText(delta int) {
	s.Textbox.Scroll(delta)
}

// CopyTranscript writes the wrapped dialogue to the clipboard. Failure is
// logged and ignored.
func (s *GameState) CopyTranscript() {
	if s.clipboard == nil {
		return
	}
	if err := s.clipboard.WriteAll(s.Textbox.Transcript()); err != nil {
		log.Printf("[Game] Warning: copy to clipboard failed: %v", err)
		return
	}
	log.Println("[Game] Transcript copied to clipboard")
}

// Display returns the preferences worth persisting.
func (s *GameState) Display() settings.Display {
	return settings.Display{
		SizeIndex:  s.SizeIndex,
		Fullscreen: s.Fullscreen,
	}
}

// ensureViewport recomputes the viewport when it is dirty or no longer
// matches the surface size.
func (s *GameState) ensureViewport(width, height int) {
	if !s.ViewportDirty && s.Viewport.Width == width && s.Viewport.Height == height {
		return
	}
	s.Viewport = viewport.New(width, height)
	s.ViewportDirty = false
}
