// Package input translates per-tick key events into game state changes.
package input

import (
	"chosenoffset.com/fabricof/internal/config"
	"chosenoffset.com/fabricof/internal/render"
)

// Target is the state the controller drives.
type Target interface {
	// Stop ends the loop. It is terminal.
	Stop()
	// ToggleFullscreen flips fullscreen and applies it to the window.
	ToggleFullscreen()
	// NextWindowSize advances to the next window size. It reports false
	// when sizing is unavailable, e.g. while fullscreen.
	NextWindowSize() bool
	// MoveCharacter shifts the character horizontally by dx cells.
	MoveCharacter(dx float64)
	// ScrollText moves the textbox window by delta lines.
	ScrollText(delta int)
	// CopyTranscript places the dialogue transcript on the clipboard.
	CopyTranscript()
}

// Outcome reports what a tick of input changed.
type Outcome struct {
	Stopped       bool
	ViewportDirty bool
}

// Controller tracks held keys across ticks and applies bindings.
type Controller struct {
	movement config.MovementConfig
	held     map[render.Key]bool
	tapped   map[render.Key]bool // pressed during the current tick
}

// NewController creates a controller with the given movement tuning.
func NewController(movement config.MovementConfig) *Controller {
	return &Controller{
		movement: movement,
		held:     make(map[render.Key]bool),
		tapped:   make(map[render.Key]bool),
	}
}

// Apply processes one tick of events against target. dt is the elapsed time
// since the previous tick in seconds and scales held-key movement.
func (c *Controller) Apply(target Target, events []render.Event, dt float64) Outcome {
	var out Outcome
	clear(c.tapped)

	for _, ev := range events {
		switch ev.Kind {
		case render.EventQuit:
			target.Stop()
			out.Stopped = true
			return out
		case render.EventKeyUp:
			delete(c.held, ev.Key)
		case render.EventKeyDown:
			c.held[ev.Key] = true
			c.tapped[ev.Key] = true

			switch ev.Key {
			case render.KeyEscape:
				target.Stop()
				out.Stopped = true
				return out
			case render.KeyF:
				target.ToggleFullscreen()
				out.ViewportDirty = true
			case render.KeyR:
				if target.NextWindowSize() {
					out.ViewportDirty = true
				}
			case render.KeyUp, render.KeyPageUp:
				target.ScrollText(-1)
			case render.KeyDown, render.KeyPageDown:
				target.ScrollText(1)
			case render.KeyC:
				target.CopyTranscript()
			}
		}
	}

	dir := 0.0
	if c.active(render.KeyLeft) {
		dir--
	}
	if c.active(render.KeyRight) {
		dir++
	}
	if dir != 0 {
		target.MoveCharacter(dir * c.movement.Step(dt))
	}

	return out
}

// Held reports whether k is currently held down.
func (c *Controller) Held(k render.Key) bool {
	return c.held[k]
}

// active reports whether k drives movement this tick. A key tapped and
// released inside one tick still counts.
func (c *Controller) active(k render.Key) bool {
	return c.held[k] || c.tapped[k]
}
