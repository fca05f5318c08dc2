// Package audio plays the short chime heard when fog lifts.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Chimes closer together than this are dropped.
	minGap = 150 * time.Millisecond

	chimeGain = -0.75
)

// Player reacts to newly revealed landscape cells.
type Player interface {
	Reveal(newlyRevealed int)
	Close()
}

// Silent is a Player that does nothing.
type Silent struct{}

func (Silent) Reveal(int) {}
func (Silent) Close()     {}

// Chime plays a sine tone through the system speaker.
type Chime struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	toneHz   float64
	duration time.Duration
	last     time.Time
	now      func() time.Time
}

// NewChime initializes the speaker. The returned error is never fatal for the
// caller; fall back to Silent.
func NewChime(toneHz float64, duration time.Duration) (*Chime, error) {
	if _, err := newTone(toneHz, duration); err != nil {
		return nil, err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	c := &Chime{
		mixer:    &beep.Mixer{},
		toneHz:   toneHz,
		duration: duration,
		now:      time.Now,
	}
	speaker.Play(c.mixer)
	return c, nil
}

// Reveal plays the chime when at least one cell was revealed.
func (c *Chime) Reveal(newlyRevealed int) {
	if newlyRevealed <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.last) < minGap {
		return
	}
	c.last = now

	tone, err := newTone(c.toneHz, c.duration)
	if err != nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Close silences anything still playing and releases the speaker.
func (c *Chime) Close() {
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// newTone builds a finite, attenuated sine tone.
func newTone(hz float64, duration time.Duration) (beep.Streamer, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("chime duration must be positive, got %v", duration)
	}
	sine, err := generators.SineTone(sampleRate, hz)
	if err != nil {
		return nil, fmt.Errorf("failed to build chime tone: %w", err)
	}
	return &effects.Gain{
		Streamer: beep.Take(sampleRate.N(duration), sine),
		Gain:     chimeGain,
	}, nil
}
