package audio

import (
	"testing"
	"time"
)

func TestToneLength(t *testing.T) {
	duration := 50 * time.Millisecond
	tone, err := newTone(660, duration)
	if err != nil {
		t.Fatalf("newTone failed: %v", err)
	}

	want := sampleRate.N(duration)
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := tone.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("Sample %d out of range: %f", total-n+i, buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
}

func TestToneRejectsBadInput(t *testing.T) {
	if _, err := newTone(660, 0); err == nil {
		t.Error("Expected an error for zero duration")
	}
	// Above Nyquist for 44.1kHz.
	if _, err := newTone(30000, time.Millisecond); err == nil {
		t.Error("Expected an error for a tone above the Nyquist frequency")
	}
}

func TestSilentPlayer(t *testing.T) {
	var p Player = Silent{}
	p.Reveal(10)
	p.Close()
}
