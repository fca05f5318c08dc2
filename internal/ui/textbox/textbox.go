// Package textbox provides the scrollable dialogue box.
// Dialogue entries are word-wrapped to a fixed column count and shown through
// a window of fixed height that the player scrolls line by line.
package textbox

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text into lines of at most width runes. Words are never split:
// a word longer than width is placed alone on its own line and overflows it.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var lines []string
	var currentLine string

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
			continue
		}
		if utf8.RuneCountInString(currentLine)+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

// WrapAll wraps every entry and concatenates the lines in source order.
func WrapAll(entries []string, width int) []string {
	var lines []string
	for _, entry := range entries {
		lines = append(lines, Wrap(entry, width)...)
	}
	return lines
}

// Paginate returns the wrapped lines in [offset, offset+visible), clamped to
// the available lines. It never pads and never fails.
func Paginate(entries []string, width, visible, offset int) []string {
	return window(WrapAll(entries, width), visible, offset)
}

// MaxScroll returns the largest useful scroll offset for the entries.
func MaxScroll(entries []string, width, visible int) int {
	return maxScroll(len(WrapAll(entries, width)), visible)
}

func window(lines []string, visible, offset int) []string {
	if offset < 0 {
		offset = 0
	}
	if visible < 0 {
		visible = 0
	}
	if offset >= len(lines) {
		return nil
	}
	if visible > len(lines)-offset {
		return lines[offset:]
	}
	return lines[offset : offset+visible]
}

func maxScroll(total, visible int) int {
	if total-visible < 0 {
		return 0
	}
	return total - visible
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
