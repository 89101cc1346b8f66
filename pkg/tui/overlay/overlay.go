// Package overlay composites a dialog over an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
)

// Placement controls overlay alignment. Zero positions center the overlay.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Compose draws foreground over background and returns the screen together
// with the top-left corner the foreground landed at. Background content
// outside the foreground's box is preserved.
func Compose(background string, width, height int, foreground string, placement Placement) (string, int, int) {
	bgLines := normalize(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bgLines, "\n"), 0, 0
	}

	fgLines := strings.Split(foreground, "\n")
	boxWidth := 0
	for _, line := range fgLines {
		if w := lipgloss.Width(line); w > boxWidth {
			boxWidth = w
		}
	}
	boxWidth = min(boxWidth, width)
	boxHeight := min(len(fgLines), height)

	x, y := Offsets(width, height, boxWidth, boxHeight, placement)
	for row := 0; row < boxHeight; row++ {
		base := bgLines[y+row]
		prefix := truncate.String(base, uint(x))
		suffix := sliceWidth(stripANSI(base), x+boxWidth, width)
		bgLines[y+row] = prefix + pad(fgLines[row], boxWidth) + suffix
	}
	return strings.Join(bgLines, "\n"), x, y
}

// Offsets returns where a box of the given size is placed on the screen.
func Offsets(width, height, boxWidth, boxHeight int, placement Placement) (int, int) {
	x := place(placement.Horizontal, width, boxWidth, placement.MarginX)
	y := place(placement.Vertical, height, boxHeight, placement.MarginY)
	return x, y
}

func place(pos lipgloss.Position, total, size, margin int) int {
	var offset int
	switch {
	case pos == 0 || pos == lipgloss.Center:
		offset = (total - size) / 2
	case pos == lipgloss.Right || pos == lipgloss.Bottom:
		offset = total - size - margin
	default:
		offset = margin
	}
	if offset > total-size {
		offset = total - size
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(lines[i], width)
	}
	return lines
}

func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w >= width {
		return truncate.String(s, uint(width))
	}
	return s + strings.Repeat(" ", width-w)
}

// sliceWidth cuts the printable cells [start, end) from a plain string.
func sliceWidth(s string, start, end int) string {
	if start >= end {
		return ""
	}
	var b strings.Builder
	seen := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		next := seen + rw
		if next <= start {
			seen = next
			continue
		}
		if next > end {
			break
		}
		b.WriteRune(r)
		seen = next
	}
	return b.String()
}

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == '\x1b' {
			inSeq = true
			continue
		}
		if inSeq {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
