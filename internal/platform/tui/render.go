package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// styleCache maps a tint's hex form to its lipgloss style.
type styleCache map[string]lipgloss.Style

var plainStyle = lipgloss.NewStyle()

func (c styleCache) style(cell core.Cell) lipgloss.Style {
	if !cell.Tinted {
		return plainStyle
	}
	hex := cell.Color.Hex()
	st, ok := c[hex]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		c[hex] = st
	}
	return st
}

// sameTint reports whether two cells render with the same style.
func sameTint(a, b core.Cell) bool {
	if a.Tinted != b.Tinted {
		return false
	}
	return !a.Tinted || a.Color.Hex() == b.Color.Hex()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := styleCache{}
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !sameTint(cell, start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styles.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
