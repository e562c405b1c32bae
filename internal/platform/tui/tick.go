// Package tui provides the Bubble Tea integration for the breakout game.
// It handles the terminal UI loop, input mapping, run history and SSH hosting.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameTime caps the step taken after a stalled tick.
const maxFrameTime = 50 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds elapsed between two ticks, clamped to
// maxFrameTime. A zero last tick yields one nominal frame.
func frameDelta(last, now time.Time, tickRate int) float32 {
	if last.IsZero() {
		if tickRate <= 0 {
			tickRate = 60
		}
		return 1 / float32(tickRate)
	}
	d := now.Sub(last)
	if d < 0 {
		d = 0
	}
	if d > maxFrameTime {
		d = maxFrameTime
	}
	return float32(d.Seconds())
}
