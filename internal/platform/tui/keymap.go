package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Terminals report key presses and auto-repeats but never releases. A key
// counts as held while its events keep arriving; it is released once none
// has been seen for the hold window. The first press gets a longer window
// to cover the terminal's initial repeat delay.
const (
	firstHoldWindow  = 550 * time.Millisecond
	repeatHoldWindow = 150 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game key.
// Returns the key (may be KeyNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (k core.Key, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.KeyNone, true
	case "enter":
		return core.KeyEnter, false
	case "esc":
		return core.KeyEscape, false
	case " ":
		return core.KeySpace, false
	case "w", "up":
		return core.KeyW, false
	case "s", "down":
		return core.KeyS, false
	case "a", "left":
		return core.KeyA, false
	case "d", "right":
		return core.KeyD, false
	}
	return core.KeyNone, false
}

// HoldTracker synthesizes key releases from the timing of repeated presses.
type HoldTracker struct {
	first    [core.KeyCount]time.Time // when the current hold started
	lastSeen [core.KeyCount]time.Time
}

// Press records an event for k at now and marks it held in keys.
func (h *HoldTracker) Press(k core.Key, now time.Time, keys *core.KeyState) {
	if k <= core.KeyNone || k >= core.KeyCount {
		return
	}
	if !keys.Down(k) {
		h.first[k] = now
	}
	h.lastSeen[k] = now
	keys.Press(k)
}

// Expire releases every held key whose hold window has passed.
func (h *HoldTracker) Expire(now time.Time, keys *core.KeyState) {
	for k := core.KeyNone + 1; k < core.KeyCount; k++ {
		if !keys.Down(k) {
			continue
		}
		window := repeatHoldWindow
		if h.lastSeen[k].Equal(h.first[k]) {
			window = firstHoldWindow
		}
		if now.Sub(h.lastSeen[k]) > window {
			keys.Release(k)
		}
	}
}
