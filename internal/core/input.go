package core

// Key is a physical key code understood by the simulation.
// Hosts translate their own key events into these codes.
type Key int

const (
	KeyNone   Key = iota
	KeyEnter      // start game, acknowledge win
	KeyEscape     // quit from the win screen
	KeySpace      // release the ball
	KeyW          // next level in menu
	KeyA          // paddle left
	KeyS          // previous level in menu
	KeyD          // paddle right
	KeyCount      // Sentinel for array sizing
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	default:
		return "Unknown"
	}
}

func (k Key) valid() bool {
	return k > KeyNone && k < KeyCount
}

// KeyState holds which keys are held down and which of those presses the game
// has already acted on. Processed makes one-shot actions (menu selection,
// start, acknowledge) fire once per physical press instead of every frame the
// key stays down.
type KeyState struct {
	Pressed   [KeyCount]bool
	Processed [KeyCount]bool
}

// Press marks a key as held.
func (s *KeyState) Press(k Key) {
	if !k.valid() {
		return
	}
	s.Pressed[k] = true
}

// Release marks a key as up and re-arms its one-shot action.
func (s *KeyState) Release(k Key) {
	if !k.valid() {
		return
	}
	s.Pressed[k] = false
	s.Processed[k] = false
}

// ReleaseAll releases every key.
func (s *KeyState) ReleaseAll() {
	for k := KeyNone + 1; k < KeyCount; k++ {
		s.Release(k)
	}
}

// Down reports whether the key is currently held.
func (s *KeyState) Down(k Key) bool {
	return k.valid() && s.Pressed[k]
}

// TakeEdge reports whether the key is held and not yet processed, marking it
// processed when it is. Subsequent calls return false until the key is
// released and pressed again.
func (s *KeyState) TakeEdge(k Key) bool {
	if !k.valid() || !s.Pressed[k] || s.Processed[k] {
		return false
	}
	s.Processed[k] = true
	return true
}
