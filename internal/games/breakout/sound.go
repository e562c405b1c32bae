package breakout

// Sound is a sound effect the simulation asks the audio host to play.
type Sound int

const (
	SoundBleep   Sound = iota // destructible brick destroyed
	SoundSolid                // solid brick hit
	SoundPowerUp              // power-up collected
	SoundPaddle               // ball bounced off the paddle
	SoundCount
)

// String returns the name of the sound.
func (s Sound) String() string {
	switch s {
	case SoundBleep:
		return "bleep"
	case SoundSolid:
		return "solid"
	case SoundPowerUp:
		return "powerup"
	case SoundPaddle:
		return "paddle"
	default:
		return "?"
	}
}

// SoundPlayer plays sound effects. Play must not block the frame.
type SoundPlayer interface {
	Play(s Sound)
}

// NopSounds discards every sound.
type NopSounds struct{}

// Play does nothing.
func (NopSounds) Play(Sound) {}
