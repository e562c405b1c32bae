// Package audio plays the game's sound effects through the system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.2
)

// Speaker implements breakout.SoundPlayer on top of the beep speaker.
// A Speaker whose device failed to open stays silent.
type Speaker struct {
	mu      sync.Mutex
	enabled bool
}

// Open initializes the speaker. Failure is logged and yields a silent
// Speaker, so the game runs the same with or without an audio device.
func Open(logger *log.Logger) *Speaker {
	s := &Speaker{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return s
	}
	s.enabled = true
	return s
}

// Enabled reports whether sounds reach the device.
func (s *Speaker) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Play queues the effect and returns immediately.
func (s *Speaker) Play(snd breakout.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	if st := effect(snd); st != nil {
		speaker.Play(st)
	}
}

// Close releases the device. Later calls to Play do nothing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		speaker.Close()
		s.enabled = false
	}
}

// effect builds the streamer for a sound.
func effect(snd breakout.Sound) beep.Streamer {
	switch snd {
	case breakout.SoundBleep:
		return squareWave(660, 40*time.Millisecond)
	case breakout.SoundSolid:
		return squareWave(220, 60*time.Millisecond)
	case breakout.SoundPaddle:
		return squareWave(880, 50*time.Millisecond)
	case breakout.SoundPowerUp:
		// Rising arpeggio
		return beep.Seq(
			squareWave(523, 60*time.Millisecond),
			squareWave(659, 60*time.Millisecond),
			squareWave(784, 90*time.Millisecond),
		)
	default:
		return nil
	}
}

// squareWave generates a square wave tone at freq Hz lasting d.
func squareWave(freq float64, d time.Duration) beep.Streamer {
	numSamples := sampleRate.N(d)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, i > 0
			}
			val := volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}
