package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		World: BreakoutWorld{
			Width:            2200,
			Height:           1200,
			LevelHeightRatio: 0.5,
		},
		Player: BreakoutPlayer{
			Width:  200,
			Height: 50,
			Speed:  1000,
		},
		Ball: BreakoutBall{
			Radius:         25,
			Velocity:       Vec2{300, -950},
			PaddleStrength: 2.0,
		},
		Gameplay: BreakoutGameplay{
			Lives:        3,
			ShakeSeconds: 0.05,
			Particles: BreakoutParticles{
				Amount:   500,
				PerFrame: 2,
			},
		},
		PowerUps: BreakoutPowerUps{
			Types: map[string]PowerUpRule{
				"speed":             {Chance: 75},
				"sticky":            {Chance: 75, Duration: 20},
				"pass-through":      {Chance: 75, Duration: 10},
				"pad-size-increase": {Chance: 75},
				"confuse":           {Chance: 15, Duration: 15},
				"chaos":             {Chance: 15, Duration: 15},
			},
			FallSpeed:   300,
			Size:        Vec2{120, 40},
			SpeedFactor: 1.2,
			PadIncrease: 50,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
