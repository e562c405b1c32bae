// Package config provides YAML-based configuration loading for the breakout
// simulation and its difficulty presets.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// BreakoutConfig contains all configuration for the breakout game.
type BreakoutConfig struct {
	World    BreakoutWorld    `yaml:"world"`
	Player   BreakoutPlayer   `yaml:"player"`
	Ball     BreakoutBall     `yaml:"ball"`
	Gameplay BreakoutGameplay `yaml:"gameplay"`
	PowerUps BreakoutPowerUps `yaml:"powerups"`
	Levels   []string         `yaml:"levels"` // level files; empty means the built-in set
}

// Vec2 is a two-component YAML vector written as [x, y].
type Vec2 [2]float64

// X returns the first component.
func (v Vec2) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec2) Y() float64 { return v[1] }

// BreakoutWorld defines the simulation area in world units.
type BreakoutWorld struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	LevelHeightRatio float64 `yaml:"level_height_ratio"` // share of the height covered by bricks
}

// BreakoutPlayer defines the paddle.
type BreakoutPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // units per second
}

// BreakoutBall defines the ball.
type BreakoutBall struct {
	Radius         float64 `yaml:"radius"`
	Velocity       Vec2    `yaml:"velocity"`        // launch velocity
	PaddleStrength float64 `yaml:"paddle_strength"` // horizontal redirect scale on paddle hits
}

// BreakoutGameplay defines session rules.
type BreakoutGameplay struct {
	Lives        int               `yaml:"lives"`
	ShakeSeconds float64           `yaml:"shake_seconds"`
	Particles    BreakoutParticles `yaml:"particles"`
}

// BreakoutParticles defines the ball trail.
type BreakoutParticles struct {
	Amount   int `yaml:"amount"`
	PerFrame int `yaml:"per_frame"`
}

// BreakoutPowerUps defines power-up spawning and effects.
type BreakoutPowerUps struct {
	Types       map[string]PowerUpRule `yaml:"types"` // keyed by power-up name
	FallSpeed   float64                `yaml:"fall_speed"`
	Size        Vec2                   `yaml:"size"`
	SpeedFactor float64                `yaml:"speed_factor"`
	PadIncrease float64                `yaml:"pad_increase"`
}

// PowerUpRule sets the spawn chance and duration of one power-up type.
// A chance of 0 disables the type.
type PowerUpRule struct {
	Chance   int     `yaml:"chance"`
	Duration float64 `yaml:"duration"` // seconds
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. The empty string means
// no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// Validate reports every out-of-range value in the config.
func (c BreakoutConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0,
		"world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	check(c.World.LevelHeightRatio > 0 && c.World.LevelHeightRatio <= 1,
		"world.level_height_ratio must be in (0, 1], got %g", c.World.LevelHeightRatio)
	check(c.Player.Width > 0 && c.Player.Height > 0,
		"player size must be positive, got %gx%g", c.Player.Width, c.Player.Height)
	check(c.Player.Speed >= 0, "player.speed must not be negative, got %g", c.Player.Speed)
	check(c.Ball.Radius > 0, "ball.radius must be positive, got %g", c.Ball.Radius)
	check(c.Gameplay.Lives > 0, "gameplay.lives must be positive, got %d", c.Gameplay.Lives)
	check(c.Gameplay.ShakeSeconds >= 0, "gameplay.shake_seconds must not be negative")
	check(c.Gameplay.Particles.Amount >= 0 && c.Gameplay.Particles.PerFrame >= 0,
		"gameplay.particles values must not be negative")
	check(c.PowerUps.Size.X() > 0 && c.PowerUps.Size.Y() > 0,
		"powerups.size must be positive, got %v", c.PowerUps.Size)
	for name, rule := range c.PowerUps.Types {
		check(rule.Chance >= 0, "powerups.types.%s.chance must not be negative", name)
		check(rule.Duration >= 0, "powerups.types.%s.duration must not be negative", name)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid breakout config: %w", errors.Join(errs...))
	}
	return nil
}
