package breakout

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// PowerUpType is the closed set of power-up kinds.
type PowerUpType int

const (
	PowerUpSpeed PowerUpType = iota
	PowerUpSticky
	PowerUpPassThrough
	PowerUpPadSizeIncrease
	PowerUpConfuse
	PowerUpChaos
	PowerUpCount // Sentinel for counting types
)

var powerUpNames = [PowerUpCount]string{
	PowerUpSpeed:           "speed",
	PowerUpSticky:          "sticky",
	PowerUpPassThrough:     "pass-through",
	PowerUpPadSizeIncrease: "pad-size-increase",
	PowerUpConfuse:         "confuse",
	PowerUpChaos:           "chaos",
}

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	if t < 0 || t >= PowerUpCount {
		return "?"
	}
	return powerUpNames[t]
}

// ParsePowerUpType looks a type up by name.
func ParsePowerUpType(name string) (PowerUpType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range powerUpNames {
		if n == name {
			return PowerUpType(t), nil
		}
	}
	return 0, fmt.Errorf("unknown power-up type %q", name)
}

// PowerUpState is the power-up capability of a falling entity.
type PowerUpState struct {
	Type      PowerUpType
	Duration  float32 // seconds left once activated; 0 for instantaneous types
	Activated bool    // the timed effect is in force
}

// EffectTargets are the objects power-up effects modify.
type EffectTargets struct {
	Ball       *Entity
	Paddle     *Entity
	Effects    *PostEffects
	WorldWidth float32 // paddle is kept inside [0, WorldWidth]; 0 disables
}

// keepPaddleInside pulls the paddle back inside the world after it grew,
// carrying a stuck ball along.
func (t EffectTargets) keepPaddleInside() {
	if t.WorldWidth <= 0 {
		return
	}
	maxX := max(t.WorldWidth-t.Paddle.Size.X(), 0)
	x := mgl32.Clamp(t.Paddle.Position.X(), 0, maxX)
	moved := x - t.Paddle.Position.X()
	t.Paddle.Position[0] = x
	if t.Ball.Stuck() {
		t.Ball.Position[0] += moved
	}
}

// powerUpKind describes one power-up type. Instantaneous kinds apply once on
// pickup and have no revert.
type powerUpKind struct {
	color   core.RGB
	instant bool
	apply   func(t EffectTargets, cfg *PowerUpConfig)
	revert  func(t EffectTargets)
}

var powerUpKinds = [PowerUpCount]powerUpKind{
	PowerUpSpeed: {
		color:   core.NewRGB(0.5, 0.5, 1.0),
		instant: true,
		apply: func(t EffectTargets, cfg *PowerUpConfig) {
			t.Ball.Velocity = t.Ball.Velocity.Mul(cfg.SpeedFactor)
		},
	},
	PowerUpSticky: {
		color: core.NewRGB(1.0, 0.5, 1.0),
		apply: func(t EffectTargets, cfg *PowerUpConfig) {
			t.Ball.Collider.Sticky = true
			t.Paddle.Color = cfg.StickyColor
		},
		revert: func(t EffectTargets) {
			t.Ball.Collider.Sticky = false
			t.Paddle.Color = core.White
		},
	},
	PowerUpPassThrough: {
		color: core.NewRGB(0.5, 1.0, 0.5),
		apply: func(t EffectTargets, cfg *PowerUpConfig) {
			t.Ball.Collider.PassThrough = true
			t.Ball.Color = cfg.PassThroughColor
		},
		revert: func(t EffectTargets) {
			t.Ball.Collider.PassThrough = false
			t.Ball.Color = core.White
		},
	},
	PowerUpPadSizeIncrease: {
		color:   core.NewRGB(1.0, 0.6, 0.4),
		instant: true,
		apply: func(t EffectTargets, cfg *PowerUpConfig) {
			t.Paddle.Size[0] += cfg.PadIncrease
			t.keepPaddleInside()
		},
	},
	PowerUpConfuse: {
		color: core.NewRGB(1.0, 0.3, 0.3),
		apply: func(t EffectTargets, _ *PowerUpConfig) {
			t.Effects.SetConfuse(true)
		},
		revert: func(t EffectTargets) {
			t.Effects.SetConfuse(false)
		},
	},
	PowerUpChaos: {
		color: core.NewRGB(0.9, 0.25, 0.25),
		apply: func(t EffectTargets, _ *PowerUpConfig) {
			t.Effects.SetChaos(true)
		},
		revert: func(t EffectTargets) {
			t.Effects.SetChaos(false)
		},
	},
}

// kind returns the table entry for t. An out-of-range type is a programming
// error: debug builds panic, release builds get an inert kind.
func (t PowerUpType) kind() powerUpKind {
	if t < 0 || t >= PowerUpCount {
		if debugAssertions {
			panic(fmt.Sprintf("breakout: unknown power-up type %d", int(t)))
		}
		return powerUpKind{}
	}
	return powerUpKinds[t]
}

// Instantaneous reports whether the type applies once and never expires.
func (t PowerUpType) Instantaneous() bool {
	return t.kind().instant
}

// Color returns the tint of a falling power-up of this type.
func (t PowerUpType) Color() core.RGB {
	return t.kind().color
}

// PowerUpRule sets how often a type spawns and how long it lasts.
type PowerUpRule struct {
	Chance   int     // spawn when a roll in [0, Chance) comes up 0
	Duration float32 // seconds; ignored for instantaneous types
}

// PowerUpConfig holds power-up spawning and effect parameters.
type PowerUpConfig struct {
	Rules            [PowerUpCount]PowerUpRule
	Size             mgl32.Vec2
	FallSpeed        float32
	SpeedFactor      float32 // ball velocity multiplier for speed
	PadIncrease      float32 // paddle width added by pad-size-increase
	StickyColor      core.RGB
	PassThroughColor core.RGB
}

// DefaultPowerUpConfig returns default power-up configuration. Confuse and
// chaos roll against a smaller chance, so they drop more often.
func DefaultPowerUpConfig() PowerUpConfig {
	return PowerUpConfig{
		Rules: [PowerUpCount]PowerUpRule{
			PowerUpSpeed:           {Chance: 75},
			PowerUpSticky:          {Chance: 75, Duration: 20},
			PowerUpPassThrough:     {Chance: 75, Duration: 10},
			PowerUpPadSizeIncrease: {Chance: 75},
			PowerUpConfuse:         {Chance: 15, Duration: 15},
			PowerUpChaos:           {Chance: 15, Duration: 15},
		},
		Size:             mgl32.Vec2{120, 40},
		FallSpeed:        300,
		SpeedFactor:      1.2,
		PadIncrease:      50,
		StickyColor:      core.NewRGB(1.0, 0.5, 1.0),
		PassThroughColor: core.NewRGB(1.0, 0.5, 0.5),
	}
}

// RandSource supplies uniform integers in [0, n).
type RandSource interface {
	Intn(n int) int
}

// PowerUpManager spawns, collects, ages and expires power-ups.
type PowerUpManager struct {
	Config   PowerUpConfig
	PowerUps []*Entity // live power-ups, falling or with an effect in force
	RNG      RandSource
}

// NewPowerUpManager creates a manager drawing spawn rolls from rng.
func NewPowerUpManager(rng RandSource, cfg PowerUpConfig) *PowerUpManager {
	return &PowerUpManager{
		Config:   cfg,
		PowerUps: make([]*Entity, 0),
		RNG:      rng,
	}
}

// Reset drops every power-up without reverting effects.
func (pm *PowerUpManager) Reset() {
	pm.PowerUps = pm.PowerUps[:0]
}

// Spawn rolls once per type, independently, and drops a power-up at pos for
// every roll that hits. Returns the number spawned.
func (pm *PowerUpManager) Spawn(pos mgl32.Vec2) int {
	spawned := 0
	for t := PowerUpType(0); t < PowerUpCount; t++ {
		rule := pm.Config.Rules[t]
		if !shouldSpawn(pm.RNG, rule.Chance) {
			continue
		}

		duration := rule.Duration
		if t.Instantaneous() {
			duration = 0
		}

		p := NewEntity(pos, pm.Config.Size, SpritePowerUp, mgl32.Vec2{0, pm.Config.FallSpeed})
		p.Color = t.Color()
		p.PowerUp = &PowerUpState{Type: t, Duration: duration}
		pm.PowerUps = append(pm.PowerUps, &p)
		spawned++
	}
	return spawned
}

func shouldSpawn(rng RandSource, chance int) bool {
	if chance <= 0 || rng == nil {
		return false
	}
	return rng.Intn(chance) == 0
}

// Collect picks up every live power-up touching the paddle, applying its
// effect, and destroys those that fell below bottom without being caught.
// Returns the types collected, in collection order.
func (pm *PowerUpManager) Collect(t EffectTargets, bottom float32) []PowerUpType {
	var collected []PowerUpType
	for _, p := range pm.PowerUps {
		if p.Destroyed {
			continue
		}
		if Overlaps(t.Paddle, p) {
			pm.Activate(p, t)
			collected = append(collected, p.PowerUp.Type)
			continue
		}
		if p.Position.Y() >= bottom {
			p.Destroyed = true
		}
	}
	return collected
}

// Activate applies a power-up's effect and marks it consumed and in force.
func (pm *PowerUpManager) Activate(p *Entity, t EffectTargets) {
	p.Destroyed = true
	p.PowerUp.Activated = true
	if apply := p.PowerUp.Type.kind().apply; apply != nil {
		apply(t, &pm.Config)
	}
}

// Update moves power-ups, counts down active effects and reverts those that
// expire unless another activated power-up of the same type still holds
// the effect. Power-ups that are consumed and no longer in force are removed.
func (pm *PowerUpManager) Update(dt float32, t EffectTargets) {
	for _, p := range pm.PowerUps {
		p.Integrate(dt)
		if !p.PowerUp.Activated {
			continue
		}
		p.PowerUp.Duration -= dt
		if p.PowerUp.Duration > 0 {
			continue
		}
		p.PowerUp.Activated = false
		if pm.IsOtherActive(p.PowerUp.Type) {
			continue
		}
		if revert := p.PowerUp.Type.kind().revert; revert != nil {
			revert(t)
		}
	}

	live := pm.PowerUps[:0]
	for _, p := range pm.PowerUps {
		if p.Destroyed && !p.PowerUp.Activated {
			continue
		}
		live = append(live, p)
	}
	for i := len(live); i < len(pm.PowerUps); i++ {
		pm.PowerUps[i] = nil
	}
	pm.PowerUps = live
}

// IsOtherActive reports whether any power-up of type typ is still activated.
func (pm *PowerUpManager) IsOtherActive(typ PowerUpType) bool {
	return pm.ActiveCount(typ) > 0
}

// ActiveCount returns how many power-ups of type typ are activated.
func (pm *PowerUpManager) ActiveCount(typ PowerUpType) int {
	count := 0
	for _, p := range pm.PowerUps {
		if p.PowerUp.Activated && p.PowerUp.Type == typ {
			count++
		}
	}
	return count
}

// Remaining returns the longest remaining duration among activated
// power-ups of type typ, or 0.
func (pm *PowerUpManager) Remaining(typ PowerUpType) float32 {
	var longest float32
	for _, p := range pm.PowerUps {
		if p.PowerUp.Activated && p.PowerUp.Type == typ && p.PowerUp.Duration > longest {
			longest = p.PowerUp.Duration
		}
	}
	return longest
}
