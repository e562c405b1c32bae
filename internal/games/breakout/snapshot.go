package breakout

import "math"

// EntityView is a read-only copy of what the renderer needs from an entity.
type EntityView struct {
	X, Y, W, H float32
	R, G, B    float32
	Sprite     SpriteID
}

// PowerUpView is a falling power-up or one whose effect is in force.
type PowerUpView struct {
	EntityView
	Type      PowerUpType
	Duration  float32
	Activated bool
	Destroyed bool
}

// Snapshot contains the observable game state at one instant.
// Uses plain values only so it can be compared and hashed.
type Snapshot struct {
	State      State
	Lives      int
	LevelIndex int
	LevelID    string

	Player EntityView
	Ball   EntityView
	BallVX float32
	BallVY float32

	Stuck       bool
	Sticky      bool
	PassThrough bool

	Bricks   []EntityView // bricks not yet destroyed, in storage order
	PowerUps []PowerUpView
	Effects  PostEffects

	Particles int // live particle count
}

func viewOf(e *Entity) EntityView {
	return EntityView{
		X: e.Position.X(), Y: e.Position.Y(),
		W: e.Size.X(), H: e.Size.Y(),
		R: e.Color.R, G: e.Color.G, B: e.Color.B,
		Sprite: e.Sprite,
	}
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	level := g.CurrentLevel()
	bricks := make([]EntityView, 0, len(level.Bricks))
	for i := range level.Bricks {
		if !level.Bricks[i].Destroyed {
			bricks = append(bricks, viewOf(&level.Bricks[i]))
		}
	}

	powerups := make([]PowerUpView, len(g.powerups.PowerUps))
	for i, p := range g.powerups.PowerUps {
		powerups[i] = PowerUpView{
			EntityView: viewOf(p),
			Type:       p.PowerUp.Type,
			Duration:   p.PowerUp.Duration,
			Activated:  p.PowerUp.Activated,
			Destroyed:  p.Destroyed,
		}
	}

	return Snapshot{
		State:      g.state,
		Lives:      g.lives,
		LevelIndex: g.level,
		LevelID:    level.ID,

		Player: viewOf(g.player),
		Ball:   viewOf(g.ball),
		BallVX: g.ball.Velocity.X(),
		BallVY: g.ball.Velocity.Y(),

		Stuck:       g.ball.Collider.Stuck,
		Sticky:      g.ball.Collider.Sticky,
		PassThrough: g.ball.Collider.PassThrough,

		Bricks:   bricks,
		PowerUps: powerups,
		Effects:  g.effects,

		Particles: g.particles.LiveCount(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.State)
	h = h*31 + uint64(snap.Lives)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex) //#nosec G115 -- hash computation
	h = h*31 + hashView(snap.Player)
	h = h*31 + hashView(snap.Ball)
	h = h*31 + uint64(math.Float32bits(snap.BallVX))
	h = h*31 + uint64(math.Float32bits(snap.BallVY))
	h = h*31 + hashBools(snap.Stuck, snap.Sticky, snap.PassThrough)
	h = h*31 + hashBools(snap.Effects.Confuse, snap.Effects.Chaos, snap.Effects.Shake)
	h = h*31 + uint64(snap.Particles) //#nosec G115 -- hash computation

	for _, b := range snap.Bricks {
		h = h*31 + hashView(b)
	}

	for _, p := range snap.PowerUps {
		h = h*31 + hashView(p.EntityView)
		h = h*31 + uint64(p.Type) //#nosec G115 -- hash computation
		h = h*31 + uint64(math.Float32bits(p.Duration))
		h = h*31 + hashBools(p.Activated, p.Destroyed)
	}

	return h
}

func hashView(v EntityView) uint64 {
	var h uint64
	for _, f := range [...]float32{v.X, v.Y, v.W, v.H, v.R, v.G, v.B} {
		h = h*31 + uint64(math.Float32bits(f))
	}
	return h*31 + uint64(v.Sprite) //#nosec G115 -- hash computation
}

func hashBools(bs ...bool) uint64 {
	var h uint64
	for _, b := range bs {
		h <<= 1
		if b {
			h |= 1
		}
	}
	return h
}
