package breakout

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Particle is one short-lived trail sprite. It is dead once Life reaches 0.
type Particle struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Color    core.RGB
	Alpha    float32
	Life     float32 // seconds left
}

// Alive reports whether the particle should be simulated and drawn.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// ParticleConfig sizes the pool and shapes each particle.
type ParticleConfig struct {
	Amount   int     // fixed pool capacity
	PerFrame int     // particles respawned every update
	Life     float32 // seconds a particle lives
	Fade     float32 // alpha lost per second
}

// DefaultParticleConfig returns the ball trail configuration.
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		Amount:   500,
		PerFrame: 2,
		Life:     1.0,
		Fade:     2.0,
	}
}

// ParticlePool is a fixed-capacity pool of particles emitted from an entity.
type ParticlePool struct {
	cfg       ParticleConfig
	particles []Particle
	lastUsed  int
	rng       RandSource
}

// NewParticlePool allocates every particle up front, all dead.
func NewParticlePool(cfg ParticleConfig, rng RandSource) *ParticlePool {
	return &ParticlePool{
		cfg:       cfg,
		particles: make([]Particle, max(cfg.Amount, 0)),
		rng:       rng,
	}
}

// Update respawns newParticles particles at the emitter, offset by offset,
// then ages every live particle. Particles drift against the emitter's
// velocity and fade out.
func (pp *ParticlePool) Update(dt float32, emitter *Entity, newParticles int, offset mgl32.Vec2) {
	if len(pp.particles) == 0 {
		return
	}
	for range newParticles {
		pp.respawn(&pp.particles[pp.firstUnused()], emitter, offset)
	}

	for i := range pp.particles {
		p := &pp.particles[i]
		p.Life -= dt
		if p.Life > 0 {
			p.Position = p.Position.Sub(p.Velocity.Mul(dt))
			p.Alpha -= dt * pp.cfg.Fade
		}
	}
}

// firstUnused scans for a dead particle starting from the last one handed
// out, wrapping once. If every particle is alive the first one is reused.
func (pp *ParticlePool) firstUnused() int {
	for i := pp.lastUsed; i < len(pp.particles); i++ {
		if !pp.particles[i].Alive() {
			pp.lastUsed = i
			return i
		}
	}
	for i := 0; i < pp.lastUsed; i++ {
		if !pp.particles[i].Alive() {
			pp.lastUsed = i
			return i
		}
	}
	pp.lastUsed = 0
	return 0
}

func (pp *ParticlePool) respawn(p *Particle, emitter *Entity, offset mgl32.Vec2) {
	var jitter, shade float32
	if pp.rng != nil {
		jitter = float32(pp.rng.Intn(100)-50) / 10
		shade = 0.5 + float32(pp.rng.Intn(100))/100
	} else {
		shade = 0.5
	}
	p.Position = emitter.Position.Add(mgl32.Vec2{jitter, jitter}).Add(offset)
	p.Color = core.NewRGB(shade, shade, shade)
	p.Alpha = 1
	p.Life = pp.cfg.Life
	p.Velocity = emitter.Velocity.Mul(0.1)
}

// Reset kills every particle.
func (pp *ParticlePool) Reset() {
	for i := range pp.particles {
		pp.particles[i] = Particle{}
	}
	pp.lastUsed = 0
}

// Particles returns the pool's backing slice. Callers must skip dead entries.
func (pp *ParticlePool) Particles() []Particle {
	return pp.particles
}

// LiveCount returns the number of live particles.
func (pp *ParticlePool) LiveCount() int {
	n := 0
	for i := range pp.particles {
		if pp.particles[i].Alive() {
			n++
		}
	}
	return n
}
