package breakout

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// SpriteID is a non-owning handle to a visual resource held by the renderer.
type SpriteID int

const (
	SpriteNone SpriteID = iota
	SpriteBlock
	SpriteBlockSolid
	SpritePaddle
	SpriteBall
	SpritePowerUp
	SpriteParticle
)

// Entity is any positioned, sized, drawable game object. Capabilities that
// only some entities have hang off optional fields: a ball carries a
// Collider, a falling power-up carries a PowerUpState.
type Entity struct {
	Position mgl32.Vec2 // top-left corner
	Size     mgl32.Vec2
	Velocity mgl32.Vec2 // units per second
	Rotation float32    // degrees
	Color    core.RGB
	Sprite   SpriteID

	Solid     bool // collidable but indestructible
	Destroyed bool // logically removed, skipped by collision and rendering

	Collider *Collider
	PowerUp  *PowerUpState
}

// Collider is the circular-collider capability carried by the ball.
type Collider struct {
	Radius      float32
	Stuck       bool // position follows the paddle, velocity is not integrated
	Sticky      bool // next paddle contact sets Stuck
	PassThrough bool // non-solid bricks are destroyed without deflecting the ball
}

// NewEntity creates an entity with white tint. Negative size components are
// clamped to zero.
func NewEntity(pos, size mgl32.Vec2, sprite SpriteID, velocity mgl32.Vec2) Entity {
	return Entity{
		Position: pos,
		Size:     mgl32.Vec2{max(size.X(), 0), max(size.Y(), 0)},
		Velocity: velocity,
		Color:    core.White,
		Sprite:   sprite,
	}
}

// NewBall creates a ball stuck to nothing yet; callers position it on the paddle.
func NewBall(pos mgl32.Vec2, radius float32, velocity mgl32.Vec2) *Entity {
	e := NewEntity(pos, mgl32.Vec2{radius * 2, radius * 2}, SpriteBall, velocity)
	e.Collider = &Collider{Radius: radius, Stuck: true}
	return &e
}

// Center returns the center of the entity's bounding box.
func (e *Entity) Center() mgl32.Vec2 {
	return e.Position.Add(e.Size.Mul(0.5))
}

// Radius returns the collider radius, or 0 for entities without one.
func (e *Entity) Radius() float32 {
	if e.Collider == nil {
		return 0
	}
	return e.Collider.Radius
}

// Stuck reports whether the entity is a ball slaved to the paddle.
func (e *Entity) Stuck() bool {
	return e.Collider != nil && e.Collider.Stuck
}

// Integrate advances the position by velocity * dt.
func (e *Entity) Integrate(dt float32) {
	e.Position = e.Position.Add(e.Velocity.Mul(dt))
}

// MoveBall integrates a free ball and keeps it inside the side and top walls,
// reflecting velocity off them. The bottom edge is open. A stuck ball does
// not move. Returns the new position.
func (e *Entity) MoveBall(dt, width float32) mgl32.Vec2 {
	if e.Stuck() {
		return e.Position
	}

	e.Integrate(dt)

	if e.Position[0] <= 0 {
		e.Velocity[0] = -e.Velocity[0]
		e.Position[0] = 0
	} else if e.Position[0]+e.Size[0] >= width {
		e.Velocity[0] = -e.Velocity[0]
		e.Position[0] = width - e.Size[0]
	}
	if e.Position[1] <= 0 {
		e.Velocity[1] = -e.Velocity[1]
		e.Position[1] = 0
	}

	return e.Position
}

// ResetBall puts the ball back at pos with the given velocity, stuck and
// with its modifiers cleared.
func (e *Entity) ResetBall(pos, velocity mgl32.Vec2) {
	e.Position = pos
	e.Velocity = velocity
	if e.Collider != nil {
		e.Collider.Stuck = true
		e.Collider.Sticky = false
		e.Collider.PassThrough = false
	}
}
