package breakout

import "github.com/go-gl/mathgl/mgl32"

// ResolveBrickCollision reflects the ball off a box along the single axis
// named by the hit direction and pushes it back out by radius minus the
// penetration depth on that axis.
func ResolveBrickCollision(ball *Entity, hit Hit) {
	radius := ball.Radius()

	switch hit.Direction {
	case DirLeft, DirRight:
		ball.Velocity[0] = -ball.Velocity[0]
		depth := radius - mgl32.Abs(hit.Penetration.X())
		if hit.Direction == DirLeft {
			ball.Position[0] += depth // box is on the left, move right
		} else {
			ball.Position[0] -= depth
		}
	default:
		ball.Velocity[1] = -ball.Velocity[1]
		depth := radius - mgl32.Abs(hit.Penetration.Y())
		if hit.Direction == DirUp {
			ball.Position[1] -= depth // box is below, move up
		} else {
			ball.Position[1] += depth
		}
	}
}

// ResolvePaddleCollision redirects the ball off the paddle. The horizontal
// velocity follows how far from the paddle's center the ball landed,
// relative to the half-width and scaled by baseVX*strength; the fraction is
// not clamped, so glancing edge hits can exceed the nominal maximum. The
// vertical velocity always points up and the pre-collision speed is kept.
// A sticky ball becomes stuck.
func ResolvePaddleCollision(ball, paddle *Entity, baseVX, strength float32) {
	halfWidth := paddle.Size.X() / 2
	centerBoard := paddle.Position.X() + halfWidth
	distance := ball.Position.X() + ball.Radius() - centerBoard

	var percentage float32
	if halfWidth > 0 {
		percentage = distance / halfWidth
	}

	speed := ball.Velocity.Len()
	ball.Velocity[0] = baseVX * percentage * strength
	ball.Velocity[1] = -mgl32.Abs(ball.Velocity[1])
	if ball.Velocity.Len() == 0 {
		ball.Velocity = mgl32.Vec2{0, -speed}
	} else {
		ball.Velocity = ball.Velocity.Normalize().Mul(speed)
	}

	if ball.Collider != nil {
		ball.Collider.Stuck = ball.Collider.Sticky
	}
}
