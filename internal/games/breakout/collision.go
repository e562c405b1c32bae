package breakout

import "github.com/go-gl/mathgl/mgl32"

// Direction is the compass side a collision came from, classified from the
// vector pointing from the ball's center to the closest point on the box.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "?"
	}
}

// compass lists the unit vectors in tie-break order: up, right, down, left.
var compass = [...]mgl32.Vec2{
	DirUp:    {0, 1},
	DirRight: {1, 0},
	DirDown:  {0, -1},
	DirLeft:  {-1, 0},
}

// Hit is a confirmed ball-vs-box collision.
type Hit struct {
	Direction Direction
	// Penetration is the closest point on the box minus the ball's center.
	Penetration mgl32.Vec2
}

// VectorDirection returns the compass direction closest to target. Ties go
// to the direction listed first. A zero-length target has no direction.
func VectorDirection(target mgl32.Vec2) (Direction, bool) {
	if target.Len() == 0 {
		return DirUp, false
	}
	n := target.Normalize()

	best := float32(-1)
	match := DirUp
	for d, v := range compass {
		if dot := n.Dot(v); dot > best {
			best = dot
			match = Direction(d)
		}
	}
	return match, true
}

// Overlaps reports whether the bounding boxes of a and b intersect.
// Touching edges count as overlap.
func Overlaps(a, b *Entity) bool {
	collisionX := a.Position.X()+a.Size.X() >= b.Position.X() &&
		b.Position.X()+b.Size.X() >= a.Position.X()
	collisionY := a.Position.Y()+a.Size.Y() >= b.Position.Y() &&
		b.Position.Y()+b.Size.Y() >= a.Position.Y()
	return collisionX && collisionY
}

// CheckBallCollision tests a circular collider against an axis-aligned box
// using the point on the box closest to the circle's center. The ball hits
// when that point is strictly inside the radius. A ball whose center lies
// exactly on the closest point (center inside the box) has no usable
// direction and is reported as no collision.
func CheckBallCollision(ball, box *Entity) (Hit, bool) {
	radius := ball.Radius()
	if radius <= 0 {
		return Hit{}, false
	}

	center := ball.Position.Add(mgl32.Vec2{radius, radius})
	halfExtents := box.Size.Mul(0.5)
	boxCenter := box.Position.Add(halfExtents)

	difference := center.Sub(boxCenter)
	clamped := mgl32.Vec2{
		mgl32.Clamp(difference.X(), -halfExtents.X(), halfExtents.X()),
		mgl32.Clamp(difference.Y(), -halfExtents.Y(), halfExtents.Y()),
	}
	closest := boxCenter.Add(clamped)

	difference = closest.Sub(center)
	if difference.Len() >= radius {
		return Hit{}, false
	}

	dir, ok := VectorDirection(difference)
	if !ok {
		return Hit{}, false
	}
	return Hit{Direction: dir, Penetration: difference}, true
}
