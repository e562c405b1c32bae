package breakout

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func box(x, y, w, h float32) *Entity {
	e := NewEntity(mgl32.Vec2{x, y}, mgl32.Vec2{w, h}, SpriteBlock, mgl32.Vec2{})
	return &e
}

func TestOverlapsSymmetric(t *testing.T) {
	tests := []struct {
		name string
		a, b *Entity
		want bool
	}{
		{"separate", box(0, 0, 10, 10), box(20, 20, 5, 5), false},
		{"overlapping", box(0, 0, 10, 10), box(5, 5, 10, 10), true},
		{"touching edge", box(0, 0, 10, 10), box(10, 0, 10, 10), true},
		{"touching corner", box(0, 0, 10, 10), box(10, 10, 1, 1), true},
		{"contained", box(0, 0, 100, 100), box(40, 40, 5, 5), true},
		{"x overlap only", box(0, 0, 10, 10), box(5, 11, 10, 10), false},
		{"y overlap only", box(0, 0, 10, 10), box(11, 5, 10, 10), false},
		{"zero size inside", box(0, 0, 10, 10), box(5, 5, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := Overlaps(tt.a, tt.b)
			ba := Overlaps(tt.b, tt.a)
			if ab != ba {
				t.Fatalf("Overlaps not symmetric: a,b=%v b,a=%v", ab, ba)
			}
			if ab != tt.want {
				t.Errorf("Overlaps = %v, want %v", ab, tt.want)
			}
		})
	}
}

func TestVectorDirection(t *testing.T) {
	tests := []struct {
		name string
		v    mgl32.Vec2
		want Direction
	}{
		{"up", mgl32.Vec2{0, 3}, DirUp},
		{"right", mgl32.Vec2{2, 0}, DirRight},
		{"down", mgl32.Vec2{0, -1}, DirDown},
		{"left", mgl32.Vec2{-5, 0}, DirLeft},
		{"mostly right", mgl32.Vec2{3, 1}, DirRight},
		{"up/right tie", mgl32.Vec2{1, 1}, DirUp},
		{"right/down tie", mgl32.Vec2{1, -1}, DirRight},
		{"down/left tie", mgl32.Vec2{-1, -1}, DirDown},
		{"up/left tie", mgl32.Vec2{-1, 1}, DirUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VectorDirection(tt.v)
			if !ok {
				t.Fatal("expected a direction")
			}
			if got != tt.want {
				t.Errorf("VectorDirection(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVectorDirectionZero(t *testing.T) {
	if _, ok := VectorDirection(mgl32.Vec2{}); ok {
		t.Error("zero vector should have no direction")
	}
}

func TestCheckBallCollisionBoundary(t *testing.T) {
	brick := box(0, 0, 100, 100)

	tests := []struct {
		name    string
		cx, cy  float32 // ball center
		want    bool
		wantDir Direction
	}{
		{"exactly radius right of box", 110, 50, false, 0},
		{"just inside radius right", 109, 50, true, DirLeft},
		{"exactly radius below", 50, 110, false, 0},
		{"just inside radius below", 50, 109, true, DirDown},
		{"just inside radius above", 50, -9, true, DirUp},
		{"just inside radius left", -9, 50, true, DirRight},
		{"far away", 300, 300, false, 0},
		{"corner outside radius", 108, 108, false, 0}, // distance ~11.3
		{"center inside box", 50, 50, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewBall(mgl32.Vec2{tt.cx - 10, tt.cy - 10}, 10, mgl32.Vec2{})
			hit, ok := CheckBallCollision(ball, brick)
			if ok != tt.want {
				t.Fatalf("collision = %v, want %v", ok, tt.want)
			}
			if ok && hit.Direction != tt.wantDir {
				t.Errorf("direction = %v, want %v", hit.Direction, tt.wantDir)
			}
		})
	}
}

func TestCheckBallCollisionPenetration(t *testing.T) {
	brick := box(0, 0, 100, 100)
	ball := NewBall(mgl32.Vec2{97, 40}, 10, mgl32.Vec2{}) // center (107, 50)

	hit, ok := CheckBallCollision(ball, brick)
	if !ok {
		t.Fatal("expected collision")
	}
	want := mgl32.Vec2{-7, 0}
	if !hit.Penetration.ApproxEqualThreshold(want, 1e-3) {
		t.Errorf("penetration = %v, want %v", hit.Penetration, want)
	}
}

func TestCheckBallCollisionWithoutCollider(t *testing.T) {
	if _, ok := CheckBallCollision(box(0, 0, 10, 10), box(0, 0, 10, 10)); ok {
		t.Error("an entity without a collider never collides as a ball")
	}
}
