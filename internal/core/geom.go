// Package core provides host-side types shared by the simulation and the
// terminal platform: screen buffer, colours, key state and cell geometry.
// It has no external dependencies so the simulation stays testable.
package core

import "math"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Viewport projects world units (float, top-left origin) onto a block of
// screen cells.
type Viewport struct {
	WorldW, WorldH float32
	Cells          Rect
}

// NewViewport maps a worldW x worldH play area onto the cells of r.
func NewViewport(worldW, worldH float32, r Rect) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, Cells: r}
}

// Point converts a world coordinate to a cell coordinate (floored).
func (v Viewport) Point(x, y float32) (int, int) {
	if v.WorldW <= 0 || v.WorldH <= 0 {
		return v.Cells.X, v.Cells.Y
	}
	cx := v.Cells.X + int(math.Floor(float64(x/v.WorldW)*float64(v.Cells.W)))
	cy := v.Cells.Y + int(math.Floor(float64(y/v.WorldH)*float64(v.Cells.H)))
	return cx, cy
}

// Project converts a world-space box to the cells it covers.
// Any box with positive size covers at least one cell.
func (v Viewport) Project(x, y, w, h float32) Rect {
	x0, y0 := v.Point(x, y)
	x1, y1 := v.Point(x+w, y+h)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
