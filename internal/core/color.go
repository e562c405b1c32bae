package core

import "fmt"

// RGB is a tint colour with components in [0, 1].
// Entities carry it the way the renderer receives it, unclamped.
type RGB struct {
	R, G, B float32
}

// White is the default, untinted colour.
var White = RGB{1, 1, 1}

// NewRGB creates a colour from its three components.
func NewRGB(r, g, b float32) RGB {
	return RGB{R: r, G: g, B: b}
}

// Scale multiplies every component by f.
func (c RGB) Scale(f float32) RGB {
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Invert returns the complementary colour.
func (c RGB) Invert() RGB {
	return RGB{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B}
}

// Hex formats the colour as #rrggbb, clamping each component to [0, 1].
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
