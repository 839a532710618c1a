package core

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an 8-bit-per-channel RGB color
type Color struct {
	R, G, B uint8
}

// Black is the background color returned for rays that hit nothing
var Black = Color{}

// White is the default light color
var White = Color{R: 255, G: 255, B: 255}

// NewColor creates a color from integer channels, clamping each to [0, 255]
func NewColor(r, g, b int) Color {
	return Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

// Scale multiplies every channel by level and floors the result.
// level is clamped to [0, 1] first.
func (c Color) Scale(level float64) Color {
	level = math.Max(0, math.Min(1, level))
	return Color{
		R: uint8(math.Floor(float64(c.R) * level)),
		G: uint8(math.Floor(float64(c.G) * level)),
		B: uint8(math.Floor(float64(c.B) * level)),
	}
}

// IsBlack reports whether all channels are zero
func (c Color) IsBlack() bool {
	return c == Black
}

// RGBA converts to an opaque image/color value
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
