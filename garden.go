package garden

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorFromHSB converts a hue/saturation/brightness triple to a Color.
// Hue is in degrees (wrapped into [0, 360)), saturation and brightness are in
// [0, 100]. Alpha is always 1; adjust it on the returned value if needed.
func ColorFromHSB(hue, sat, bri float64) Color {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	s := clamp01(sat / 100)
	v := clamp01(bri / 100)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{R: r + m, G: g + m, B: b + m, A: 1}
}

// ToRGBA converts the color to a premultiplied 8-bit color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	p := c.toRGBA()
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// toRGBA converts a garden Color to a color.Color (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Range is a general-purpose min/max range.
// Used for flower saturation/brightness bands and the dot parallax band.
type Range struct {
	Min, Max float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp linearly interpolates between a and b by t in [0, 1].
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// mapRange remaps v from the range [inLo, inHi] to [outLo, outHi] without
// clamping. A degenerate input range yields outLo.
func mapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}
