package garden

import "math"

// petalWobbleFrac scales the per-petal control point displacement relative to
// the petal's width and length. Keeps petals organic without breaking
// determinism: the displacement draws live in Petal.Wobble.
const petalWobbleFrac = 0.22

// PathSink receives the curve commands for one closed petal outline.
// Implementations bridge to a concrete rendering backend; the Ebitengine
// adapter wraps vector.Path, and tests use a recording sink.
type PathSink interface {
	MoveTo(x, y float64)
	CubicTo(cx1, cy1, cx2, cy2, x, y float64)
	Close()
}

// BuildPetalPath emits a closed petal outline to sink: two cubic Bézier arcs
// from the base point out to the tip and back, with control points displaced
// by the petal's wobble draws. Reports whether anything was emitted.
//
// Degenerate petals (non-finite or non-positive length/width) are skipped
// silently: no sink calls, no panic.
func BuildPetalPath(sink PathSink, center Vec2, p Petal) bool {
	if !isFiniteLen(p.Length) || !isFiniteLen(p.Width) {
		return false
	}

	dx := math.Cos(p.Angle)
	dy := math.Sin(p.Angle)
	// Unit normal, perpendicular to the petal spine.
	nx := -dy
	ny := dx

	tipX := center.X + dx*p.Length
	tipY := center.Y + dy*p.Length

	// Spine anchor fractions for the outgoing and returning control points.
	// The returning arc uses slightly different anchors so the two sides of
	// the petal are never mirror images.
	const (
		nearAnchor = 0.34
		farAnchor  = 0.78
	)
	halfW := p.Width / 2
	wobW := petalWobbleFrac * p.Width
	wobL := petalWobbleFrac * p.Length

	// Outgoing (right) side: base -> tip.
	c1x := center.X + dx*(p.Length*nearAnchor+p.Wobble[0]*wobL*0.25) + nx*(halfW+p.Wobble[0]*wobW)
	c1y := center.Y + dy*(p.Length*nearAnchor+p.Wobble[0]*wobL*0.25) + ny*(halfW+p.Wobble[0]*wobW)
	c2x := center.X + dx*(p.Length*farAnchor) + nx*(halfW*0.8+p.Wobble[1]*wobW)
	c2y := center.Y + dy*(p.Length*farAnchor) + ny*(halfW*0.8+p.Wobble[1]*wobW)

	// Returning (left) side: tip -> base.
	c3x := center.X + dx*(p.Length*farAnchor) - nx*(halfW*0.8+p.Wobble[2]*wobW)
	c3y := center.Y + dy*(p.Length*farAnchor) - ny*(halfW*0.8+p.Wobble[2]*wobW)
	c4x := center.X + dx*(p.Length*nearAnchor+p.Wobble[3]*wobL*0.25) - nx*(halfW+p.Wobble[3]*wobW)
	c4y := center.Y + dy*(p.Length*nearAnchor+p.Wobble[3]*wobL*0.25) - ny*(halfW+p.Wobble[3]*wobW)

	sink.MoveTo(center.X, center.Y)
	sink.CubicTo(c1x, c1y, c2x, c2y, tipX, tipY)
	sink.CubicTo(c3x, c3y, c4x, c4y, center.X, center.Y)
	sink.Close()
	return true
}

// isFiniteLen reports whether v is a usable positive, finite dimension.
func isFiniteLen(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
