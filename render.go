package garden

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteImage backs vector triangle fills. The 1x1 center sub-image keeps
// antialiased edge samples white.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(colorRGBA{255, 255, 255, 255})
}

// vectorSink adapts a vector.Path to the PathSink interface consumed by
// BuildPetalPath.
type vectorSink struct {
	path *vector.Path
}

func (s vectorSink) MoveTo(x, y float64) {
	s.path.MoveTo(float32(x), float32(y))
}

func (s vectorSink) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	s.path.CubicTo(float32(cx1), float32(cy1), float32(cx2), float32(cy2), float32(x), float32(y))
}

func (s vectorSink) Close() {
	s.path.Close()
}

// DrawFlower renders a flower's petals onto dst around center, with the
// given uniform scale (normally the bloom animation's current scale).
// Degenerate petals and non-positive scales draw nothing.
func DrawFlower(dst *ebiten.Image, center Vec2, params FlowerParams, scale float64) {
	if dst == nil || math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return
	}
	for _, p := range params.Petals() {
		p.Length *= scale
		p.Width *= scale

		var path vector.Path
		if !BuildPetalPath(vectorSink{&path}, center, p) {
			continue
		}
		fillPath(dst, &path, p.Color)
	}
}

// fillPath fills a closed path with a solid color using the same
// DrawTriangles submission the layer renderer uses.
func fillPath(dst *ebiten.Image, path *vector.Path, c Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clamp01(c.R * c.A))
	g := float32(clamp01(c.G * c.A))
	b := float32(clamp01(c.B * c.A))
	a := float32(clamp01(c.A))
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// drawLayers renders every layer at the current local offset. All three
// segment copies of every layer are always drawn, so a wrap snap (which
// leaves localX untouched) can never expose unrendered content.
//
// The view carries the full scroll motion of -localX; subtracting LayerShift
// (the canceled fraction) leaves the net parallax translation
// -localX*factor, the same mapping DotScreenX uses, which keeps dots
// visually locked to the garden.
func drawLayers(dst *ebiten.Image, layers []Layer, assets *AssetCache, localX, segW float64) {
	for i := range layers {
		l := &layers[i]
		shift := -localX - LayerShift(localX, l.Parallax)
		for _, s := range l.Sprites {
			drawSprite(dst, s, assets, shift, segW, l.BaseY, l.Opacity)
		}
	}
}

// drawSprite renders one sprite's three segment copies. A pending or failed
// asset renders as empty space, never as an error.
func drawSprite(dst *ebiten.Image, s Sprite, assets *AssetCache, shift, segW, baseY, opacity float64) {
	img, ok := assets.Image(s.AssetRef)
	if !ok {
		return
	}
	scale := s.Scale
	if !isFiniteLen(scale) {
		return
	}
	w := s.NaturalWidth * scale
	h := s.NaturalHeight * scale
	if !isFiniteLen(w) || !isFiniteLen(h) {
		return
	}
	y := baseY + s.YOffset - s.AnchorY*h

	drawAt := func(x float64) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleAlpha(float32(opacity))
		dst.DrawImage(img, op)
	}

	switch s.Repeat {
	case RepeatTiled:
		// Fill one whole segment, then repeat it for each copy.
		count := int(math.Ceil(segW / w))
		for tile := -1; tile <= 1; tile++ {
			origin := float64(tile)*segW + shift
			for j := 0; j < count; j++ {
				drawAt(origin + float64(j)*w)
			}
		}
	case RepeatPositioned:
		for tile := -1; tile <= 1; tile++ {
			origin := float64(tile)*segW + shift
			for _, pos := range s.Positions {
				drawAt(origin + pos)
			}
		}
	}
}

// drawDots renders every story dot in each of its three segment copies.
// Degenerate radii are skipped.
func drawDots(dst *ebiten.Image, dots []Dot, segW, localX float64, c Color) {
	clr := c.toRGBA()
	for _, d := range dots {
		if !isFiniteLen(d.Radius) {
			continue
		}
		for tile := -1; tile <= 1; tile++ {
			x := DotScreenX(d, tile, segW, localX)
			vector.DrawFilledCircle(dst, float32(x), float32(d.Y), float32(d.Radius), clr, true)
		}
	}
}
