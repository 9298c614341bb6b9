package garden

import (
	"fmt"
	"path"
)

// RepeatMode selects how a sprite fills its segment.
type RepeatMode uint8

const (
	// RepeatTiled repeats the sprite horizontally to fill the whole segment.
	RepeatTiled RepeatMode = iota
	// RepeatPositioned places the sprite at each explicit x offset.
	RepeatPositioned
)

// Sprite is a single renderable asset placement inside a Layer.
type Sprite struct {
	AssetRef      string
	NaturalWidth  float64
	NaturalHeight float64
	AnchorY       float64 // [0, 1]: 0 = top edge on baseY, 1 = bottom edge
	YOffset       float64
	Scale         float64
	Repeat        RepeatMode
	Positions     []float64 // x offsets within the segment, RepeatPositioned only
}

// Layer is an immutable render-time artifact: a group of sprites sharing one
// transform tuple (parallax, z-index, baseY, opacity). Layers are rebuilt
// from the source configuration, never mutated.
type Layer struct {
	ID       string
	Parallax float64 // [0, 1]
	ZIndex   int
	BaseY    float64
	Opacity  float64 // [0, 1]
	Sprites  []Sprite
}

// Group declares a set of assets sharing visual defaults. Per-asset fields
// adjust the defaults; any adjustment that changes the effective
// (parallax, zIndex, baseY, opacity) tuple splits the asset into its own
// layer.
type Group struct {
	Name     string      `yaml:"name"`
	Folder   string      `yaml:"folder"`
	Parallax float64     `yaml:"parallax"`
	ZIndex   int         `yaml:"zIndex"`
	BaseY    float64     `yaml:"baseY"`
	Opacity  float64     `yaml:"opacity"`
	AnchorY  float64     `yaml:"anchorY"`
	YOffset  float64     `yaml:"yOffset"`
	Scale    float64     `yaml:"scale"`
	Tiled    bool        `yaml:"tiled"`
	Assets   []AssetSpec `yaml:"assets"`
}

// AssetSpec declares one asset within a Group. Zero-valued multiplier fields
// mean "unchanged"; delta fields are additive. Pointer fields override the
// group default only when set.
type AssetSpec struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	ScaleMul      float64   `yaml:"scaleMul,omitempty"`
	OpacityMul    float64   `yaml:"opacityMul,omitempty"`
	YOffsetAdd    float64   `yaml:"yOffsetAdd,omitempty"`
	BaseYAdd      float64   `yaml:"baseYAdd,omitempty"`
	ParallaxDelta float64   `yaml:"parallaxDelta,omitempty"`
	ZIndexDelta   int       `yaml:"zIndexDelta,omitempty"`
	AnchorY       *float64  `yaml:"anchorY,omitempty"`
	Tiled         *bool     `yaml:"tiled,omitempty"`
	Positions     []float64 `yaml:"positions,omitempty"`
}

// layerKey is the effective visual tuple that decides bucket membership.
type layerKey struct {
	parallax float64
	zIndex   int
	baseY    float64
	opacity  float64
}

// CompositeLayers flattens group declarations into render layers. Assets in
// the same group whose effective (parallax, zIndex, baseY, opacity) tuples
// match share one Layer; output order is the insertion order of each
// first-seen tuple, so composition is stable and idempotent.
//
// Malformed configuration (contradictory tiling and positions, effective
// parallax or opacity outside [0, 1], missing asset names or sizes) fails
// fast with a descriptive error.
func CompositeLayers(groups []Group) ([]Layer, error) {
	var layers []Layer

	for gi := range groups {
		g := &groups[gi]
		buckets := make(map[layerKey]int)
		groupStart := len(layers)

		for ai := range g.Assets {
			a := &g.Assets[ai]
			sprite, key, err := resolveAsset(g, a)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", g.Name, err)
			}

			idx, ok := buckets[key]
			if !ok {
				idx = len(layers)
				buckets[key] = idx
				layers = append(layers, Layer{
					ID:       fmt.Sprintf("%s/%d", g.Name, idx-groupStart),
					Parallax: key.parallax,
					ZIndex:   key.zIndex,
					BaseY:    key.baseY,
					Opacity:  key.opacity,
				})
			}
			layers[idx].Sprites = append(layers[idx].Sprites, sprite)
		}
	}
	return layers, nil
}

// resolveAsset applies group defaults and per-asset adjustments, validating
// the result.
func resolveAsset(g *Group, a *AssetSpec) (Sprite, layerKey, error) {
	if a.Name == "" {
		return Sprite{}, layerKey{}, fmt.Errorf("asset with empty name")
	}
	if a.Width <= 0 || a.Height <= 0 {
		return Sprite{}, layerKey{}, fmt.Errorf("asset %q: natural size %gx%g must be positive", a.Name, a.Width, a.Height)
	}

	tiled := g.Tiled
	if a.Tiled != nil {
		tiled = *a.Tiled
	}
	if tiled && len(a.Positions) > 0 {
		return Sprite{}, layerKey{}, fmt.Errorf("asset %q: tiled and explicit positions are mutually exclusive", a.Name)
	}
	if !tiled && len(a.Positions) == 0 {
		return Sprite{}, layerKey{}, fmt.Errorf("asset %q: needs either tiling or explicit positions", a.Name)
	}

	scale := g.Scale
	if scale == 0 {
		scale = 1
	}
	if a.ScaleMul != 0 {
		scale *= a.ScaleMul
	}

	opacity := g.Opacity
	if a.OpacityMul != 0 {
		opacity *= a.OpacityMul
	}
	parallax := g.Parallax + a.ParallaxDelta
	if parallax < 0 || parallax > 1 {
		return Sprite{}, layerKey{}, fmt.Errorf("asset %q: effective parallax %g outside [0, 1]", a.Name, parallax)
	}
	if opacity < 0 || opacity > 1 {
		return Sprite{}, layerKey{}, fmt.Errorf("asset %q: effective opacity %g outside [0, 1]", a.Name, opacity)
	}

	anchorY := g.AnchorY
	if a.AnchorY != nil {
		anchorY = *a.AnchorY
	}
	if anchorY < 0 || anchorY > 1 {
		return Sprite{}, layerKey{}, fmt.Errorf("asset %q: anchorY %g outside [0, 1]", a.Name, anchorY)
	}

	repeat := RepeatPositioned
	if tiled {
		repeat = RepeatTiled
	}

	sprite := Sprite{
		AssetRef:      path.Join(g.Folder, a.Name),
		NaturalWidth:  a.Width,
		NaturalHeight: a.Height,
		AnchorY:       anchorY,
		YOffset:       g.YOffset + a.YOffsetAdd,
		Scale:         scale,
		Repeat:        repeat,
		Positions:     a.Positions,
	}
	key := layerKey{
		parallax: parallax,
		zIndex:   g.ZIndex + a.ZIndexDelta,
		baseY:    g.BaseY + a.BaseYAdd,
		opacity:  opacity,
	}
	return sprite, key, nil
}
