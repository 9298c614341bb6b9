package garden

import "math"

// Flower geometry tuning constants. minSide is mapped linearly into the base
// petal length range and then hard-clamped.
const (
	minSideLo     = 300.0
	minSideHi     = 1600.0
	baseLengthLo  = 80.0
	baseLengthHi  = 220.0
	baseLengthMin = 60.0
	baseLengthMax = 280.0

	petalAngleJitter = 0.02 // radians
	petalSizeJitter  = 0.18 // fraction of base length/width

	// petalStreamSalt separates the per-petal draw stream from the draws
	// consumed by GenerateFlower itself, so adding a parameter draw later
	// does not shift every petal.
	petalStreamSalt uint32 = 0x70657461
)

// FlowerParams is the full deterministic parameter set for one flower.
// Derived from a seed and the minimum viewport side; replaced wholesale on
// resize or reseed, never mutated in place.
//
// There is no separate per-petal hue jitter parameter: each petal takes a
// fresh full-range hue draw from its own stream (see Petals), with HueBase
// recording the flower-level draw made the same way.
type FlowerParams struct {
	Seed       uint32
	PetalCount int     // [6, 12]
	BaseLength float64 // pixels
	BaseWidth  float64 // pixels
	HueBase    float64 // degrees [0, 360)
	SatRange   Range   // percent
	BriRange   Range   // percent
	LayerCount int     // [1, 3], reserved for multi-ring blooms
}

// Petal is the derived geometry and color of a single petal. The wobble
// values are raw [-1, 1] draws consumed by BuildPetalPath; keeping them here
// makes a petal's shape a pure function of its fields.
type Petal struct {
	Index  int
	Angle  float64 // radians from flower center
	Length float64 // pixels, tip distance from base
	Width  float64 // pixels, widest span perpendicular to the spine
	Color  Color
	Wobble [4]float64 // control point displacement draws in [-1, 1]
}

// GenerateFlower derives FlowerParams from a seed and the minimum side of the
// current viewport in pixels. The same (seed, minSide) pair always yields the
// same params.
func GenerateFlower(seed uint32, minSide float64) FlowerParams {
	rng := NewRNG(seed)

	petalCount := rng.IntRange(6, 12)
	baseLength := clamp(
		mapRange(minSide, minSideLo, minSideHi, baseLengthLo, baseLengthHi),
		baseLengthMin, baseLengthMax,
	)
	baseWidth := baseLength * rng.FloatRange(0.18, 0.28)
	layerCount := rng.IntRange(1, 3)
	hueBase := wrapHue(rng.FloatRange(0, 360) + float64(seed)*0.01)

	return FlowerParams{
		Seed:       seed,
		PetalCount: petalCount,
		BaseLength: baseLength,
		BaseWidth:  baseWidth,
		HueBase:    hueBase,
		SatRange:   Range{Min: 65, Max: 95},
		BriRange:   Range{Min: 25, Max: 100},
		LayerCount: layerCount,
	}
}

// Petals derives the per-petal geometry for the flower. Each petal gets its
// own angle jitter, size variance, hue, and wobble draws from a dedicated
// stream, so the result depends only on the flower's seed and parameters.
func (p FlowerParams) Petals() []Petal {
	rng := NewRNG(p.Seed, petalStreamSalt)
	petals := make([]Petal, 0, p.PetalCount)

	for i := 0; i < p.PetalCount; i++ {
		angle := float64(i)/float64(p.PetalCount)*2*math.Pi +
			rng.FloatRange(-petalAngleJitter, petalAngleJitter)
		length := p.BaseLength * rng.FloatRange(1-petalSizeJitter, 1+petalSizeJitter)
		width := p.BaseWidth * rng.FloatRange(1-petalSizeJitter, 1+petalSizeJitter)

		hue := wrapHue(rng.FloatRange(0, 360) + float64(p.Seed)*0.01)
		sat := rng.FloatRange(p.SatRange.Min, p.SatRange.Max)
		bri := rng.FloatRange(p.BriRange.Min, p.BriRange.Max)

		var wobble [4]float64
		for w := range wobble {
			wobble[w] = rng.FloatRange(-1, 1)
		}

		petals = append(petals, Petal{
			Index:  i,
			Angle:  angle,
			Length: length,
			Width:  width,
			Color:  ColorFromHSB(hue, sat, bri),
			Wobble: wobble,
		})
	}
	return petals
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
