package garden

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DriftConfig controls the ambient petal drift: loose petals falling slowly
// across the scene. Zero-value fields fall back to defaults.
type DriftConfig struct {
	// MaxPetals is the pool size. New petals are silently dropped when full.
	MaxPetals int
	// EmitRate is the number of petals released per second.
	EmitRate float64
	// Lifetime is the range of petal lifetimes in seconds.
	Lifetime Range
	// FallSpeed is the range of downward speeds in pixels per second.
	FallSpeed Range
	// SwayAmp is the range of horizontal sway amplitudes in pixels.
	SwayAmp Range
	// SwayFreq is the range of sway frequencies in radians per second.
	SwayFreq Range
	// SpinSpeed is the range of petal spin speeds in radians per second.
	SpinSpeed Range
	// Scale is the range of petal sizes as a fraction of the source flower's
	// petal size.
	Scale Range
	// Seed fixes the drift's random stream.
	Seed uint32
}

func (c DriftConfig) withDefaults() DriftConfig {
	if c.MaxPetals <= 0 {
		c.MaxPetals = 64
	}
	if c.EmitRate <= 0 {
		c.EmitRate = 2
	}
	if c.Lifetime == (Range{}) {
		c.Lifetime = Range{Min: 8, Max: 16}
	}
	if c.FallSpeed == (Range{}) {
		c.FallSpeed = Range{Min: 18, Max: 42}
	}
	if c.SwayAmp == (Range{}) {
		c.SwayAmp = Range{Min: 10, Max: 36}
	}
	if c.SwayFreq == (Range{}) {
		c.SwayFreq = Range{Min: 0.4, Max: 1.1}
	}
	if c.SpinSpeed == (Range{}) {
		c.SpinSpeed = Range{Min: -0.6, Max: 0.6}
	}
	if c.Scale == (Range{}) {
		c.Scale = Range{Min: 0.12, Max: 0.3}
	}
	return c
}

// driftPetal holds per-petal simulation state. Unexported; managed by
// PetalDrift.
type driftPetal struct {
	x, y      float64
	fall      float64
	swayAmp   float64
	swayFreq  float64
	swayPhase float64
	angle     float64
	spin      float64
	life      float64 // remaining lifetime in seconds
	maxLife   float64 // initial lifetime (for computing fade)
	scale     float64
	petal     Petal
}

// PetalDrift manages a pool of drifting petals with CPU-based simulation.
// Geometry and color come from a source flower, so the drift matches the
// bloom it accompanies. The simulation is deterministic for a given config
// seed and update sequence.
type PetalDrift struct {
	config    DriftConfig
	rng       *RNG
	source    []Petal
	pool      []driftPetal
	alive     int
	emitAccum float64
	active    bool

	width, height float64
}

// NewPetalDrift creates a drift fed by the given flower's petals. The drift
// starts inactive; call Start once bounds are known.
func NewPetalDrift(cfg DriftConfig, flower FlowerParams) *PetalDrift {
	cfg = cfg.withDefaults()
	return &PetalDrift{
		config: cfg,
		rng:    NewRNG(cfg.Seed, flower.Seed),
		source: flower.Petals(),
		pool:   make([]driftPetal, cfg.MaxPetals),
	}
}

// SetBounds records the drawable area petals fall through.
func (d *PetalDrift) SetBounds(width, height float64) {
	d.width = width
	d.height = height
}

// Start begins releasing petals.
func (d *PetalDrift) Start() {
	d.active = true
}

// Stop stops releasing new petals. Petals already falling live out.
func (d *PetalDrift) Stop() {
	d.active = false
}

// Reset stops releasing and removes all falling petals.
func (d *PetalDrift) Reset() {
	d.active = false
	d.alive = 0
	d.emitAccum = 0
}

// IsActive reports whether the drift is currently releasing petals.
func (d *PetalDrift) IsActive() bool {
	return d.active
}

// AliveCount returns the number of petals currently falling.
func (d *PetalDrift) AliveCount() int {
	return d.alive
}

// Update advances the simulation by dt seconds.
func (d *PetalDrift) Update(dt float64) {
	// Advance existing petals, swap-remove finished ones. A petal is done
	// when its lifetime runs out or it falls past the bottom edge.
	i := 0
	for i < d.alive {
		p := &d.pool[i]
		p.life -= dt
		if p.life <= 0 || p.y > d.height+p.petal.Length {
			d.alive--
			d.pool[i] = d.pool[d.alive]
			continue
		}
		p.y += p.fall * dt
		p.swayPhase += p.swayFreq * dt
		p.angle += p.spin * dt
		i++
	}

	if !d.active || d.width <= 0 {
		return
	}
	d.emitAccum += d.config.EmitRate * dt
	for d.emitAccum >= 1 {
		d.emitAccum--
		d.spawn()
	}
}

func (d *PetalDrift) spawn() {
	if d.alive >= len(d.pool) || len(d.source) == 0 {
		return
	}
	src := d.source[d.rng.IntRange(0, len(d.source)-1)]
	p := &d.pool[d.alive]
	d.alive++
	*p = driftPetal{
		x:         d.rng.FloatRange(0, d.width),
		y:         -src.Length,
		fall:      d.rng.FloatRange(d.config.FallSpeed.Min, d.config.FallSpeed.Max),
		swayAmp:   d.rng.FloatRange(d.config.SwayAmp.Min, d.config.SwayAmp.Max),
		swayFreq:  d.rng.FloatRange(d.config.SwayFreq.Min, d.config.SwayFreq.Max),
		swayPhase: d.rng.FloatRange(0, 2*math.Pi),
		angle:     d.rng.FloatRange(0, 2*math.Pi),
		spin:      d.rng.FloatRange(d.config.SpinSpeed.Min, d.config.SpinSpeed.Max),
		life:      d.rng.FloatRange(d.config.Lifetime.Min, d.config.Lifetime.Max),
		scale:     d.rng.FloatRange(d.config.Scale.Min, d.config.Scale.Max),
		petal:     src,
	}
	p.maxLife = p.life
}

// driftFadeFrac is the tail fraction of a petal's lifetime spent fading out.
const driftFadeFrac = 0.25

// Draw renders every falling petal onto dst.
func (d *PetalDrift) Draw(dst *ebiten.Image) {
	for i := 0; i < d.alive; i++ {
		p := &d.pool[i]

		petal := p.petal
		petal.Angle = p.angle
		petal.Length *= p.scale
		petal.Width *= p.scale
		petal.Color.A *= clamp01(p.life / (driftFadeFrac * p.maxLife))

		center := Vec2{X: p.x + math.Sin(p.swayPhase)*p.swayAmp, Y: p.y}
		var path vector.Path
		if !BuildPetalPath(vectorSink{&path}, center, petal) {
			continue
		}
		fillPath(dst, &path, petal.Color)
	}
}
