package garden

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Bloom animation tuning. The bloom phase eases scale 0 -> 1, then hands off
// to a slow breathing oscillation around 1.
const (
	bloomDuration = 0.6  // seconds
	breathAmp     = 0.02 // +-2% scale
	breathPeriod  = 4.0  // seconds per full cycle
)

// BloomAnim animates a flower's scale: an eased bloom from 0 to 1, followed
// by an idle breathing oscillation. There is no global animation manager;
// callers invoke Update themselves each frame, matching the tween usage
// elsewhere in this package's adapter.
//
// Pause stops time for the animation without touching its state, so Resume
// continues exactly where it left off with no visual jump.
type BloomAnim struct {
	tween    *gween.Tween
	blooming bool
	phase    float64 // seconds into the breathing cycle
	paused   bool
	scale    float64
}

// NewBloomAnim creates a bloom animation starting at scale 0.
func NewBloomAnim() *BloomAnim {
	return &BloomAnim{
		tween:    gween.New(0, 1, bloomDuration, ease.OutCubic),
		blooming: true,
	}
}

// Update advances the animation by dt seconds. A paused animation ignores dt
// entirely.
func (b *BloomAnim) Update(dt float32) {
	if b.paused {
		return
	}
	if b.blooming {
		v, finished := b.tween.Update(dt)
		b.scale = float64(v)
		if finished {
			b.blooming = false
			b.phase = 0
		}
		return
	}
	b.phase += float64(dt)
	b.scale = 1 + breathAmp*math.Sin(2*math.Pi*b.phase/breathPeriod)
}

// Scale returns the current scale factor to apply to the flower geometry.
func (b *BloomAnim) Scale() float64 {
	return b.scale
}

// Blooming reports whether the initial bloom ease is still running.
func (b *BloomAnim) Blooming() bool {
	return b.blooming
}

// Pause freezes the animation. Safe to call repeatedly.
func (b *BloomAnim) Pause() {
	b.paused = true
}

// Resume unfreezes the animation, continuing from the paused state.
func (b *BloomAnim) Resume() {
	b.paused = false
}

// Paused reports whether the animation is currently frozen.
func (b *BloomAnim) Paused() bool {
	return b.paused
}
