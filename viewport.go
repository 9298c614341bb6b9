package garden

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// wheelXFrac is the fraction of horizontal wheel delta folded into the
// scroll position on top of the full vertical delta.
const wheelXFrac = 0.35

// ViewportChange is the event emitted to the host whenever the scroll
// position or the container size changes.
type ViewportChange struct {
	OffsetX        float64 // local offset within one segment, [0, segmentWidth)
	ViewportWidth  float64
	ViewportHeight float64
}

// wrapScroll applies the segment wrap rule to a raw scroll position tracked
// over three concatenated segments [A][B][C]. Drifting past the left half of
// segment B snaps one segment right; drifting into C snaps one segment left.
// Each snap moves exactly one segment width, so a composition whose three
// segment copies render identically shows no visible change.
func wrapScroll(raw, segW float64) float64 {
	for raw < segW/2 {
		raw += segW
	}
	for raw > segW*1.5 {
		raw -= segW
	}
	return raw
}

// localOffset reduces a raw scroll position to the logical offset within one
// segment, always in [0, segW).
func localOffset(raw, segW float64) float64 {
	return math.Mod(math.Mod(raw-segW, segW)+segW, segW)
}

// LayerShift computes the horizontal shift for a layer at the given local
// offset. The parallax factor is the fraction of scroll a layer inherits:
// factor 1 shifts by zero (the layer rides the scroll 1:1, foreground),
// factor 0 cancels the motion entirely (fixed background). The factor is
// clamped to [0, 1].
func LayerShift(localX, factor float64) float64 {
	return -localX * (1 - clamp01(factor))
}

// scrollAnim holds an active programmatic scroll tween. The tween animates a
// cumulative delta so the wrap rule applies on every step.
type scrollAnim struct {
	tween *gween.Tween
	last  float32
}

// Viewport owns the scroll/offset state for one mounted scene. All geometry
// math is synchronous and pure; the Ebitengine adapter feeds it input deltas
// and size changes. A Viewport must only be mutated from the event handlers
// of its owning view; it is not safe for concurrent writers.
type Viewport struct {
	segW   float64
	raw    float64
	width  float64
	height float64

	onChange func(ViewportChange)
	scroll   *scrollAnim
}

// NewViewport creates a viewport over segments of the given width, with the
// raw position starting inside the middle segment at initialOffset.
func NewViewport(segmentWidth, initialOffset float64) *Viewport {
	return &Viewport{
		segW: segmentWidth,
		raw:  segmentWidth + initialOffset,
	}
}

// SegmentWidth returns the configured segment width.
func (v *Viewport) SegmentWidth() float64 {
	return v.segW
}

// LocalX returns the logical offset within one segment, in [0, segmentWidth).
func (v *Viewport) LocalX() float64 {
	return localOffset(v.raw, v.segW)
}

// Size returns the current container size.
func (v *Viewport) Size() (w, h float64) {
	return v.width, v.height
}

// OnViewportChange registers the host callback fired on every scroll or size
// change, once on Mount, and once per resize.
func (v *Viewport) OnViewportChange(fn func(ViewportChange)) {
	v.onChange = fn
}

// Mount emits the initial viewport state to the host.
func (v *Viewport) Mount() {
	v.emit()
}

// ApplyScrollDelta moves the raw scroll position and applies the wrap rule
// before the next paint.
func (v *Viewport) ApplyScrollDelta(delta float64) {
	v.raw = wrapScroll(v.raw+delta, v.segW)
	v.emit()
}

// ApplyWheel maps a wheel event onto the scroll position: the vertical delta
// plus a fraction of the horizontal delta.
func (v *Viewport) ApplyWheel(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	v.ApplyScrollDelta(dy + dx*wheelXFrac)
}

// SetSize records a container resize and notifies the host.
func (v *Viewport) SetSize(w, h float64) {
	if w == v.width && h == v.height {
		return
	}
	v.width = w
	v.height = h
	v.emit()
}

// ScrollTo animates the local offset to target over duration seconds. The
// shorter wrap direction is chosen, and the wrap rule applies on every step.
func (v *Viewport) ScrollTo(target float64, duration float32, fn ease.TweenFunc) {
	delta := math.Mod(target-v.LocalX(), v.segW)
	if delta > v.segW/2 {
		delta -= v.segW
	} else if delta < -v.segW/2 {
		delta += v.segW
	}
	v.scroll = &scrollAnim{tween: gween.New(0, float32(delta), duration, fn)}
}

// Update advances any active programmatic scroll by dt seconds.
func (v *Viewport) Update(dt float32) {
	if v.scroll == nil {
		return
	}
	val, finished := v.scroll.tween.Update(dt)
	v.ApplyScrollDelta(float64(val - v.scroll.last))
	v.scroll.last = val
	if finished {
		v.scroll = nil
	}
}

func (v *Viewport) emit() {
	if v.onChange == nil {
		return
	}
	v.onChange(ViewportChange{
		OffsetX:        v.LocalX(),
		ViewportWidth:  v.width,
		ViewportHeight: v.height,
	})
}
