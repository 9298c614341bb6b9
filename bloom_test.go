package garden

import (
	"math"
	"testing"
)

func TestBloomStartsAtZero(t *testing.T) {
	b := NewBloomAnim()
	if b.Scale() != 0 {
		t.Errorf("initial scale = %f, want 0", b.Scale())
	}
	if !b.Blooming() {
		t.Error("new animation should be in the bloom phase")
	}
}

func TestBloomReachesFullScale(t *testing.T) {
	b := NewBloomAnim()
	for i := 0; i < 120; i++ { // 2s at 60fps, well past bloomDuration
		b.Update(1.0 / 60)
	}
	if b.Blooming() {
		t.Error("bloom phase should have finished")
	}
	if math.Abs(b.Scale()-1) > breathAmp+1e-6 {
		t.Errorf("post-bloom scale = %f, want within breathing band of 1", b.Scale())
	}
}

func TestBloomMonotonicDuringEase(t *testing.T) {
	b := NewBloomAnim()
	prev := b.Scale()
	for i := 0; i < 30; i++ { // first half second
		b.Update(1.0 / 60)
		if b.Scale() < prev-1e-9 {
			t.Fatalf("scale regressed during bloom: %f -> %f", prev, b.Scale())
		}
		prev = b.Scale()
	}
}

func TestBreathingStaysInBand(t *testing.T) {
	b := NewBloomAnim()
	for i := 0; i < 60; i++ {
		b.Update(1.0 / 60)
	}
	for i := 0; i < 600; i++ { // 10 seconds of breathing
		b.Update(1.0 / 60)
		s := b.Scale()
		if s < 1-breathAmp-1e-9 || s > 1+breathAmp+1e-9 {
			t.Fatalf("breathing scale %f escaped +-%g band", s, breathAmp)
		}
	}
}

func TestBreathingOscillates(t *testing.T) {
	b := NewBloomAnim()
	for i := 0; i < 60; i++ {
		b.Update(1.0 / 60)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < 300; i++ { // 5s covers one full period
		b.Update(1.0 / 60)
		lo = math.Min(lo, b.Scale())
		hi = math.Max(hi, b.Scale())
	}
	if hi-lo < breathAmp {
		t.Errorf("breathing amplitude %f too small over a full period", hi-lo)
	}
}

func TestPauseFreezesWithoutJump(t *testing.T) {
	b := NewBloomAnim()
	for i := 0; i < 90; i++ {
		b.Update(1.0 / 60)
	}
	before := b.Scale()

	b.Pause()
	for i := 0; i < 240; i++ {
		b.Update(1.0 / 60)
	}
	if b.Scale() != before {
		t.Errorf("scale moved while paused: %f -> %f", before, b.Scale())
	}

	// One small step after resume must stay continuous.
	b.Resume()
	b.Update(1.0 / 240)
	if math.Abs(b.Scale()-before) > breathAmp*0.1 {
		t.Errorf("resume jumped: %f -> %f", before, b.Scale())
	}
}

func TestPauseDuringBloomResumesMidEase(t *testing.T) {
	b := NewBloomAnim()
	b.Update(0.2)
	mid := b.Scale()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected mid-ease scale, got %f", mid)
	}
	b.Pause()
	b.Update(10)
	b.Resume()
	if b.Scale() != mid {
		t.Errorf("paused bloom advanced: %f -> %f", mid, b.Scale())
	}
	b.Update(10)
	if b.Blooming() {
		t.Error("bloom should complete after resuming")
	}
}
