package garden

import (
	"math"
	"reflect"
	"testing"
)

func TestGenerateFlowerDeterministic(t *testing.T) {
	a := GenerateFlower(1234, 900)
	b := GenerateFlower(1234, 900)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and minSide gave different params:\n%+v\n%+v", a, b)
	}
}

func TestGenerateFlowerRanges(t *testing.T) {
	for seed := uint32(0); seed < 200; seed++ {
		p := GenerateFlower(seed, 900)
		if p.PetalCount < 6 || p.PetalCount > 12 {
			t.Fatalf("seed %d: petalCount %d outside [6, 12]", seed, p.PetalCount)
		}
		if p.LayerCount < 1 || p.LayerCount > 3 {
			t.Fatalf("seed %d: layerCount %d outside [1, 3]", seed, p.LayerCount)
		}
		ratio := p.BaseWidth / p.BaseLength
		if ratio < 0.18 || ratio >= 0.28 {
			t.Fatalf("seed %d: width/length ratio %f outside [0.18, 0.28)", seed, ratio)
		}
		if p.HueBase < 0 || p.HueBase >= 360 {
			t.Fatalf("seed %d: hueBase %f outside [0, 360)", seed, p.HueBase)
		}
	}
}

func TestGenerateFlowerBaseLengthMapping(t *testing.T) {
	cases := []struct {
		minSide float64
		want    float64
	}{
		{300, 80},
		{1600, 220},
		{950, 150}, // midpoint
	}
	for _, tc := range cases {
		p := GenerateFlower(1, tc.minSide)
		if !approxEqual(p.BaseLength, tc.want, 1e-9) {
			t.Errorf("minSide %g: baseLength = %f, want %f", tc.minSide, p.BaseLength, tc.want)
		}
	}
	// Hard clamp dominates the linear map at the extremes.
	if p := GenerateFlower(1, 0); p.BaseLength != 60 {
		t.Errorf("minSide 0: baseLength = %f, want clamp 60", p.BaseLength)
	}
	if p := GenerateFlower(1, 5000); p.BaseLength != 280 {
		t.Errorf("minSide 5000: baseLength = %f, want clamp 280", p.BaseLength)
	}
}

func TestGenerateFlowerResizeReplacesParams(t *testing.T) {
	small := GenerateFlower(77, 400)
	large := GenerateFlower(77, 1500)
	if small.BaseLength >= large.BaseLength {
		t.Errorf("baseLength should grow with minSide: %f >= %f", small.BaseLength, large.BaseLength)
	}
	// Draw-derived fields do not depend on minSide.
	if small.PetalCount != large.PetalCount || small.LayerCount != large.LayerCount {
		t.Error("petal/layer counts should not depend on minSide")
	}
}

func TestPetalsDeterministic(t *testing.T) {
	p := GenerateFlower(4321, 1024)
	a := p.Petals()
	b := p.Petals()
	if !reflect.DeepEqual(a, b) {
		t.Error("Petals() is not reproducible for identical params")
	}
}

func TestPetalsGeometry(t *testing.T) {
	p := GenerateFlower(2024, 1024)
	petals := p.Petals()
	if len(petals) != p.PetalCount {
		t.Fatalf("got %d petals, want %d", len(petals), p.PetalCount)
	}
	for i, petal := range petals {
		base := float64(i) / float64(p.PetalCount) * 2 * math.Pi
		if math.Abs(petal.Angle-base) > petalAngleJitter+1e-9 {
			t.Errorf("petal %d: angle %f too far from base %f", i, petal.Angle, base)
		}
		if petal.Length < p.BaseLength*(1-petalSizeJitter) || petal.Length > p.BaseLength*(1+petalSizeJitter) {
			t.Errorf("petal %d: length %f outside +-18%% of %f", i, petal.Length, p.BaseLength)
		}
		if petal.Width < p.BaseWidth*(1-petalSizeJitter) || petal.Width > p.BaseWidth*(1+petalSizeJitter) {
			t.Errorf("petal %d: width %f outside +-18%% of %f", i, petal.Width, p.BaseWidth)
		}
		if petal.Color.A != 1 {
			t.Errorf("petal %d: alpha %f, want 1", i, petal.Color.A)
		}
		for w, v := range petal.Wobble {
			if v < -1 || v >= 1 {
				t.Errorf("petal %d: wobble[%d] = %f outside [-1, 1)", i, w, v)
			}
		}
	}
}

func TestPetalsVary(t *testing.T) {
	p := GenerateFlower(11, 1024)
	petals := p.Petals()
	allEqual := true
	for i := 1; i < len(petals); i++ {
		if petals[i].Length != petals[0].Length || petals[i].Color != petals[0].Color {
			allEqual = false
			break
		}
	}
	if allEqual {
		t.Error("petals should not be identical copies")
	}
}
