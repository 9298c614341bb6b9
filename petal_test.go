package garden

import (
	"math"
	"testing"
)

// recordSink captures path commands for assertions.
type recordSink struct {
	ops []string
	pts []Vec2
}

func (s *recordSink) MoveTo(x, y float64) {
	s.ops = append(s.ops, "move")
	s.pts = append(s.pts, Vec2{x, y})
}

func (s *recordSink) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	s.ops = append(s.ops, "cubic")
	s.pts = append(s.pts, Vec2{x, y})
}

func (s *recordSink) Close() {
	s.ops = append(s.ops, "close")
}

func testPetal() Petal {
	return Petal{
		Angle:  math.Pi / 3,
		Length: 120,
		Width:  30,
		Wobble: [4]float64{0.4, -0.2, 0.7, -0.6},
	}
}

func TestBuildPetalPathShape(t *testing.T) {
	var sink recordSink
	p := testPetal()
	if !BuildPetalPath(&sink, Vec2{X: 100, Y: 100}, p) {
		t.Fatal("valid petal reported nothing emitted")
	}
	want := []string{"move", "cubic", "cubic", "close"}
	if len(sink.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", sink.ops, want)
	}
	for i := range want {
		if sink.ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", sink.ops, want)
		}
	}

	// First arc ends at the tip, second returns to the base.
	tipX := 100 + math.Cos(p.Angle)*p.Length
	tipY := 100 + math.Sin(p.Angle)*p.Length
	if !approxEqual(sink.pts[1].X, tipX, 1e-9) || !approxEqual(sink.pts[1].Y, tipY, 1e-9) {
		t.Errorf("outgoing arc ends at (%f, %f), want tip (%f, %f)",
			sink.pts[1].X, sink.pts[1].Y, tipX, tipY)
	}
	if sink.pts[2] != (Vec2{X: 100, Y: 100}) {
		t.Errorf("returning arc ends at %+v, want the base point", sink.pts[2])
	}
}

func TestBuildPetalPathDeterministic(t *testing.T) {
	var a, b recordSink
	p := testPetal()
	BuildPetalPath(&a, Vec2{}, p)
	BuildPetalPath(&b, Vec2{}, p)
	if len(a.pts) != len(b.pts) {
		t.Fatal("repeated builds emitted different command counts")
	}
	for i := range a.pts {
		if a.pts[i] != b.pts[i] {
			t.Fatalf("point %d differs across identical builds", i)
		}
	}
}

func TestBuildPetalPathWobbleChangesShape(t *testing.T) {
	// Endpoints agree but the curves must differ: compare control-point
	// sensitive sums across two wobble sets.
	var a, b controlSink
	p := testPetal()
	BuildPetalPath(&a, Vec2{}, p)
	p.Wobble = [4]float64{-0.4, 0.2, -0.7, 0.6}
	BuildPetalPath(&b, Vec2{}, p)
	if a.sum == b.sum {
		t.Error("different wobble draws produced identical control points")
	}
}

// controlSink folds every coordinate into a sum, control points included.
type controlSink struct {
	sum float64
}

func (s *controlSink) MoveTo(x, y float64) { s.sum += x + y }
func (s *controlSink) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	s.sum += cx1 + cy1 + cx2 + cy2 + x + y
}
func (s *controlSink) Close() {}

func TestBuildPetalPathDegenerate(t *testing.T) {
	// A zero-length petal draws nothing and does not panic.
	degenerates := []Petal{
		{Length: 0, Width: 30},
		{Length: 120, Width: 0},
		{Length: -5, Width: 30},
		{Length: math.NaN(), Width: 30},
		{Length: 120, Width: math.Inf(1)},
	}
	for i, p := range degenerates {
		var sink recordSink
		if BuildPetalPath(&sink, Vec2{}, p) {
			t.Errorf("degenerate petal %d reported as drawn", i)
		}
		if len(sink.ops) != 0 {
			t.Errorf("degenerate petal %d emitted %v", i, sink.ops)
		}
	}
}
