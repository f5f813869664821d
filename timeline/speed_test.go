package timeline

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/orbit/model"
)

func TestIntegrateEmpty(t *testing.T) {
	tb := Integrate(nil)
	if len(tb) != 1 {
		t.Fatalf("len = %d, want 1", len(tb))
	}
	if tb[0] != (model.SpeedSample{Time: 0, Speed: 1}) {
		t.Errorf("sample = %+v, want unit speed at origin", tb[0])
	}
	if d := tb.Distance(2000); math.Abs(d-2000) > 1e-9 {
		t.Errorf("Distance(2000) = %v, want 2000", d)
	}
	if tm := tb.Time(2000); math.Abs(tm-2000) > 1e-9 {
		t.Errorf("Time(2000) = %v, want 2000", tm)
	}
}

func TestIntegrateDistances(t *testing.T) {
	tests := []struct {
		name   string
		points []model.SpeedPoint
		want   []float64
	}{
		{
			name:   "steps",
			points: []model.SpeedPoint{{Time: 0, Speed: 1}, {Time: 1000, Speed: 2}, {Time: 1500, Speed: 0.5}},
			want:   []float64{0, 1000, 2000},
		},
		{
			name:   "smooth ramp",
			points: []model.SpeedPoint{{Time: 0, Speed: 1}, {Time: 1000, Speed: 3, Smooth: true}},
			want:   []float64{0, 2000},
		},
		{
			name:   "implicit seed",
			points: []model.SpeedPoint{{Time: 1000, Speed: 2}, {Time: 2000, Speed: 1}},
			want:   []float64{0, 1000, 3000},
		},
		{
			name:   "smooth first point ramps from seed",
			points: []model.SpeedPoint{{Time: 1000, Speed: 3, Smooth: true}},
			want:   []float64{0, 2000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := Integrate(tt.points)
			got := make([]float64, len(tb))
			for i, s := range tb {
				got[i] = s.Distance
			}
			if !floats.EqualApprox(got, tt.want, 1e-9) {
				t.Errorf("distances = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceQuadraticInsideRamp(t *testing.T) {
	tb := Integrate([]model.SpeedPoint{{Time: 0, Speed: 1}, {Time: 1000, Speed: 3, Smooth: true}})

	// speed reaches 2 at 500, so the area is (1+2)/2 * 500
	if d := tb.Distance(500); math.Abs(d-750) > 1e-9 {
		t.Errorf("Distance(500) = %v, want 750", d)
	}
	if tm := tb.Time(750); math.Abs(tm-500) > 1e-9 {
		t.Errorf("Time(750) = %v, want 500", tm)
	}
	if v := tb.SpeedAt(500); math.Abs(v-2) > 1e-9 {
		t.Errorf("SpeedAt(500) = %v, want 2", v)
	}
	// Past the last keyframe the final speed holds.
	if d := tb.Distance(2000); math.Abs(d-5000) > 1e-9 {
		t.Errorf("Distance(2000) = %v, want 5000", d)
	}
}

func TestTimeSkipsStall(t *testing.T) {
	tb := Integrate([]model.SpeedPoint{{Time: 0, Speed: 1}, {Time: 1000, Speed: 0}, {Time: 2000, Speed: 1}})

	tests := []struct {
		d, want float64
	}{
		{500, 500},
		{1000, 2000},
		{1500, 2500},
	}
	for _, tt := range tests {
		if got := tb.Time(tt.d); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Time(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
	if d := tb.Distance(1500); math.Abs(d-1000) > 1e-9 {
		t.Errorf("Distance(1500) = %v, want 1000 during stall", d)
	}
}

func TestDistanceTimeRoundTrip(t *testing.T) {
	tb := Integrate([]model.SpeedPoint{
		{Time: 0, Speed: 1},
		{Time: 800, Speed: 2.5, Smooth: true},
		{Time: 1600, Speed: 0.25},
		{Time: 2400, Speed: 1.75, Smooth: true},
		{Time: 2400, Speed: 1.75},
		{Time: 4000, Speed: 0.5, Smooth: true},
	})

	for tm := 0.0; tm <= 5000; tm += 37 {
		d := tb.Distance(tm)
		if back := tb.Time(d); math.Abs(back-tm) > 1e-6 {
			t.Errorf("Time(Distance(%v)) = %v", tm, back)
		}
	}

	last := tb.Last().Distance
	for d := 0.0; d <= last; d += last / 97 {
		tm := tb.Time(d)
		if back := tb.Distance(tm); math.Abs(back-d) > 1e-6 {
			t.Errorf("Distance(Time(%v)) = %v", d, back)
		}
	}
}

func TestDistanceMonotonic(t *testing.T) {
	tb := Integrate([]model.SpeedPoint{
		{Time: 0, Speed: 2},
		{Time: 500, Speed: 0, Smooth: true},
		{Time: 1000, Speed: 3, Smooth: true},
		{Time: 1500, Speed: 1},
	})

	prev := math.Inf(-1)
	for tm := 0.0; tm <= 3000; tm += 10 {
		d := tb.Distance(tm)
		if d < prev-1e-9 {
			t.Fatalf("Distance(%v) = %v decreased from %v", tm, d, prev)
		}
		prev = d
	}
}
