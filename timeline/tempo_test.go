package timeline

import (
	"math"
	"testing"
)

func TestBeatAtConstantTempo(t *testing.T) {
	m := TempoMap{{Time: 0, BPM: 120}}

	if b := m.BeatAt(1000); math.Abs(b-2) > 1e-9 {
		t.Errorf("BeatAt(1000) = %v, want 2", b)
	}
	if tm := m.TimeAt(2); math.Abs(tm-1000) > 1e-9 {
		t.Errorf("TimeAt(2) = %v, want 1000", tm)
	}
}

func TestBeatAtTempoChanges(t *testing.T) {
	m := TempoMap{{Time: 0, BPM: 120}, {Time: 1000, BPM: 60}, {Time: 3000, BPM: 240}}

	tests := []struct {
		name       string
		time, beat float64
	}{
		{"origin", 0, 0},
		{"first boundary", 1000, 2},
		{"inside slow segment", 2000, 3},
		{"second boundary", 3000, 4},
		{"fast segment", 3500, 6},
		{"negative time", -500, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.BeatAt(tt.time); math.Abs(got-tt.beat) > 1e-9 {
				t.Errorf("BeatAt(%v) = %v, want %v", tt.time, got, tt.beat)
			}
			if got := m.TimeAt(tt.beat); math.Abs(got-tt.time) > 1e-9 {
				t.Errorf("TimeAt(%v) = %v, want %v", tt.beat, got, tt.time)
			}
		})
	}
}

func TestFirstTempoAppliesBeforeFirstPoint(t *testing.T) {
	m := TempoMap{{Time: 500, BPM: 120}}

	if b := m.BeatAt(250); math.Abs(b-0.5) > 1e-9 {
		t.Errorf("BeatAt(250) = %v, want 0.5", b)
	}
	if bpm, ok := m.BPMAt(250); !ok || bpm != 120 {
		t.Errorf("BPMAt(250) = %v, %v, want 120, true", bpm, ok)
	}
}

func TestBPMAt(t *testing.T) {
	m := TempoMap{{Time: 0, BPM: 100}, {Time: 1000, BPM: 150}, {Time: 1000, BPM: 180}}

	if bpm, _ := m.BPMAt(999); bpm != 100 {
		t.Errorf("BPMAt(999) = %v, want 100", bpm)
	}
	if bpm, _ := m.BPMAt(1000); bpm != 180 {
		t.Errorf("BPMAt(1000) = %v, want the later of two equal keyframes", bpm)
	}
	if _, ok := TempoMap(nil).BPMAt(0); ok {
		t.Error("empty tempo map should report ok=false")
	}
}

func TestTimeConversion(t *testing.T) {
	if got := ChartTime(1.5); got != 1500 {
		t.Errorf("ChartTime(1.5) = %v, want 1500", got)
	}
	if got := RealTime(250); got != 0.25 {
		t.Errorf("RealTime(250) = %v, want 0.25", got)
	}
}
