package report

import (
	"math"
	"testing"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/model"
)

func TestDensity(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		window float64
		want   []float64
	}{
		{"empty", nil, 1000, nil},
		{"single note", []float64{300}, 1000, []float64{1}},
		{"three windows", []float64{0, 250, 500, 750, 1000, 1500, 2000}, 1000, []float64{4, 2, 1}},
		{"half second windows", []float64{0, 100, 600}, 500, []float64{4, 2}},
		{"gap", []float64{0, 2500}, 1000, []float64{1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Density(tt.times, tt.window)
			if len(got) != len(tt.want) {
				t.Fatalf("Density(%v) = %v, want %v", tt.times, got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("window %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComputeDensityStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, std, p50, p90 := ComputeDensityStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// sample standard deviation of 1..10
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
	if values[0] != 10 {
		t.Error("input was reordered")
	}
}

func TestComputeDensityStatsSmall(t *testing.T) {
	mean, std, p50, p90 := ComputeDensityStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("empty stats = %v %v %v %v, want zeros", mean, std, p50, p90)
	}

	mean, std, _, _ = ComputeDensityStats([]float64{3})
	if mean != 3 || std != 0 {
		t.Errorf("single value mean=%v std=%v, want 3 and 0", mean, std)
	}
}

func densityChart() *chart.Chart {
	c := chart.New(nil)
	c.Version = 3
	c.AddTempo(model.TempoPoint{Time: 0, BPM: 120})
	for _, t := range []float64{0, 250, 500, 750, 1000, 1500, 2000} {
		c.AddNote(model.Tap{Time: t, Degree: 90})
	}
	c.AddNote(model.Trail{Time: 3000, Degree: 45})
	c.Rebuild()
	return c
}

func TestSummarize(t *testing.T) {
	sum := Summarize(densityChart().Snapshot(), 1000)

	if sum.Version != 3 {
		t.Errorf("version = %d, want 3", sum.Version)
	}
	if sum.Counts["Tap"] != 7 || sum.Counts["Trail"] != 1 || sum.Counts["Slide"] != 0 {
		t.Errorf("counts = %v", sum.Counts)
	}
	if len(sum.Counts) != len(model.Kinds) {
		t.Errorf("counts has %d kinds, want %d", len(sum.Counts), len(model.Kinds))
	}
	if sum.Notes != 7 {
		t.Errorf("notes = %d, want 7 (trail keyframes excluded)", sum.Notes)
	}
	if sum.Hits != 7 || sum.Ticks != 0 {
		t.Errorf("hits = %d ticks = %d, want 7 and 0", sum.Hits, sum.Ticks)
	}
	if sum.StartMS != 0 || sum.EndMS != 2000 || sum.DurationMS != 2000 {
		t.Errorf("span = [%v, %v] duration %v, want [0, 2000] 2000", sum.StartMS, sum.EndMS, sum.DurationMS)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"nps_mean", sum.NPSMean, 7.0 / 3},
		{"nps_std", sum.NPSStd, 1.5275},
		{"nps_p50", sum.NPSP50, 2},
		{"nps_p90", sum.NPSP90, 4},
		{"nps_peak", sum.NPSPeak, 4},
		{"distance_span", sum.DistanceSpan, 2000},
		{"max_speed", sum.MaxSpeed, 1},
		{"min_speed", sum.MinSpeed, 1},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestSummarizeEmptyChart(t *testing.T) {
	sum := Summarize(chart.New(nil).Snapshot(), 0)

	if sum.DensityWindowMS != DefaultDensityWindow {
		t.Errorf("window = %v, want default %v", sum.DensityWindowMS, DefaultDensityWindow)
	}
	if sum.Notes != 0 || sum.NPSPeak != 0 || sum.DurationMS != 0 {
		t.Errorf("empty chart summary = %+v", sum)
	}
	if sum.MaxSpeed != 1 {
		t.Errorf("max speed = %v, want the default speed", sum.MaxSpeed)
	}
}
