package report

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/model"
)

// DefaultDensityWindow is used when Summarize is given a non-positive window.
const DefaultDensityWindow = 1000.0

// Summary holds aggregate statistics of one chart snapshot.
type Summary struct {
	Version int            `json:"version"`
	Counts  map[string]int `json:"counts"` // Notes per kind, trail keyframes included
	Notes   int            `json:"notes"`  // Playable notes, trail keyframes excluded

	StartMS    float64 `json:"start_ms"`
	EndMS      float64 `json:"end_ms"`
	DurationMS float64 `json:"duration_ms"`

	Hits  int `json:"hits"`
	Ticks int `json:"ticks"`

	// Notes per second over consecutive windows of DensityWindowMS
	DensityWindowMS float64 `json:"density_window_ms"`
	NPSMean         float64 `json:"nps_mean"`
	NPSStd          float64 `json:"nps_std"`
	NPSP50          float64 `json:"nps_p50"`
	NPSP90          float64 `json:"nps_p90"`
	NPSPeak         float64 `json:"nps_peak"`

	DistanceSpan float64 `json:"distance_span"`
	MaxSpeed     float64 `json:"max_speed"`
	MinSpeed     float64 `json:"min_speed"`
	TempoChanges int     `json:"tempo_changes"`
}

// Summarize computes chart statistics from a snapshot. Windows start at the
// first playable note; the last window ends at or after the last one.
func Summarize(s *chart.Snapshot, windowMS float64) Summary {
	if windowMS <= 0 {
		windowMS = DefaultDensityWindow
	}
	sum := Summary{
		Version:         s.Version,
		Counts:          make(map[string]int, len(model.Kinds)),
		DensityWindowMS: windowMS,
	}
	for _, k := range model.Kinds {
		sum.Counts[k.String()] = 0
	}

	var times []float64
	for _, n := range s.Notes() {
		sum.Counts[n.Kind().String()]++
		if n.Kind() != model.KindTrail {
			times = append(times, n.TimeKey())
		}
	}
	sum.Notes = len(times)

	for _, e := range s.Hits().Events() {
		sum.Hits++
		if e.Tick {
			sum.Ticks++
		}
	}

	speeds := make([]float64, 0, len(s.SpeedSamples()))
	for _, p := range s.SpeedSamples() {
		speeds = append(speeds, p.Speed)
	}
	sum.MaxSpeed = floats.Max(speeds)
	sum.MinSpeed = floats.Min(speeds)
	if n := len(s.TempoPoints()); n > 1 {
		sum.TempoChanges = n - 1
	}

	if len(times) == 0 {
		return sum
	}
	sort.Float64s(times)
	sum.StartMS = times[0]
	sum.EndMS = times[len(times)-1]
	sum.DurationMS = sum.EndMS - sum.StartMS
	sum.DistanceSpan = s.Distance(sum.EndMS) - s.Distance(sum.StartMS)

	nps := Density(times, windowMS)
	sum.NPSMean, sum.NPSStd, sum.NPSP50, sum.NPSP90 = ComputeDensityStats(nps)
	sum.NPSPeak = floats.Max(nps)
	return sum
}

// Density buckets sorted note times into consecutive windows starting at the
// first time and returns notes per second for each window.
func Density(sorted []float64, windowMS float64) []float64 {
	if len(sorted) == 0 || windowMS <= 0 {
		return nil
	}
	start := sorted[0]
	n := int(math.Floor((sorted[len(sorted)-1]-start)/windowMS)) + 1
	counts := make([]float64, n)
	for _, t := range sorted {
		counts[int(math.Floor((t-start)/windowMS))]++
	}
	perSecond := 1000 / windowMS
	for i := range counts {
		counts[i] *= perSecond
	}
	return counts
}

// ComputeDensityStats returns the mean, standard deviation and empirical
// 50th and 90th percentiles of per-window note rates. The standard deviation
// of fewer than two windows is 0.
func ComputeDensityStats(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("version", s.Version),
		slog.Int("notes", s.Notes),
		slog.Float64("duration_ms", s.DurationMS),
		slog.Int("hits", s.Hits),
		slog.Int("ticks", s.Ticks),
		slog.Float64("nps_mean", s.NPSMean),
		slog.Float64("nps_p90", s.NPSP90),
		slog.Float64("nps_peak", s.NPSPeak),
		slog.Float64("distance_span", s.DistanceSpan),
		slog.Float64("max_speed", s.MaxSpeed),
	)
}
