package trail

import (
	"github.com/pthm-cable/orbit/model"
	"github.com/pthm-cable/orbit/timeline"
)

// Scroller converts between chart time and scroll distance.
// timeline.SpeedTable implements it.
type Scroller interface {
	Distance(t float64) float64
	Time(d float64) float64
}

// Track is an immutable angular keyframe table sorted by distance. The same
// type serves the trail and the phone orientation.
type Track struct {
	samples    []model.TrailSample
	iterations int
}

// NewTrack wraps samples already sorted by (distance, time).
func NewTrack(samples []model.TrailSample, iterations int) *Track {
	if iterations <= 0 {
		iterations = DefaultEaseIterations
	}
	return &Track{samples: samples, iterations: iterations}
}

// Len returns the number of keyframes including sentinels.
func (tr *Track) Len() int { return len(tr.samples) }

// Samples returns a copy of the keyframe table.
func (tr *Track) Samples() []model.TrailSample {
	out := make([]model.TrailSample, len(tr.samples))
	copy(out, tr.samples)
	return out
}

// At returns the i-th keyframe.
func (tr *Track) At(i int) model.TrailSample { return tr.samples[i] }

// AngleAtTime returns the folded angle in [0, 180) at chart time t.
func (tr *Track) AngleAtTime(speed Scroller, t float64) float64 {
	return tr.angle(speed.Distance(t), t)
}

// AngleAtDistance returns the folded angle in [0, 180) at scroll distance d.
func (tr *Track) AngleAtDistance(speed Scroller, d float64) float64 {
	return tr.angle(d, speed.Time(d))
}

func (tr *Track) angle(d, t float64) float64 {
	i := timeline.Floor(tr.samples, timeline.ByDistance[model.TrailSample], d)
	if i == timeline.NotFound {
		return 0
	}
	start := tr.samples[i]
	if t <= start.Time {
		return Fold(start.Degree)
	}
	if i+1 >= len(tr.samples) {
		return Fold(start.Departure())
	}
	end := tr.samples[i+1]
	span := end.Distance - start.Distance
	if span <= 0 {
		return Fold(start.Departure())
	}
	return Between(start, end, (d-start.Distance)/span, tr.iterations)
}
