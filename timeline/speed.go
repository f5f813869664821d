package timeline

import (
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/pthm-cable/orbit/model"
)

// DefaultSpeed holds from time 0 until the first speed keyframe.
const DefaultSpeed = 1.0

// SpeedTable is the integrated speed timeline, ordered by time and
// non-decreasing in distance for non-negative speeds.
type SpeedTable []model.SpeedSample

// Integrate accumulates scroll distance over sorted speed keyframes. A smooth
// keyframe ramps linearly from the previous one (trapezoid), otherwise the
// previous speed holds until it (rectangle). When the first keyframe is after
// time 0 an implicit sample at DefaultSpeed anchors distance 0 at time 0.
func Integrate(points []model.SpeedPoint) SpeedTable {
	if len(points) == 0 {
		return SpeedTable{{Time: 0, Speed: DefaultSpeed}}
	}

	table := make(SpeedTable, 0, len(points)+1)
	rest := points
	var prev model.SpeedPoint
	if points[0].Time > 0 {
		prev = model.SpeedPoint{Time: 0, Speed: DefaultSpeed}
		table = append(table, model.SpeedSample{Time: 0, Speed: DefaultSpeed})
	} else {
		prev = points[0]
		table = append(table, model.SpeedSample{Time: prev.Time, Speed: prev.Speed, Smooth: prev.Smooth})
		rest = points[1:]
	}

	var dist float64
	for _, p := range rest {
		dist += segmentArea(prev, p)
		table = append(table, model.SpeedSample{Time: p.Time, Speed: p.Speed, Smooth: p.Smooth, Distance: dist})
		prev = p
	}
	return table
}

func segmentArea(from, to model.SpeedPoint) float64 {
	if to.Time <= from.Time {
		return 0
	}
	if to.Smooth {
		return integrate.Trapezoidal([]float64{from.Time, to.Time}, []float64{from.Speed, to.Speed})
	}
	return from.Speed * (to.Time - from.Time)
}

// Distance returns the scroll distance reached at chart time t. Inside a
// smooth segment the speed ramps linearly, so distance is quadratic in t.
// Outside the table the nearest segment is extrapolated.
func (tb SpeedTable) Distance(t float64) float64 {
	i := Floor(tb, ByTime[model.SpeedSample], t)
	if i == NotFound {
		return t * DefaultSpeed
	}
	s := tb[i]
	dt := t - s.Time
	if next, span, ok := tb.ramp(i); ok {
		return s.Distance + s.Speed*dt + dt*dt*(next.Speed-s.Speed)/(2*span)
	}
	return s.Distance + s.Speed*dt
}

// Time returns the chart time at which distance d is reached. It inverts
// Distance exactly; stalled step segments are skipped because they cannot be
// inverted.
func (tb SpeedTable) Time(d float64) float64 {
	i := Floor(tb, ByDistance[model.SpeedSample], d)
	if i == NotFound {
		return d / DefaultSpeed
	}
	for i+1 < len(tb) && tb[i].Speed == 0 && !tb[i+1].Smooth {
		i++
	}
	s := tb[i]
	x := d - s.Distance
	if next, span, ok := tb.ramp(i); ok {
		return s.Time + solveRamp(s.Speed, (next.Speed-s.Speed)/span, x)
	}
	if s.Speed == 0 {
		return s.Time
	}
	return s.Time + x/s.Speed
}

// SpeedAt returns the instantaneous scroll speed at chart time t.
func (tb SpeedTable) SpeedAt(t float64) float64 {
	i := Floor(tb, ByTime[model.SpeedSample], t)
	if i == NotFound {
		return DefaultSpeed
	}
	s := tb[i]
	if next, span, ok := tb.ramp(i); ok {
		return s.Speed + (t-s.Time)*(next.Speed-s.Speed)/span
	}
	return s.Speed
}

// Last returns the final sample. Integrated tables are never empty.
func (tb SpeedTable) Last() model.SpeedSample {
	if len(tb) == 0 {
		return model.SpeedSample{Speed: DefaultSpeed}
	}
	return tb[len(tb)-1]
}

// ramp reports whether the segment starting at i is a smooth ramp with a
// non-zero duration.
func (tb SpeedTable) ramp(i int) (model.SpeedSample, float64, bool) {
	if i+1 >= len(tb) || !tb[i+1].Smooth {
		return model.SpeedSample{}, 0, false
	}
	next := tb[i+1]
	span := next.Time - tb[i].Time
	if span <= 0 {
		return model.SpeedSample{}, 0, false
	}
	return next, span, true
}

// solveRamp returns dt >= 0 with v*dt + a*dt*dt/2 = x. The rationalized root
// stays finite as a approaches 0.
func solveRamp(v, a, x float64) float64 {
	disc := v*v + 2*a*x
	if disc < 0 {
		disc = 0
	}
	den := v + math.Sqrt(disc)
	if den == 0 {
		return 0
	}
	return 2 * x / den
}
