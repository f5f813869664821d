package trail

import (
	"math"

	"github.com/pthm-cable/orbit/model"
)

// DefaultEaseIterations is the bisection depth used to invert the timing curve.
const DefaultEaseIterations = 20

// Ease maps progress x in [0, 1] onto [from, to] through a cubic timing
// curve. next is the departing keyframe's curvature and prev the arriving
// keyframe's, both as fractions (curve/100). Zero curvature on both sides
// yields linear interpolation.
//
// The curve's x(t) has control values next and 1-prev; t is found by
// bisection and the result is shaped by smoothstep 3t²-2t³.
func Ease(from, to, next, prev, x float64, iterations int) float64 {
	a, b := next, 1-prev
	curveX := func(t float64) float64 {
		u := 1 - t
		return 3*a*t*u*u + 3*b*t*t*u + t*t*t
	}

	lo, hi := 0.0, 1.0
	var t float64
	for i := 0; i < iterations; i++ {
		t = (lo + hi) / 2
		if curveX(t) < x {
			lo = t
		} else {
			hi = t
		}
	}
	y := 3*t*t - 2*t*t*t
	return from + y*(to-from)
}

// Between interpolates from the departure angle of start to the arrival angle
// of end at the given progress and returns the folded angle in [0, 180).
func Between(start, end model.TrailSample, progress float64, iterations int) float64 {
	return Fold(between(start, end, progress, iterations))
}

// between returns the eased angle before folding. It moves continuously
// with progress inside one segment, including across the 180 seam.
func between(start, end model.TrailSample, progress float64, iterations int) float64 {
	from := start.Departure()
	to := end.Degree

	// Either arm of the end keyframe is acceptable; take the nearer one.
	if alt := end.Degree + 180; arc(alt, from) < arc(to, from) {
		to = alt
	}

	from = wrap360(from)
	to = wrap360(to)
	to = unwrap(from, to)

	return Ease(from, to, start.NextCurve/100, end.PrevCurve/100, progress, iterations)
}

// unwrap shifts to by a multiple of 180 so the sweep from from does not cross
// the 0/360 seam the long way.
func unwrap(from, to float64) float64 {
	if from >= 180 {
		switch {
		case math.Abs(from-(to+360)) <= 90:
			return to + 360
		case math.Abs(from-(to+180)) <= 90:
			return to + 180
		case math.Abs(from-(to-180)) <= 90:
			return to - 180
		}
		return to
	}
	switch {
	case math.Abs(from-(to-360)) < 90:
		return to - 360
	case math.Abs(from-(to-180)) < 90:
		return to - 180
	case math.Abs(from-(to+180)) < 90:
		return to + 180
	}
	return to
}
