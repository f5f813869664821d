// Package trail resolves the angular position of the trail and of the phone
// orientation along the scroll axis.
//
// Keyframes are projected onto scroll distance by BuildTrail and BuildPhone;
// Track then eases between neighbouring keyframes with a cubic timing curve
// and resolves wrap-around by picking the shorter way round.
package trail

import "math"

// Angle normalization helpers

// wrap360 maps a degree value into [0, 360).
func wrap360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Fold maps a degree value into [0, 180). The trail has two arms 180° apart,
// so angles are only meaningful modulo 180.
func Fold(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return math.Mod(deg, 180)
}

// arc returns the unsigned circular distance between two angles, in [0, 180].
func arc(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// CircularDiff returns the unsigned distance between two folded angles on the
// 180° circle, in [0, 90].
func CircularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 180)
	if d > 90 {
		d = 180 - d
	}
	return d
}
