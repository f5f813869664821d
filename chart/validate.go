package chart

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/pthm-cable/orbit/model"
)

// ErrInvariant is wrapped by every violation Validate reports.
var ErrInvariant = errors.New("chart: invariant violated")

// ErrMismatch is wrapped by every difference Equivalent reports.
var ErrMismatch = errors.New("chart: models differ")

// Validate checks the ordering invariants of a snapshot's derived tables.
// All violations are joined into the returned error.
func Validate(s *Snapshot) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
	}

	speed := s.SpeedSamples()
	if len(speed) == 0 {
		fail("empty speed table")
	}
	for i := 1; i < len(speed); i++ {
		if speed[i].Time < speed[i-1].Time {
			fail("speed sample %d time %v before %v", i, speed[i].Time, speed[i-1].Time)
		}
		if speed[i].Distance < speed[i-1].Distance {
			fail("speed sample %d distance %v decreases from %v", i, speed[i].Distance, speed[i-1].Distance)
		}
	}
	for i, p := range s.speedPoints {
		if p.Speed < 0 {
			fail("speed keyframe %d at %v is negative", i, p.Time)
		}
	}

	for name, tbl := range map[string][]model.TrailSample{"trail": s.TrailSamples(), "phone": s.PhoneSamples()} {
		if len(tbl) < 2 {
			fail("%s table has %d samples, want sentinels", name, len(tbl))
		}
		for i := 1; i < len(tbl); i++ {
			a, b := tbl[i-1], tbl[i]
			if b.Distance < a.Distance || (b.Distance == a.Distance && b.Time < a.Time) {
				fail("%s sample %d out of (distance, time) order", name, i)
			}
		}
	}

	hits := s.hits.Events()
	for i := 1; i < len(hits); i++ {
		if hits[i].Time < hits[i-1].Time {
			fail("hit %d at %v before %v", i, hits[i].Time, hits[i-1].Time)
		}
	}

	return errors.Join(errs...)
}

// Equivalent reports the first difference between the data models of a and b
// within tol, or nil. Keyframes and notes are compared in canonical order, so
// the order of equal-time entries does not matter.
func Equivalent(a, b *Chart, tol float64) error {
	if a.Version != b.Version {
		return fmt.Errorf("%w: version %d != %d", ErrMismatch, a.Version, b.Version)
	}
	if !scalar.EqualWithinAbs(a.Offset, b.Offset, tol) {
		return fmt.Errorf("%w: offset %v != %v", ErrMismatch, a.Offset, b.Offset)
	}

	rows := func(n int, row func(int) []float64) [][]float64 {
		out := make([][]float64, n)
		for i := range out {
			out[i] = row(i)
		}
		sort.SliceStable(out, func(i, j int) bool { return lessRow(out[i], out[j]) })
		return out
	}
	tables := []struct {
		name string
		a, b [][]float64
	}{
		{"tempo",
			rows(len(a.Tempo), func(i int) []float64 { return []float64{a.Tempo[i].Time, a.Tempo[i].BPM} }),
			rows(len(b.Tempo), func(i int) []float64 { return []float64{b.Tempo[i].Time, b.Tempo[i].BPM} })},
		{"speed",
			rows(len(a.Speed), func(i int) []float64 { return speedRow(a.Speed[i]) }),
			rows(len(b.Speed), func(i int) []float64 { return speedRow(b.Speed[i]) })},
		{"note",
			rows(len(a.Notes), func(i int) []float64 { return NoteFields(a.Notes[i]) }),
			rows(len(b.Notes), func(i int) []float64 { return NoteFields(b.Notes[i]) })},
	}

	for _, tbl := range tables {
		if len(tbl.a) != len(tbl.b) {
			return fmt.Errorf("%w: %s count %d != %d", ErrMismatch, tbl.name, len(tbl.a), len(tbl.b))
		}
		for i := range tbl.a {
			if len(tbl.a[i]) != len(tbl.b[i]) || !floats.EqualApprox(tbl.a[i], tbl.b[i], tol) {
				return fmt.Errorf("%w: %s %d: %v != %v", ErrMismatch, tbl.name, i, tbl.a[i], tbl.b[i])
			}
		}
	}
	return nil
}

// NoteFields flattens a note into (time, kind, degree, variant fields...).
func NoteFields(n model.Note) []float64 {
	row := []float64{n.TimeKey(), float64(n.Kind()), n.NoteDegree()}
	switch n := n.(type) {
	case model.Slide:
		row = append(row, float64(n.SlideKind), n.EndDegree, float64(n.Snap), float64(n.Amount), n.PrevCurve, n.NextCurve)
	case model.Rotate:
		row = append(row, n.Delta, n.PrevCurve, n.NextCurve)
	case model.Trail:
		row = append(row, n.Delta, n.PrevCurve, n.NextCurve)
	}
	return row
}

func speedRow(p model.SpeedPoint) []float64 {
	smooth := 0.0
	if p.Smooth {
		smooth = 1
	}
	return []float64{p.Time, p.Speed, smooth}
}

func lessRow(a, b []float64) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
