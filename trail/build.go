package trail

import (
	"math"
	"sort"

	"github.com/pthm-cable/orbit/model"
)

// Params tunes track construction. DefaultParams matches the game client.
type Params struct {
	RestDegree      float64 // trail angle of a chart without keyframes
	TailMillis      float64 // far-future trail sentinel offset after the last keyframe
	CatchWindow     float64 // a Catch this close after a note takes over its phone sample
	CatchLookahead  int     // notes after the current one inspected for a Catch
	RotateSpread    float64 // phone samples this far either side of a Rotate
	PhoneRestDegree float64 // phone angle at distance 0
	PhoneTailMillis float64 // phone sentinel offset after the last sample
	EaseIterations  int
}

// DefaultParams returns the stock construction constants.
func DefaultParams() Params {
	return Params{
		RestDegree:      0,
		TailMillis:      50000,
		CatchWindow:     100,
		CatchLookahead:  2,
		RotateSpread:    30,
		PhoneRestDegree: 90,
		PhoneTailMillis: 200,
		EaseIterations:  DefaultEaseIterations,
	}
}

// BuildTrail projects the Rotate and Trail keyframes of time-sorted notes onto
// the distance axis. The result always holds a distance-0 sample and a
// far-future sentinel carrying the last departure angle.
func BuildTrail(notes []model.Note, speed Scroller, p Params) *Track {
	samples := make([]model.TrailSample, 0, len(notes)+2)
	for _, n := range notes {
		k, ok := model.Keyframe(n)
		if !ok {
			continue
		}
		k.Distance = speed.Distance(k.Time)
		samples = append(samples, k)
	}

	if len(samples) == 0 {
		rest := model.TrailSample{Degree: p.RestDegree}
		samples = append(samples, rest)
	} else if first := samples[0]; first.Time != 0 {
		head := model.TrailSample{Degree: first.Degree, PrevCurve: first.PrevCurve, NextCurve: first.NextCurve}
		samples = append([]model.TrailSample{head}, samples...)
	}

	last := samples[len(samples)-1]
	tailTime := last.Time + p.TailMillis
	samples = append(samples, model.TrailSample{
		Time:      tailTime,
		Degree:    last.Departure(),
		PrevCurve: last.PrevCurve,
		NextCurve: last.NextCurve,
		Distance:  speed.Distance(tailTime),
	})

	sortSamples(samples)
	return NewTrack(samples, p.EaseIterations)
}

// BuildPhone derives the phone orientation track from time-sorted notes. The
// trail track resolves the angle of Catch and Bomb notes.
func BuildPhone(notes []model.Note, speed Scroller, trail *Track, p Params) *Track {
	samples := make([]model.TrailSample, 0, len(notes)+2)
	samples = append(samples, model.TrailSample{Degree: p.PhoneRestDegree})

	point := func(t, deg float64) model.TrailSample {
		return model.TrailSample{Time: t, Degree: deg, Distance: speed.Distance(t)}
	}
	caught := make(map[int]bool)

	for i, n := range notes {
		if j, ok := catchNear(notes, i, p); ok {
			if !caught[j] {
				caught[j] = true
				t := notes[j].TimeKey()
				samples = append(samples, point(t, trail.AngleAtTime(speed, t)))
			}
			continue
		}

		switch n := n.(type) {
		case model.Tap:
			samples = append(samples, point(n.Time, math.Mod(n.Degree, 180)))
		case model.Flick:
			samples = append(samples, point(n.Time, math.Mod(n.Degree, 180)))
		case model.Slide:
			samples = append(samples, point(n.Time, math.Mod(n.Degree, 180)))
		case model.Bomb:
			samples = append(samples, point(n.Time, math.Mod(trail.AngleAtTime(speed, n.Time), 180)))
		case model.Rotate:
			base := math.Mod(n.Degree, 180)
			for k, deg := range []float64{base, base + n.Delta/2, base + n.Delta} {
				s := point(n.Time+float64(k-1)*p.RotateSpread, deg)
				s.PrevCurve, s.NextCurve = n.PrevCurve, n.NextCurve
				samples = append(samples, s)
			}
		case model.Catch, model.Trail:
			// Catches are emitted above; trail keyframes do not move the phone.
		}
	}

	// Rotate post-roll samples can land after later notes.
	last := samples[0]
	for _, s := range samples[1:] {
		if s.Time >= last.Time {
			last = s
		}
	}
	tail := point(last.Time+p.PhoneTailMillis, last.Departure())
	tail.PrevCurve, tail.NextCurve = last.PrevCurve, last.NextCurve
	samples = append(samples, tail)

	sortSamples(samples)
	return NewTrack(samples, p.EaseIterations)
}

// catchNear reports the first Catch among notes[i] and the following
// CatchLookahead notes that lies within CatchWindow of notes[i].
func catchNear(notes []model.Note, i int, p Params) (int, bool) {
	t := notes[i].TimeKey()
	for j := i; j <= i+p.CatchLookahead && j < len(notes); j++ {
		if notes[j].TimeKey()-t > p.CatchWindow {
			break
		}
		if _, ok := notes[j].(model.Catch); ok {
			return j, true
		}
	}
	return 0, false
}

func sortSamples(s []model.TrailSample) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Distance != s[j].Distance {
			return s[i].Distance < s[j].Distance
		}
		return s[i].Time < s[j].Time
	})
}
