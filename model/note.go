package model

import "fmt"

// Kind identifies a note variant. Values match the type codes of the chart
// file formats.
type Kind uint8

const (
	KindTap    Kind = 0
	KindFlick  Kind = 1
	KindSlide  Kind = 2
	KindRotate Kind = 4
	KindCatch  Kind = 5
	KindBomb   Kind = 6
	KindTrail  Kind = 11
)

// Kinds lists every note kind in type-code order.
var Kinds = []Kind{KindTap, KindFlick, KindSlide, KindRotate, KindCatch, KindBomb, KindTrail}

// String returns the variant name used by the JSON export.
func (k Kind) String() string {
	switch k {
	case KindTap:
		return "Tap"
	case KindFlick:
		return "Flick"
	case KindSlide:
		return "Slide"
	case KindRotate:
		return "Rotate"
	case KindCatch:
		return "Catch"
	case KindBomb:
		return "Bomb"
	case KindTrail:
		return "Trail"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a file type code to a Kind.
func ParseKind(code int) (Kind, bool) {
	for _, k := range Kinds {
		if int(k) == code {
			return k, true
		}
	}
	return 0, false
}

// Note is the closed set of chart notes: Tap, Flick, Slide, Rotate, Catch,
// Bomb and Trail. Consumers switch over the concrete types.
type Note interface {
	Kind() Kind
	TimeKey() float64
	NoteDegree() float64

	sealed()
}

// Tap is an instantaneous hit at an angle.
type Tap struct {
	Time   float64
	Degree float64
}

// Flick is an instantaneous swipe at an angle.
type Flick struct {
	Time   float64
	Degree float64
}

// Catch is passed through by holding the device at the angle.
type Catch struct {
	Time   float64
	Degree float64
}

// Bomb must be avoided. It never produces a hit sound.
type Bomb struct {
	Time   float64
	Degree float64
}

// Slide sweeps from Degree to EndDegree with an eased curve and repeats
// Amount times at a Snap subdivision of the beat.
type Slide struct {
	Time      float64
	Degree    float64
	SlideKind int
	EndDegree float64
	Snap      int
	Amount    int
	PrevCurve float64
	NextCurve float64
}

// Rotate turns the trail by Delta degrees at Time.
type Rotate struct {
	Time      float64
	Degree    float64
	Delta     float64
	PrevCurve float64
	NextCurve float64
}

// Trail is a trail-curve keyframe. It is never rendered as a hittable object.
type Trail struct {
	Time      float64
	Degree    float64
	Delta     float64
	PrevCurve float64
	NextCurve float64
}

func (Tap) Kind() Kind    { return KindTap }
func (Flick) Kind() Kind  { return KindFlick }
func (Catch) Kind() Kind  { return KindCatch }
func (Bomb) Kind() Kind   { return KindBomb }
func (Slide) Kind() Kind  { return KindSlide }
func (Rotate) Kind() Kind { return KindRotate }
func (Trail) Kind() Kind  { return KindTrail }

func (n Tap) TimeKey() float64    { return n.Time }
func (n Flick) TimeKey() float64  { return n.Time }
func (n Catch) TimeKey() float64  { return n.Time }
func (n Bomb) TimeKey() float64   { return n.Time }
func (n Slide) TimeKey() float64  { return n.Time }
func (n Rotate) TimeKey() float64 { return n.Time }
func (n Trail) TimeKey() float64  { return n.Time }

func (n Tap) NoteDegree() float64    { return n.Degree }
func (n Flick) NoteDegree() float64  { return n.Degree }
func (n Catch) NoteDegree() float64  { return n.Degree }
func (n Bomb) NoteDegree() float64   { return n.Degree }
func (n Slide) NoteDegree() float64  { return n.Degree }
func (n Rotate) NoteDegree() float64 { return n.Degree }
func (n Trail) NoteDegree() float64  { return n.Degree }

func (Tap) sealed()    {}
func (Flick) sealed()  {}
func (Catch) sealed()  {}
func (Bomb) sealed()   {}
func (Slide) sealed()  {}
func (Rotate) sealed() {}
func (Trail) sealed()  {}

// Keyframe returns the trail keyframe carried by a Rotate or Trail note.
func Keyframe(n Note) (TrailSample, bool) {
	switch n := n.(type) {
	case Rotate:
		return TrailSample{Time: n.Time, Degree: n.Degree, Delta: n.Delta, PrevCurve: n.PrevCurve, NextCurve: n.NextCurve}, true
	case Trail:
		return TrailSample{Time: n.Time, Degree: n.Degree, Delta: n.Delta, PrevCurve: n.PrevCurve, NextCurve: n.NextCurve}, true
	}
	return TrailSample{}, false
}
