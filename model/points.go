package model

// TempoPoint starts a constant-tempo segment at Time.
type TempoPoint struct {
	Time float64 `json:"time" cbor:"1,keyasint"`
	BPM  float64 `json:"bpm" cbor:"2,keyasint"`
}

// TimeKey implements timeline.Timed.
func (p TempoPoint) TimeKey() float64 { return p.Time }

// SpeedPoint sets the scroll speed at Time. Smooth marks the segment ending
// at this point as a linear ramp from the previous point instead of a step.
type SpeedPoint struct {
	Time   float64 `cbor:"1,keyasint"`
	Speed  float64 `cbor:"2,keyasint"`
	Smooth bool    `cbor:"3,keyasint"`
}

// TimeKey implements timeline.Timed.
func (p SpeedPoint) TimeKey() float64 { return p.Time }

// SpeedSample is one row of the integrated speed table: Distance is the
// cumulative scroll distance reached at Time.
type SpeedSample struct {
	Time     float64 `csv:"time"`
	Speed    float64 `csv:"speed"`
	Smooth   bool    `csv:"smooth"`
	Distance float64 `csv:"distance"`
}

// TimeKey implements timeline.Timed.
func (s SpeedSample) TimeKey() float64 { return s.Time }

// DistanceKey implements timeline.Spaced.
func (s SpeedSample) DistanceKey() float64 { return s.Distance }

// TrailSample is an angular keyframe projected onto the distance axis.
// The keyframe holds Degree on arrival and Degree+Delta on departure.
type TrailSample struct {
	Time      float64 `csv:"time" json:"time"`
	Degree    float64 `csv:"degree" json:"degree"`
	Delta     float64 `csv:"delta" json:"delta"`
	PrevCurve float64 `csv:"prev_curv" json:"prev_curv"`
	NextCurve float64 `csv:"next_curv" json:"next_curv"`
	Distance  float64 `csv:"distance" json:"distance"`
}

// TimeKey implements timeline.Timed.
func (s TrailSample) TimeKey() float64 { return s.Time }

// DistanceKey implements timeline.Spaced.
func (s TrailSample) DistanceKey() float64 { return s.Distance }

// Departure returns the angle the keyframe leaves with.
func (s TrailSample) Departure() float64 { return s.Degree + s.Delta }
