package chart

import (
	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/hitsound"
	"github.com/pthm-cable/orbit/model"
	"github.com/pthm-cable/orbit/timeline"
	"github.com/pthm-cable/orbit/trail"
)

// Snapshot is the immutable set of tables produced by one rebuild. All query
// methods are read-only and safe for concurrent use. The hit schedule is the
// only mutable part and guards itself.
type Snapshot struct {
	Version int
	Offset  float64

	cfg         *config.Config
	tempo       timeline.TempoMap
	speedPoints []model.SpeedPoint
	notes       []model.Note
	speed       timeline.SpeedTable
	trail       *trail.Track
	phone       *trail.Track
	hits        *hitsound.Schedule
	plain       *Snapshot
}

// Distance returns the scroll distance at chart time t.
func (s *Snapshot) Distance(t float64) float64 { return s.speed.Distance(t) }

// Time returns the chart time at which scroll distance d is reached.
func (s *Snapshot) Time(d float64) float64 { return s.speed.Time(d) }

// SpeedAt returns the scroll speed at chart time t.
func (s *Snapshot) SpeedAt(t float64) float64 { return s.speed.SpeedAt(t) }

// Angle returns the trail angle in [0, 180) at chart time t.
func (s *Snapshot) Angle(t float64) float64 { return s.trail.AngleAtTime(s.speed, t) }

// AngleAtDistance returns the trail angle in [0, 180) at scroll distance d.
func (s *Snapshot) AngleAtDistance(d float64) float64 { return s.trail.AngleAtDistance(s.speed, d) }

// PhoneAngle returns the phone orientation in [0, 180) at chart time t.
func (s *Snapshot) PhoneAngle(t float64) float64 { return s.phone.AngleAtTime(s.speed, t) }

// PhoneAngleAtDistance returns the phone orientation at scroll distance d.
func (s *Snapshot) PhoneAngleAtDistance(d float64) float64 {
	return s.phone.AngleAtDistance(s.speed, d)
}

// BeatAt returns the beat count at chart time t.
func (s *Snapshot) BeatAt(t float64) float64 { return s.tempo.BeatAt(t) }

// TimeAtBeat returns the chart time of beat b.
func (s *Snapshot) TimeAtBeat(b float64) float64 { return s.tempo.TimeAt(b) }

// BPMAt returns the tempo in effect at chart time t. ok is false when the
// chart has no tempo keyframes.
func (s *Snapshot) BPMAt(t float64) (bpm float64, ok bool) { return s.tempo.BPMAt(t) }

// ChartTime converts playback seconds to chart time.
func (s *Snapshot) ChartTime(realSeconds float64) float64 { return timeline.ChartTime(realSeconds) }

// RealTime converts chart time to playback seconds.
func (s *Snapshot) RealTime(chartTime float64) float64 { return timeline.RealTime(chartTime) }

// Plain returns the variant of this snapshot built with a constant unit speed.
func (s *Snapshot) Plain() *Snapshot { return s.plain }

// Hits returns the hit-sound schedule.
func (s *Snapshot) Hits() *hitsound.Schedule { return s.hits }

// Notes returns the time-sorted notes the snapshot was built from.
func (s *Snapshot) Notes() []model.Note { return append([]model.Note(nil), s.notes...) }

// TempoPoints returns the time-sorted tempo keyframes.
func (s *Snapshot) TempoPoints() []model.TempoPoint {
	return append([]model.TempoPoint(nil), s.tempo...)
}

// SpeedPoints returns the time-sorted speed keyframes.
func (s *Snapshot) SpeedPoints() []model.SpeedPoint {
	return append([]model.SpeedPoint(nil), s.speedPoints...)
}

// SpeedSamples returns a copy of the integrated speed table.
func (s *Snapshot) SpeedSamples() []model.SpeedSample {
	return append([]model.SpeedSample(nil), s.speed...)
}

// TrailSamples returns a copy of the trail keyframe table.
func (s *Snapshot) TrailSamples() []model.TrailSample { return s.trail.Samples() }

// PhoneSamples returns a copy of the phone keyframe table.
func (s *Snapshot) PhoneSamples() []model.TrailSample { return s.phone.Samples() }
