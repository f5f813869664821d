// Package chart is the aggregate root of a loaded chart: the editable data
// model plus the derived tables published by the last rebuild.
//
// Rebuild is the single writer. It builds a complete Snapshot and swaps it in
// atomically, so readers on other goroutines see either the old or the new
// tables and never a mix.
package chart

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/hitsound"
	"github.com/pthm-cable/orbit/model"
	"github.com/pthm-cable/orbit/timeline"
	"github.com/pthm-cable/orbit/trail"
)

// Chart holds the source keyframes and notes. Mutating the sources has no
// effect on queries until Rebuild is called.
type Chart struct {
	Version int
	Offset  float64
	Tempo   []model.TempoPoint
	Speed   []model.SpeedPoint
	Notes   []model.Note

	cfg  *config.Config
	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

// New returns an empty chart with an already built snapshot. A nil cfg uses
// the embedded defaults.
func New(cfg *config.Config) *Chart {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Chart{cfg: cfg}
	c.Rebuild()
	return c
}

// Config returns the configuration the chart was created with.
func (c *Chart) Config() *config.Config { return c.cfg }

// AddTempo appends a tempo keyframe.
func (c *Chart) AddTempo(p model.TempoPoint) {
	c.mu.Lock()
	c.Tempo = append(c.Tempo, p)
	c.mu.Unlock()
}

// AddSpeed appends a speed keyframe.
func (c *Chart) AddSpeed(p model.SpeedPoint) {
	c.mu.Lock()
	c.Speed = append(c.Speed, p)
	c.mu.Unlock()
}

// AddNote appends a note.
func (c *Chart) AddNote(n model.Note) {
	c.mu.Lock()
	c.Notes = append(c.Notes, n)
	c.mu.Unlock()
}

// Rebuild sorts the sources by time, derives every table from scratch and
// publishes the result. Concurrent rebuilds are serialized.
func (c *Chart) Rebuild() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	sortSources(c.Tempo, c.Speed, c.Notes)

	tempo := append(timeline.TempoMap(nil), c.Tempo...)
	speed := append([]model.SpeedPoint(nil), c.Speed...)
	notes := append([]model.Note(nil), c.Notes...)

	s := build(c.cfg, c.Version, c.Offset, tempo, speed, notes)
	s.hits = hitsound.NewSchedule(hitsound.Expand(notes, tempo))

	plain := build(c.cfg, c.Version, c.Offset, tempo, []model.SpeedPoint{{Time: 0, Speed: timeline.DefaultSpeed}}, notes)
	plain.hits = s.hits
	plain.plain = plain
	s.plain = plain

	c.snap.Store(s)

	slog.Debug("chart rebuilt",
		"notes", len(notes),
		"tempo", len(tempo),
		"speed_samples", len(s.speed),
		"trail_samples", s.trail.Len(),
		"phone_samples", s.phone.Len(),
		"hits", s.hits.Len(),
	)
	return s
}

// Snapshot returns the tables published by the last rebuild.
func (c *Chart) Snapshot() *Snapshot { return c.snap.Load() }

// Plain returns the constant-speed variant of the current snapshot.
func (c *Chart) Plain() *Snapshot { return c.Snapshot().Plain() }

// Distance returns the scroll distance at chart time t.
func (c *Chart) Distance(t float64) float64 { return c.Snapshot().Distance(t) }

// Time returns the chart time at scroll distance d.
func (c *Chart) Time(d float64) float64 { return c.Snapshot().Time(d) }

// Angle returns the trail angle at chart time t.
func (c *Chart) Angle(t float64) float64 { return c.Snapshot().Angle(t) }

// PhoneAngle returns the phone orientation at chart time t.
func (c *Chart) PhoneAngle(t float64) float64 { return c.Snapshot().PhoneAngle(t) }

// BeatAt returns the beat count at chart time t.
func (c *Chart) BeatAt(t float64) float64 { return c.Snapshot().BeatAt(t) }

// TimeAtBeat returns the chart time of beat b.
func (c *Chart) TimeAtBeat(b float64) float64 { return c.Snapshot().TimeAtBeat(b) }

// ResetHitsBefore re-arms the hit schedule after a seek to t.
func (c *Chart) ResetHitsBefore(t float64) { c.Snapshot().Hits().ResetBefore(t) }

func sortSources(tempo []model.TempoPoint, speed []model.SpeedPoint, notes []model.Note) {
	sort.SliceStable(tempo, func(i, j int) bool { return tempo[i].Time < tempo[j].Time })
	sort.SliceStable(speed, func(i, j int) bool { return speed[i].Time < speed[j].Time })
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].TimeKey() < notes[j].TimeKey() })
}

func build(cfg *config.Config, version int, offset float64, tempo timeline.TempoMap, points []model.SpeedPoint, notes []model.Note) *Snapshot {
	p := trailParams(cfg)
	speed := timeline.Integrate(points)
	tr := trail.BuildTrail(notes, speed, p)
	phone := trail.BuildPhone(notes, speed, tr, p)

	return &Snapshot{
		Version:     version,
		Offset:      offset,
		cfg:         cfg,
		tempo:       tempo,
		speedPoints: points,
		notes:       notes,
		speed:       speed,
		trail:       tr,
		phone:       phone,
	}
}

func trailParams(cfg *config.Config) trail.Params {
	return trail.Params{
		RestDegree:      cfg.Trail.RestDegree,
		TailMillis:      cfg.Trail.TailMS,
		CatchWindow:     cfg.Phone.CatchWindowMS,
		CatchLookahead:  cfg.Phone.CatchLookahead,
		RotateSpread:    cfg.Phone.RotateSpreadMS,
		PhoneRestDegree: cfg.Phone.RestDegree,
		PhoneTailMillis: cfg.Phone.TailMS,
		EaseIterations:  cfg.Trail.EaseIterations,
	}
}
