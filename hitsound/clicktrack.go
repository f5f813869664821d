package hitsound

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/model"
	"github.com/pthm-cable/orbit/timeline"
)

// ClickParams shapes the offline click track.
type ClickParams struct {
	SampleRate int
	Click      time.Duration            // length of one click
	Tail       time.Duration            // silence after the last click
	Decay      float64                  // exponential decay rate per second
	TickGain   float64                  // amplitude of slide ticks relative to heads
	Volume     float64                  // output gain; 1 is unity
	Pitches    [model.NumSounds]float64 // click frequency per sound id, Hz
}

// DefaultClickParams returns a 44.1 kHz track with short decaying sine clicks.
func DefaultClickParams() ClickParams {
	return ClickParams{
		SampleRate: 44100,
		Click:      40 * time.Millisecond,
		Tail:       500 * time.Millisecond,
		Decay:      60,
		TickGain:   0.5,
		Volume:     0.8,
		Pitches:    [model.NumSounds]float64{880, 1320, 660, 520, 620, 1760},
	}
}

// ClickParamsFrom maps the click_track config section onto ClickParams.
// Missing pitches keep their defaults.
func ClickParamsFrom(cfg *config.Config) ClickParams {
	p := DefaultClickParams()
	ct := cfg.ClickTrack
	if ct.SampleRate > 0 {
		p.SampleRate = ct.SampleRate
	}
	if cfg.Derived.ClickDuration > 0 {
		p.Click = cfg.Derived.ClickDuration
	}
	p.Tail = cfg.Derived.ClickTail
	p.Decay = ct.Decay
	p.TickGain = ct.TickGain
	p.Volume = ct.Volume
	copy(p.Pitches[:], ct.Pitches)
	return p
}

type onset struct {
	at   int
	freq float64
	amp  float64
}

// clickTrack renders onsets as decaying sine bursts. Overlapping clicks are
// summed and clipped to [-1, 1].
type clickTrack struct {
	onsets   []onset
	next     int
	active   []onset
	pos      int
	total    int
	clickLen int
	decay    float64
	rate     beep.SampleRate
}

// NewClickTrack returns a finite stereo streamer that plays one click per
// event at the event's real time. Events before time 0 are dropped.
func NewClickTrack(events []model.HitEvent, p ClickParams) beep.Streamer {
	rate := beep.SampleRate(p.SampleRate)
	c := &clickTrack{
		clickLen: rate.N(p.Click),
		decay:    p.Decay,
		rate:     rate,
	}
	last := 0
	for _, e := range events {
		if e.Time < 0 {
			continue
		}
		at := rate.N(time.Duration(timeline.RealTime(e.Time) * float64(time.Second)))
		amp := 1.0
		if e.Tick {
			amp = p.TickGain
		}
		var freq float64
		if int(e.Sound) < len(p.Pitches) {
			freq = p.Pitches[e.Sound]
		}
		c.onsets = append(c.onsets, onset{at: at, freq: freq, amp: amp})
		last = max(last, at)
	}
	sort.SliceStable(c.onsets, func(i, j int) bool { return c.onsets[i].at < c.onsets[j].at })
	c.total = last + c.clickLen + rate.N(p.Tail)

	if p.Volume <= 0 {
		return &effects.Volume{Streamer: c, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: c, Base: 2, Volume: math.Log2(p.Volume)}
}

func (c *clickTrack) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= c.total {
		return 0, false
	}
	for i := range samples {
		if c.pos >= c.total {
			return i, true
		}
		for c.next < len(c.onsets) && c.onsets[c.next].at <= c.pos {
			c.active = append(c.active, c.onsets[c.next])
			c.next++
		}

		var val float64
		kept := c.active[:0]
		for _, o := range c.active {
			age := c.pos - o.at
			if age >= c.clickLen {
				continue
			}
			sec := float64(age) / float64(c.rate)
			val += o.amp * math.Exp(-c.decay*sec) * math.Sin(2*math.Pi*o.freq*sec)
			kept = append(kept, o)
		}
		c.active = kept

		val = math.Max(-1, math.Min(1, val))
		samples[i][0] = val
		samples[i][1] = val
		c.pos++
	}
	return len(samples), true
}

func (c *clickTrack) Err() error { return nil }

// WriteWAV encodes the click track of events as 16-bit stereo WAV.
func WriteWAV(w io.WriteSeeker, events []model.HitEvent, p ClickParams) error {
	format := beep.Format{SampleRate: beep.SampleRate(p.SampleRate), NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, NewClickTrack(events, p), format); err != nil {
		return fmt.Errorf("encode click track: %w", err)
	}
	return nil
}
