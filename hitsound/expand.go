// Package hitsound expands chart notes into the hit-sound trigger schedule
// consumed by a playback backend.
package hitsound

import (
	"sort"

	"github.com/pthm-cable/orbit/model"
	"github.com/pthm-cable/orbit/timeline"
)

// Expand maps notes to hit events sorted by time. A slide head plays the
// sound named by its slide kind, except kind 3 which plays the slide sound; a
// slide repeated Amount times adds Amount-1 slide-sound ticks spaced by a
// 1/Snap beat at the tempo in effect at its head. Bombs and trail keyframes
// are silent.
func Expand(notes []model.Note, tempo timeline.TempoMap) []model.HitEvent {
	events := make([]model.HitEvent, 0, len(notes))
	add := func(t float64, s model.Sound, tick bool) {
		events = append(events, model.HitEvent{Time: t, Sound: s, Tick: tick})
	}

	for _, n := range notes {
		switch n := n.(type) {
		case model.Tap:
			add(n.Time, model.SoundTap, false)
		case model.Flick:
			add(n.Time, model.SoundFlick, false)
		case model.Slide:
			add(n.Time, slideSound(n.SlideKind), false)
			step, ok := tickStep(tempo, n)
			if !ok {
				continue
			}
			for j := 1; j < n.Amount; j++ {
				add(n.Time+float64(j)*step, model.SoundSlide, true)
			}
		case model.Rotate:
			if n.Delta < 0 {
				add(n.Time, model.SoundRotateLeft, false)
			} else {
				add(n.Time, model.SoundRotateRight, false)
			}
		case model.Catch:
			add(n.Time, model.SoundCatch, false)
		case model.Bomb, model.Trail:
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
	return events
}

// slideSound maps a slide kind to its head sound. Kinds outside the sound
// range fall back to the slide sound.
func slideSound(kind int) model.Sound {
	if kind == 3 || kind < 0 || kind >= model.NumSounds {
		return model.SoundSlide
	}
	return model.Sound(kind)
}

func tickStep(tempo timeline.TempoMap, s model.Slide) (float64, bool) {
	if s.Amount <= 1 || s.Snap <= 0 {
		return 0, false
	}
	bpm, ok := tempo.BPMAt(s.Time)
	if !ok || bpm <= 0 {
		return 0, false
	}
	return timeline.MillisPerMinute / bpm / float64(s.Snap), true
}
