package hitsound

import (
	"sync"

	"github.com/pthm-cable/orbit/model"
	"github.com/pthm-cable/orbit/timeline"
)

// Schedule tracks which hit events have fired. Triggered events always form a
// prefix of the time-sorted event list, so a cursor marks the next event due.
type Schedule struct {
	mu     sync.Mutex
	events []model.HitEvent
	next   int
}

// NewSchedule copies time-sorted events into an untriggered schedule.
func NewSchedule(events []model.HitEvent) *Schedule {
	s := &Schedule{events: make([]model.HitEvent, len(events))}
	copy(s.events, events)
	for i := range s.events {
		s.events[i].Triggered = false
	}
	return s
}

// Len returns the number of scheduled events.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.events)
}

// ResetBefore re-arms the schedule after a seek: events at or after t become
// untriggered and earlier events triggered.
func (s *Schedule) ResetBefore(t float64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := timeline.Search(s.events, timeline.ByTime[model.HitEvent], t, timeline.AtOrAfter)
	if next == timeline.NotFound {
		next = len(s.events)
	}
	for i := range s.events {
		s.events[i].Triggered = i < next
	}
	s.next = next
}

// Due marks and returns every untriggered event with time <= t. Each event is
// returned once until the schedule is reset.
func (s *Schedule) Due(t float64) []model.HitEvent {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	end := timeline.Search(s.events, timeline.ByTime[model.HitEvent], t, timeline.After)
	if end == timeline.NotFound {
		end = len(s.events)
	}
	if end <= s.next {
		return nil
	}
	due := make([]model.HitEvent, 0, end-s.next)
	for i := s.next; i < end; i++ {
		s.events[i].Triggered = true
		due = append(due, s.events[i])
	}
	s.next = end
	return due
}

// Events returns a copy of the events with their current trigger state.
func (s *Schedule) Events() []model.HitEvent {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.HitEvent, len(s.events))
	copy(out, s.events)
	return out
}
