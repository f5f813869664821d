package hitsound

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pthm-cable/orbit/model"
)

type ScheduleSuite struct {
	suite.Suite
	sched *Schedule
}

func (s *ScheduleSuite) SetupTest() {
	s.sched = NewSchedule([]model.HitEvent{
		{Time: 100, Sound: model.SoundTap},
		{Time: 200, Sound: model.SoundFlick},
		{Time: 200, Sound: model.SoundCatch},
		{Time: 300, Sound: model.SoundSlide, Tick: true},
	})
}

func (s *ScheduleSuite) times(events []model.HitEvent) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.Time
	}
	return out
}

func (s *ScheduleSuite) TestDueFiresOnce() {
	s.Require().Empty(s.sched.Due(50))
	s.Require().Equal([]float64{100}, s.times(s.sched.Due(100)))
	s.Require().Empty(s.sched.Due(150))
	s.Require().Equal([]float64{200, 200}, s.times(s.sched.Due(250)))
	s.Require().Equal([]float64{300}, s.times(s.sched.Due(1000)))
	s.Require().Empty(s.sched.Due(2000))

	for _, e := range s.sched.Events() {
		s.Require().True(e.Triggered)
	}
}

func (s *ScheduleSuite) TestResetBeforeRearms() {
	s.sched.Due(1000)
	s.sched.ResetBefore(200)

	events := s.sched.Events()
	s.Require().True(events[0].Triggered)
	s.Require().False(events[1].Triggered)
	s.Require().False(events[2].Triggered)
	s.Require().False(events[3].Triggered)

	s.Require().Equal([]float64{200, 200, 300}, s.times(s.sched.Due(300)))
}

func (s *ScheduleSuite) TestResetPastEnd() {
	s.sched.ResetBefore(5000)
	s.Require().Empty(s.sched.Due(5000))

	s.sched.ResetBefore(0)
	s.Require().Len(s.sched.Due(5000), 4)
}

func (s *ScheduleSuite) TestEventsIsACopy() {
	events := s.sched.Events()
	events[0].Triggered = true
	s.Require().False(s.sched.Events()[0].Triggered)
}

func (s *ScheduleSuite) TestConcurrentDue() {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fired int
	)
	for j := 0; j < 8; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := len(s.sched.Due(1000))
			mu.Lock()
			fired += n
			mu.Unlock()
		}()
	}
	wg.Wait()
	s.Require().Equal(4, fired, "each event fires exactly once")
}

func TestScheduleSuite(t *testing.T) {
	suite.Run(t, new(ScheduleSuite))
}

func TestNilSchedule(t *testing.T) {
	var s *Schedule
	s.ResetBefore(0)
	if s.Due(100) != nil || s.Events() != nil || s.Len() != 0 {
		t.Error("nil schedule should be inert")
	}
}
