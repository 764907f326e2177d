package clock

import (
	"time"
)

// Simulated runs a fast clock: every wall Every that passes moves it by
// Step, e.g. one minute per second to walk the whole dial in 12 minutes.
type Simulated struct {
	start time.Time
	began time.Time
	every time.Duration
	step  time.Duration
	wall  func() time.Time
}

func NewSimulated(start time.Time, every, step time.Duration) *Simulated {
	return newSimulated(start, every, step, time.Now)
}

func newSimulated(start time.Time, every, step time.Duration, wall func() time.Time) *Simulated {
	if every <= 0 {
		every = time.Second
	}
	if step <= 0 {
		step = time.Minute
	}
	return &Simulated{
		start: start,
		began: wall(),
		every: every,
		step:  step,
		wall:  wall,
	}
}

func (s *Simulated) Now() time.Time {
	ticks := s.wall().Sub(s.began) / s.every
	return s.start.Add(time.Duration(ticks) * s.step)
}
