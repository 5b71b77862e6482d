// Package scheduler runs periodic tasks from a single cooperative loop.
//
// Time is a uint32 millisecond counter that wraps after roughly 49.7 days.
// Elapsed time is computed as now-lastFired in uint32 arithmetic, which stays
// correct across one wrap of the counter.
package scheduler

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
)

type Clock interface {
	Millis() uint32
}

// MonotonicClock counts milliseconds since it was created.
type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// Task fires when more than Interval milliseconds have passed since it last
// fired. A task that has never fired counts from timestamp zero.
type Task struct {
	Name     string
	Interval uint32
	Run      func(ctx context.Context)

	lastFired uint32
}

func (t *Task) LastFired() uint32 {
	return t.lastFired
}

type Scheduler struct {
	clock Clock
	tasks []*Task
	yield func()
}

func New(clock Clock, tasks ...*Task) *Scheduler {
	return &Scheduler{
		clock: clock,
		tasks: tasks,
		yield: runtime.Gosched,
	}
}

// Tick fires every task whose interval has elapsed at now. Tasks run in
// registration order on the caller's goroutine.
func (s *Scheduler) Tick(ctx context.Context, now uint32) {
	for _, t := range s.tasks {
		if now-t.lastFired > t.Interval {
			t.lastFired = now
			t.Run(ctx)
		}
	}
}

// Run ticks until ctx is cancelled. There is no sleep between passes; the
// goroutine only yields to the Go scheduler.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Info().Int("tasks", len(s.tasks)).Msg("Starting scheduler loop")
	defer log.Info().Msg("Scheduler loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		s.Tick(ctx, s.clock.Millis())
		s.yield()
	}
}
