// Package schedule runs one-shot callbacks on the simulation clock.
//
// The scheduler does not own a goroutine or a wall-clock timer. Time only
// moves when the tick loop calls Advance, so callbacks fire on the first tick
// whose accumulated elapsed time reaches their delay.
package schedule

import (
	"sort"
	"time"
)

// Task is a handle to a scheduled callback.
type Task struct {
	due       time.Duration
	seq       uint64
	fn        func()
	fired     bool
	cancelled bool
}

// Cancel prevents the task from firing. Cancelling a fired or already
// cancelled task is a no-op. Safe on a nil handle.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Pending reports whether the task is still waiting to fire.
func (t *Task) Pending() bool {
	return t != nil && !t.fired && !t.cancelled
}

// Scheduler holds pending tasks keyed to simulation time.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*Task
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once delay has elapsed.
// A non-positive delay fires on the next Advance.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Task{due: s.now + delay, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by dt and runs every task that became due,
// in due order (ties keep scheduling order). Tasks scheduled by a callback
// are not run until a later Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}

	var due, waiting []*Task
	for _, t := range s.tasks {
		switch {
		case t.cancelled:
		case t.due <= s.now:
			due = append(due, t)
		default:
			waiting = append(waiting, t)
		}
	}
	s.tasks = waiting

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	for _, t := range due {
		// An earlier callback in this batch may have cancelled it
		if t.cancelled {
			continue
		}
		t.fired = true
		if t.fn != nil {
			t.fn()
		}
	}
}

// Len returns the number of tasks still pending.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if t.Pending() {
			n++
		}
	}
	return n
}

// CancelAll cancels every pending task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = nil
}
