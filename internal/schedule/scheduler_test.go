package schedule

import (
	"testing"
	"time"
)

func TestAfterFiresOnceDelayElapsed(t *testing.T) {
	s := New()
	calls := 0
	task := s.After(100*time.Millisecond, func() { calls++ })

	s.Advance(50 * time.Millisecond)
	if calls != 0 {
		t.Fatal("task fired before its delay")
	}
	if !task.Pending() {
		t.Error("task should still be pending")
	}

	s.Advance(50 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d, expected 1", calls)
	}
	if task.Pending() {
		t.Error("fired task should not be pending")
	}

	s.Advance(time.Second)
	if calls != 1 {
		t.Errorf("one-shot task fired %d times", calls)
	}
}

func TestAfterFiresAtNextTickPastDelay(t *testing.T) {
	s := New()
	var elapsed time.Duration
	fired := time.Duration(-1)
	s.After(time.Second, func() { fired = elapsed })

	tick := time.Second / 60
	for i := 0; i < 120 && fired < 0; i++ {
		elapsed += tick
		s.Advance(tick)
	}

	if fired < time.Second {
		t.Errorf("fired at %v, expected at or after 1s", fired)
	}
	if fired >= time.Second+tick {
		t.Errorf("fired at %v, expected within one tick of 1s", fired)
	}
}

func TestCancel(t *testing.T) {
	s := New()
	calls := 0
	task := s.After(10*time.Millisecond, func() { calls++ })

	task.Cancel()
	s.Advance(time.Second)

	if calls != 0 {
		t.Errorf("cancelled task fired")
	}
	if task.Pending() {
		t.Error("cancelled task should not be pending")
	}

	// Safe on nil and repeated calls
	var nilTask *Task
	nilTask.Cancel()
	task.Cancel()
}

func TestCancelAll(t *testing.T) {
	s := New()
	calls := 0
	s.After(time.Millisecond, func() { calls++ })
	s.After(2*time.Millisecond, func() { calls++ })

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", s.Len())
	}

	s.CancelAll()
	s.Advance(time.Second)

	if calls != 0 {
		t.Errorf("calls = %d after CancelAll, expected 0", calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after CancelAll, expected 0", s.Len())
	}
}

func TestDueOrder(t *testing.T) {
	s := New()
	var order []string
	s.After(20*time.Millisecond, func() { order = append(order, "late") })
	s.After(10*time.Millisecond, func() { order = append(order, "early") })
	s.After(10*time.Millisecond, func() { order = append(order, "early-2") })

	s.Advance(time.Second)

	expected := []string{"early", "early-2", "late"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("order[%d] = %q, expected %q", i, order[i], expected[i])
		}
	}
}

func TestCallbackCancelsSibling(t *testing.T) {
	s := New()
	var second *Task
	calls := 0
	s.After(0, func() { second.Cancel() })
	second = s.After(0, func() { calls++ })

	s.Advance(time.Millisecond)

	if calls != 0 {
		t.Error("task cancelled by an earlier callback should not fire")
	}
}

func TestTaskScheduledFromCallbackWaits(t *testing.T) {
	s := New()
	calls := 0
	s.After(0, func() {
		s.After(0, func() { calls++ })
	})

	s.Advance(time.Millisecond)
	if calls != 0 {
		t.Fatal("nested task should wait for the next Advance")
	}

	s.Advance(time.Millisecond)
	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}
}
