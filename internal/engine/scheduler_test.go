package engine

import "testing"

func TestScheduler_OrderAndClock(t *testing.T) {
	s := NewScheduler()
	var got []int
	s.Schedule(2.0, func() { got = append(got, 2) })
	s.Schedule(1.0, func() { got = append(got, 1) })
	s.Schedule(3.0, func() { got = append(got, 3) })

	s.Run(10)

	want := []int{1, 2, 3}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("execution order %v, want %v", got, want)
		}
	}
	if s.Now() != 3.0 {
		t.Errorf("Now() = %v, want 3.0", s.Now())
	}
}

func TestScheduler_FIFOTieBreak(t *testing.T) {
	s := NewScheduler()
	var got []string
	for _, name := range []string{"a", "b", "c", "d"} {
		name := name
		s.Schedule(5.0, func() { got = append(got, name) })
	}
	s.Run(10)

	if len(got) != 4 {
		t.Fatalf("fired %d events, want 4", len(got))
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if got[i] != want {
			t.Fatalf("same-time events fired as %v, want scheduling order", got)
		}
	}
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	ev := s.Schedule(1.0, func() { fired = true })
	s.Cancel(ev)
	s.Run(10)

	if fired {
		t.Error("cancelled event fired")
	}
	if !ev.Cancelled() {
		t.Error("Cancelled() = false after Cancel")
	}
}

func TestScheduler_RunUntilLeavesFutureEvents(t *testing.T) {
	s := NewScheduler()
	var fired []float64
	s.Schedule(1.0, func() { fired = append(fired, 1) })
	s.Schedule(8.0, func() { fired = append(fired, 8) })

	s.Run(5)
	if len(fired) != 1 {
		t.Fatalf("fired %d events before t=5, want 1", len(fired))
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}
	if s.NextEventTime() != 8.0 {
		t.Errorf("NextEventTime() = %v, want 8.0", s.NextEventTime())
	}

	s.Run(10)
	if len(fired) != 2 {
		t.Errorf("fired %d events after full run, want 2", len(fired))
	}
}

func TestScheduler_ReschedulingFromCallback(t *testing.T) {
	s := NewScheduler()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			s.Schedule(1.0, tick)
		}
	}
	s.Schedule(1.0, tick)
	s.Run(100)

	if count != 5 {
		t.Errorf("self-rescheduling callback fired %d times, want 5", count)
	}
	if s.Now() != 5.0 {
		t.Errorf("Now() = %v, want 5.0", s.Now())
	}
}
