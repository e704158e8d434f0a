// Discrete-event scheduler driving all simulation state transitions.
package engine

import "container/heap"

// Event is a pending callback in the scheduler queue. Holding the pointer
// returned by Schedule allows later cancellation.
type Event struct {
	Time   float64
	Action func()

	seq       uint64
	index     int
	cancelled bool
}

// Cancelled reports whether the event was cancelled before firing.
func (e *Event) Cancelled() bool { return e.cancelled }

type eventQueue []*Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].Time != q[j].Time {
		return q[i].Time < q[j].Time
	}
	// FIFO for same-time events keeps runs reproducible.
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	ev := x.(*Event)
	ev.index = len(*q)
	*q = append(*q, ev)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*q = old[:n-1]
	return ev
}

// Scheduler is a single-threaded virtual-time event loop. All callbacks run
// inside Run, at monotonically non-decreasing times.
type Scheduler struct {
	now     float64
	nextSeq uint64
	queue   eventQueue
}

// NewScheduler returns a scheduler positioned at virtual time zero.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.queue)
	return s
}

// Now returns the current virtual time in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// Schedule enqueues action to fire after delay seconds of virtual time.
// A negative delay fires at the current time.
func (s *Scheduler) Schedule(delay float64, action func()) *Event {
	if delay < 0 {
		delay = 0
	}
	return s.ScheduleAt(s.now+delay, action)
}

// ScheduleAt enqueues action at an absolute virtual time. Times in the past
// are clamped to now.
func (s *Scheduler) ScheduleAt(at float64, action func()) *Event {
	if at < s.now {
		at = s.now
	}
	ev := &Event{Time: at, Action: action, seq: s.nextSeq}
	s.nextSeq++
	heap.Push(&s.queue, ev)
	return ev
}

// Cancel marks a pending event so it will not fire. Cancelling a nil or
// already-fired event is a no-op.
func (s *Scheduler) Cancel(ev *Event) {
	if ev == nil || ev.index < 0 {
		return
	}
	ev.cancelled = true
}

// Run executes events in order until the queue drains or the next event lies
// beyond until. The clock never advances past an executed event's time.
func (s *Scheduler) Run(until float64) {
	for s.queue.Len() > 0 {
		ev := s.queue[0]
		if ev.Time > until {
			break
		}
		heap.Pop(&s.queue)
		if ev.cancelled {
			continue
		}
		s.now = ev.Time
		ev.Action()
	}
}

// Pending returns the number of queued events, cancelled ones included.
func (s *Scheduler) Pending() int { return s.queue.Len() }

// NextEventTime returns the time of the earliest queued event, or -1 when the
// queue is empty.
func (s *Scheduler) NextEventTime() float64 {
	if s.queue.Len() == 0 {
		return -1
	}
	return s.queue[0].Time
}
