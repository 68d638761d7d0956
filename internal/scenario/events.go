package scenario

import "container/heap"

// Event is a script step scheduled at a simulated time
type Event struct {
	Time     float64 // seconds since the run started
	Step     Step
	Sequence int64
}

func (e Event) before(o Event) bool {
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	// same instant: script order, so a select lands before the step it targets
	return e.Sequence < o.Sequence
}

// schedule is the heap.Interface backing EventQueue
type schedule []Event

func (s schedule) Len() int           { return len(s) }
func (s schedule) Less(i, j int) bool { return s[i].before(s[j]) }
func (s schedule) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s *schedule) Push(x any)        { *s = append(*s, x.(Event)) }

func (s *schedule) Pop() any {
	last := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return last
}

// EventQueue orders script steps by time, then by the order they were pushed
type EventQueue struct {
	pending schedule
	pushed  int64
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push schedules step at step.At
func (q *EventQueue) Push(step Step) {
	q.pushed++
	heap.Push(&q.pending, Event{Time: step.At, Step: step, Sequence: q.pushed})
}

// Pop removes the earliest event
func (q *EventQueue) Pop() (Event, bool) {
	if q.Empty() {
		return Event{}, false
	}
	return heap.Pop(&q.pending).(Event), true
}

// Peek returns the earliest event and leaves it queued
func (q *EventQueue) Peek() (Event, bool) {
	if q.Empty() {
		return Event{}, false
	}
	return q.pending[0], true
}

// Empty reports whether nothing is scheduled
func (q *EventQueue) Empty() bool { return len(q.pending) == 0 }

// Len returns the number of scheduled events
func (q *EventQueue) Len() int { return len(q.pending) }

// Due drains every event scheduled at or before t
func (q *EventQueue) Due(t float64) []Event {
	var due []Event
	for e, ok := q.Peek(); ok && e.Time <= t+timeEpsilon; e, ok = q.Peek() {
		q.Pop()
		due = append(due, e)
	}
	return due
}
