package event

// Queue is a FIFO buffer of pending window events. It is owned by the
// application driver and mutated only while draining a backend; it is not
// safe for concurrent use.
type Queue struct {
	events []WindowEvent
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event to the back of the queue.
func (q *Queue) Push(e WindowEvent) {
	q.events = append(q.events, e)
}

// Pop removes and returns the front event. The second return value is
// false when the queue is empty.
func (q *Queue) Pop() (WindowEvent, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = nil
	}
	return e, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}
