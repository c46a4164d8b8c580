package ecs

// ContactEvent reports that Entity started or stopped touching Other.
// Other is zero when the touched collider is not an entity.
type ContactEvent struct {
	Entity Entity
	Other  Entity
	Enter  bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []ContactEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt ContactEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []ContactEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
