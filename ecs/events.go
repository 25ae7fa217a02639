package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventZoneEnter = "zone_enter"
	EventZoneExit  = "zone_exit"
)

// ZoneEvent is emitted by the physics system when an actor's body overlaps or
// leaves an interaction zone sensor.
type ZoneEvent struct {
	Zone  Entity
	Actor Entity
}

// EventQueue is a simple FIFO queue. It is flushed after every scheduler tick,
// so events must be consumed by a system later in the same tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Consume removes and returns the events of one type, keeping the rest queued
// in their original order.
func (q *EventQueue) Consume(eventType string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == eventType {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

// Len returns the number of queued events.
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
