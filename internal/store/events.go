package store

import "github.com/idilsaglam/notes/internal/model"

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventToggled EventKind = "toggled"
	EventDeleted EventKind = "deleted"
)

// Event is emitted after a successful mutation. Message is set when the
// mutation has a user-facing confirmation.
type Event struct {
	Kind    EventKind
	Record  model.Record
	Message string
}

// Subscribe registers for mutation events. Delivery is best-effort: when
// the channel buffer is full the event is dropped. The returned func
// unsubscribes and closes the channel; calling it twice is safe.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, s.eventBuffer)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store) publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
