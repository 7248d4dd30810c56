// Package store keeps todo records in memory for the lifetime of the process.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/idilsaglam/notes/internal/model"
)

// MsgChangesSaved accompanies the event emitted after a successful update.
const MsgChangesSaved = "Changes saved"

const defaultEventBuffer = 16

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStrictEdit makes Update apply the create rule instead of the
// non-blank rule.
func WithStrictEdit(strict bool) Option {
	return func(s *Store) {
		s.strictEdit = strict
	}
}

// WithEventBuffer sets the per-subscriber channel capacity.
func WithEventBuffer(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.eventBuffer = n
		}
	}
}

// Store is an ordered in-memory collection of records.
// Ids come from a counter that is never rewound, so they stay unique
// after deletions.
type Store struct {
	mu          sync.Mutex
	items       []model.Record
	nextID      int
	now         func() time.Time
	strictEdit  bool
	eventBuffer int
	subs        map[int]chan Event
	nextSub     int
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:         time.Now,
		eventBuffer: defaultEventBuffer,
		subs:        make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a copy of the records in insertion order.
func (s *Store) List() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Stats counts completed and pending records.
func (s *Store) Stats() (done, pending int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Create validates and appends a new record.
func (s *Store) Create(title, subtitle string) (model.Record, error) {
	if err := model.ValidateNew(title, subtitle); err != nil {
		return model.Record{}, err
	}

	s.mu.Lock()
	rec := model.Record{
		ID:        s.nextID,
		Title:     title,
		Subtitle:  subtitle,
		CreatedAt: model.FormatTimestamp(s.now()),
	}
	s.nextID++
	s.items = append(s.items, rec)
	s.mu.Unlock()

	s.publish(Event{Kind: EventCreated, Record: rec})
	return rec, nil
}

// Update replaces title and subtitle of an existing record.
func (s *Store) Update(id int, title, subtitle string) (model.Record, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Record{}, &model.NotFoundError{ID: id}
	}
	validate := model.ValidateEdit
	if s.strictEdit {
		validate = model.ValidateNew
	}
	if err := validate(title, subtitle); err != nil {
		s.mu.Unlock()
		return model.Record{}, err
	}
	s.items[idx].Title = title
	s.items[idx].Subtitle = subtitle
	rec := s.items[idx]
	s.mu.Unlock()

	s.publish(Event{Kind: EventUpdated, Record: rec, Message: MsgChangesSaved})
	return rec, nil
}

// ToggleComplete flips the completed flag and returns the new state.
func (s *Store) ToggleComplete(id int) (model.Record, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Record{}, &model.NotFoundError{ID: id}
	}
	s.items[idx].Completed = !s.items[idx].Completed
	rec := s.items[idx]
	s.mu.Unlock()

	s.publish(Event{Kind: EventToggled, Record: rec})
	return rec, nil
}

// Delete removes the record with id. Missing ids are ignored; the result
// reports whether anything was removed.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	rec := s.items[idx]
	s.items = slices.Delete(s.items, idx, idx+1)
	s.mu.Unlock()

	s.publish(Event{Kind: EventDeleted, Record: rec})
	return true
}

// FindByID looks up a record without modifying anything.
func (s *Store) FindByID(id int) (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Record{}, false
	}
	return s.items[idx], true
}

// callers hold s.mu
func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.items, func(r model.Record) bool { return r.ID == id })
}
