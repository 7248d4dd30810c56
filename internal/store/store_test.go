package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/notes/internal/model"
)

func fixedClock() func() time.Time {
	ts := time.Date(2025, time.January, 2, 15, 4, 5, 0, time.UTC)
	return func() time.Time { return ts }
}

func newTestStore(opts ...Option) *Store {
	return New(append([]Option{WithClock(fixedClock())}, opts...)...)
}

func TestCreate_FirstRecord(t *testing.T) {
	s := newTestStore()

	rec, err := s.Create("Buy milk", "2% organic")
	require.NoError(t, err)

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, rec, items[0])
	assert.Equal(t, 0, rec.ID)
	assert.Equal(t, "Buy milk", rec.Title)
	assert.Equal(t, "2% organic", rec.Subtitle)
	assert.Equal(t, "2025-01-02 15:04:05", rec.CreatedAt)
	assert.False(t, rec.Completed)
}

func TestCreate_AppendsExactlyOne(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 5; i++ {
		before := s.Len()
		_, err := s.Create("title", "subtitle")
		require.NoError(t, err)
		assert.Equal(t, before+1, s.Len())
	}
}

func TestCreate_InvalidLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	_, err := s.Create("keep", "this one")
	require.NoError(t, err)
	before := s.List()

	cases := [][2]string{{"ab", "valid"}, {"valid", "no"}, {"", ""}}
	for _, c := range cases {
		_, err := s.Create(c[0], c[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrValidation))
		assert.Equal(t, before, s.List())
	}

	// a failed create must not consume an id
	rec, err := s.Create("next", "record")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID)
}

func TestCreate_IDsNotReusedAfterDelete(t *testing.T) {
	s := newTestStore()
	a, _ := s.Create("first", "item")
	b, _ := s.Create("second", "item")
	require.Equal(t, 0, a.ID)
	require.Equal(t, 1, b.ID)

	require.True(t, s.Delete(0))
	rec, err := s.Create("New", "Item")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.ID)

	seen := map[int]bool{}
	for _, it := range s.List() {
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}
}

func TestUpdate_KeepsIdentityAndTimestamp(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return now }))
	orig, err := s.Create("Buy milk", "2% organic")
	require.NoError(t, err)
	_, err = s.ToggleComplete(orig.ID)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	got, err := s.Update(orig.ID, "Buy oat milk", "barista")
	require.NoError(t, err)

	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.True(t, got.Completed)
	assert.Equal(t, "Buy oat milk", got.Title)
	assert.Equal(t, "barista", got.Subtitle)

	stored, ok := s.FindByID(orig.ID)
	require.True(t, ok)
	assert.Equal(t, got, stored)
}

func TestUpdate_LenientRule(t *testing.T) {
	s := newTestStore()
	rec, _ := s.Create("title", "subtitle")

	got, err := s.Update(rec.ID, "X", "Y")
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)

	_, err = s.Update(rec.ID, "  ", "Y")
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has(model.FieldTitle))

	stored, _ := s.FindByID(rec.ID)
	assert.Equal(t, "X", stored.Title)
}

func TestUpdate_StrictRule(t *testing.T) {
	s := newTestStore(WithStrictEdit(true))
	rec, _ := s.Create("title", "subtitle")

	_, err := s.Update(rec.ID, "X", "Y")
	require.ErrorIs(t, err, model.ErrValidation)

	stored, _ := s.FindByID(rec.ID)
	assert.Equal(t, "title", stored.Title)
}

func TestUpdate_NotFound(t *testing.T) {
	s := newTestStore()
	_, _ = s.Create("one", "two")
	before := s.List()

	_, err := s.Update(5, "X", "Y")
	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 5, nf.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.Equal(t, before, s.List())
}

func TestToggleComplete_Involution(t *testing.T) {
	s := newTestStore()
	rec, _ := s.Create("walk", "the dog")

	got, err := s.ToggleComplete(rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = s.ToggleComplete(rec.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)

	_, err = s.ToggleComplete(42)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	s := newTestStore()
	_, _ = s.Create("aaa", "bbb")
	rec, _ := s.Create("ccc", "ddd")
	_, _ = s.Create("eee", "fff")

	assert.True(t, s.Delete(rec.ID))
	after := s.List()
	assert.False(t, s.Delete(rec.ID))
	assert.Equal(t, after, s.List())

	require.Len(t, after, 2)
	assert.Equal(t, "aaa", after[0].Title)
	assert.Equal(t, "eee", after[1].Title)
}

func TestList_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	_, _ = s.Create("aaa", "bbb")

	items := s.List()
	items[0].Title = "mutated"

	stored, _ := s.FindByID(0)
	assert.Equal(t, "aaa", stored.Title)
}

func TestStats(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 3; i++ {
		_, _ = s.Create("task", "details")
	}
	_, _ = s.ToggleComplete(1)

	done, pending := s.Stats()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	s := newTestStore()
	events, cancel := s.Subscribe()
	defer cancel()

	rec, _ := s.Create("aaa", "bbb")
	_, _ = s.Update(rec.ID, "ccc", "ddd")
	_, _ = s.ToggleComplete(rec.ID)
	s.Delete(rec.ID)
	s.Delete(rec.ID)
	_, _ = s.Create("x", "y")

	var kinds []EventKind
	for i := 0; i < 4; i++ {
		ev := <-events
		kinds = append(kinds, ev.Kind)
		if ev.Kind == EventUpdated {
			assert.Equal(t, MsgChangesSaved, ev.Message)
			assert.Equal(t, "ccc", ev.Record.Title)
		}
	}
	assert.Equal(t, []EventKind{EventCreated, EventUpdated, EventToggled, EventDeleted}, kinds)

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %v", ev)
	default:
	}
}

func TestSubscribe_DropsWhenFull(t *testing.T) {
	s := newTestStore(WithEventBuffer(1))
	events, cancel := s.Subscribe()

	_, _ = s.Create("aaa", "bbb")
	_, _ = s.Create("ccc", "ddd")
	assert.Equal(t, 2, s.Len())

	ev := <-events
	assert.Equal(t, "aaa", ev.Record.Title)

	cancel()
	cancel()
	_, ok := <-events
	assert.False(t, ok)

	_, err := s.Create("eee", "fff")
	assert.NoError(t, err)
}
