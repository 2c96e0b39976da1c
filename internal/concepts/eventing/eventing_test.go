package eventing

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hearth-social/hearth/server/internal/apperrors"
	"github.com/hearth-social/hearth/server/internal/docstore"
)

func newTestConcept(t *testing.T) *Concept {
	t.Helper()
	db, err := docstore.OpenSQLite(filepath.Join(t.TempDir(), "hearth.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	c, err := New(db)
	if err != nil {
		t.Fatalf("new concept: %v", err)
	}
	return c
}

func TestCreateParsesAndStoresDate(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	event, err := c.Create(ctx, "alice", "g1", "game night", "2026-09-12T19:30:00Z", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := c.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", got.Date, want)
	}
}

func TestCreateRejectsBadDateBeforeWriting(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	_, err := c.Create(ctx, "alice", "g1", "game night", "next tuesday", nil, nil)
	if apperrors.KindOf(err) != apperrors.KindInvalid {
		t.Fatalf("kind = %v, want Invalid", apperrors.KindOf(err))
	}

	events, err := c.ListByGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("ListByGroup: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("rejected create still wrote %d events", len(events))
	}
}

func TestCreateDeduplicatesAttendees(t *testing.T) {
	c := newTestConcept(t)
	event, err := c.Create(context.Background(), "alice", "g1", "game night",
		"2026-09-12T19:30:00Z", nil, []string{"alice", "bob", "alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(event.Attendees) != 2 {
		t.Fatalf("attendees = %v, want deduped pair", event.Attendees)
	}
}

func TestListByGroupSortsByDate(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	for _, e := range []struct{ title, date string }{
		{"later", "2026-12-01T10:00:00Z"},
		{"sooner", "2026-10-01T10:00:00Z"},
	} {
		if _, err := c.Create(ctx, "alice", "g1", e.title, e.date, nil, nil); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := c.Create(ctx, "alice", "g2", "elsewhere", "2026-11-01T10:00:00Z", nil, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	events, err := c.ListByGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("ListByGroup: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Title != "sooner" || events[1].Title != "later" {
		t.Fatalf("order = %s, %s", events[0].Title, events[1].Title)
	}
}

func TestUpdateRevalidatesDate(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	event, _ := c.Create(ctx, "alice", "g1", "game night", "2026-09-12T19:30:00Z", nil, nil)

	bad := "soonish"
	if err := c.Update(ctx, event.ID, UpdateParams{Date: &bad}); apperrors.KindOf(err) != apperrors.KindInvalid {
		t.Fatalf("kind = %v, want Invalid", apperrors.KindOf(err))
	}

	good := "2026-09-13T19:30:00Z"
	title := "postponed game night"
	if err := c.Update(ctx, event.ID, UpdateParams{Title: &title, Date: &good}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := c.Get(ctx, event.ID)
	if got.Title != "postponed game night" {
		t.Fatalf("title = %q", got.Title)
	}
	if !got.Date.Equal(time.Date(2026, 9, 13, 19, 30, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", got.Date)
	}
	if got.Creator != "alice" || got.GroupID != "g1" {
		t.Fatalf("creator/group mutated: %+v", got)
	}
}

func TestAddAttendeeIsIdempotent(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	event, _ := c.Create(ctx, "alice", "g1", "game night", "2026-09-12T19:30:00Z", nil, nil)

	msg, err := c.AddAttendee(ctx, event.ID, "bob")
	if err != nil {
		t.Fatalf("AddAttendee: %v", err)
	}
	if msg != "Attendee added successfully!" {
		t.Fatalf("first add msg = %q", msg)
	}

	msg, err = c.AddAttendee(ctx, event.ID, "bob")
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if msg != "Attendee is already added!" {
		t.Fatalf("re-add msg = %q", msg)
	}

	got, _ := c.Get(ctx, event.ID)
	if len(got.Attendees) != 1 {
		t.Fatalf("attendees = %v, want exactly one", got.Attendees)
	}
}

func TestListByAttendee(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	in, _ := c.Create(ctx, "alice", "g1", "attended", "2026-09-12T19:30:00Z", nil, []string{"bob"})
	if _, err := c.Create(ctx, "alice", "g1", "skipped", "2026-09-13T19:30:00Z", nil, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	events, err := c.ListByAttendee(ctx, "bob")
	if err != nil {
		t.Fatalf("ListByAttendee: %v", err)
	}
	if len(events) != 1 || events[0].ID != in.ID {
		t.Fatalf("ListByAttendee = %+v", events)
	}
}

func TestAssertCreatorIsUser(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	event, _ := c.Create(ctx, "alice", "g1", "game night", "2026-09-12T19:30:00Z", nil, nil)

	if err := c.AssertCreatorIsUser(ctx, event.ID, "alice"); err != nil {
		t.Fatalf("creator check failed for creator: %v", err)
	}
	if err := c.AssertCreatorIsUser(ctx, event.ID, "bob"); apperrors.KindOf(err) != apperrors.KindNotAllowed {
		t.Fatalf("wrong user: kind = %v, want NotAllowed", apperrors.KindOf(err))
	}
	if err := c.AssertCreatorIsUser(ctx, "missing", "alice"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("missing event: kind = %v, want NotFound", apperrors.KindOf(err))
	}
}

func TestDeleteByCreatorAndGroupCountsScopedDeletes(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	dates := []string{"2026-09-12T19:30:00Z", "2026-09-19T19:30:00Z", "2026-09-26T19:30:00Z"}
	for _, d := range dates {
		if _, err := c.Create(ctx, "alice", "g1", "weekly", d, nil, nil); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := c.Create(ctx, "bob", "g1", "bobs", dates[0], nil, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := c.Create(ctx, "alice", "g2", "other group", dates[0], nil, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := c.DeleteByCreatorAndGroup(ctx, "alice", "g1")
	if err != nil {
		t.Fatalf("DeleteByCreatorAndGroup: %v", err)
	}
	if n != 3 {
		t.Fatalf("deleted %d events, want 3", n)
	}

	remaining, _ := c.ListByGroup(ctx, "g1")
	if len(remaining) != 1 || remaining[0].Creator != "bob" {
		t.Fatalf("remaining in g1 = %+v", remaining)
	}
	other, _ := c.ListByGroup(ctx, "g2")
	if len(other) != 1 {
		t.Fatalf("g2 events disturbed: %+v", other)
	}
}
