package grouping

import (
	"context"
	"path/filepath"
	"testing"

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

func TestCreatorIsFirstMember(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	group, err := c.Create(ctx, "alice", "book club", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := c.AssertIsInGroup(ctx, "alice", group.ID); err != nil {
		t.Fatalf("creator not a member: %v", err)
	}
	members, err := c.GetMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetMembers: %v", err)
	}
	if len(members) != 1 || members[0] != "alice" {
		t.Fatalf("members = %v", members)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	c := newTestConcept(t)
	if _, err := c.Create(context.Background(), "alice", "", nil, nil); apperrors.KindOf(err) != apperrors.KindInvalid {
		t.Fatalf("kind = %v, want Invalid", apperrors.KindOf(err))
	}
}

func TestInviteIsIdempotent(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	group, _ := c.Create(ctx, "alice", "book club", nil, nil)

	msg, err := c.InviteUser(ctx, group.ID, "bob")
	if err != nil {
		t.Fatalf("InviteUser: %v", err)
	}
	if msg != "User has been successfully invited!" {
		t.Fatalf("first invite msg = %q", msg)
	}

	msg, err = c.InviteUser(ctx, group.ID, "bob")
	if err != nil {
		t.Fatalf("re-invite: %v", err)
	}
	if msg != "User is already a member!" {
		t.Fatalf("re-invite msg = %q", msg)
	}

	members, _ := c.GetMembers(ctx, group.ID)
	if len(members) != 2 {
		t.Fatalf("members = %v, want exactly 2", members)
	}
}

func TestAssertIsInGroupDistinguishesMissingFromExcluded(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	group, _ := c.Create(ctx, "alice", "book club", nil, nil)

	if err := c.AssertIsInGroup(ctx, "bob", "no-such-group"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("missing group: kind = %v, want NotFound", apperrors.KindOf(err))
	}
	if err := c.AssertIsInGroup(ctx, "bob", group.ID); apperrors.KindOf(err) != apperrors.KindNotAllowed {
		t.Fatalf("non-member: kind = %v, want NotAllowed", apperrors.KindOf(err))
	}
}

func TestLeaveGroupFailsLoudlyForNonMembers(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	group, _ := c.Create(ctx, "alice", "book club", nil, nil)
	if _, err := c.InviteUser(ctx, group.ID, "bob"); err != nil {
		t.Fatalf("InviteUser: %v", err)
	}

	msg, err := c.LeaveGroup(ctx, group.ID, "bob")
	if err != nil {
		t.Fatalf("LeaveGroup: %v", err)
	}
	if msg != "You have successfully left the group!" {
		t.Fatalf("leave msg = %q", msg)
	}
	// A repeated leave is an authorization failure, not a no-op.
	if _, err := c.LeaveGroup(ctx, group.ID, "bob"); apperrors.KindOf(err) != apperrors.KindNotAllowed {
		t.Fatalf("second leave: kind = %v, want NotAllowed", apperrors.KindOf(err))
	}

	members, _ := c.GetMembers(ctx, group.ID)
	if len(members) != 1 || members[0] != "alice" {
		t.Fatalf("members = %v", members)
	}
}

func TestGroupOptionsRoundTrip(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	privacy := "private"
	theme := "amber"
	desc := "weekly reads"
	group, err := c.Create(ctx, "alice", "book club", &desc, &GroupOptions{
		Privacy:    &privacy,
		ColorTheme: &theme,
		Roles:      []string{"moderator"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := c.Get(ctx, group.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Description == nil || *got.Description != "weekly reads" {
		t.Fatalf("description = %v", got.Description)
	}
	if got.Options == nil || got.Options.Privacy == nil || *got.Options.Privacy != "private" {
		t.Fatalf("options = %+v", got.Options)
	}
	if len(got.Options.Roles) != 1 || got.Options.Roles[0] != "moderator" {
		t.Fatalf("roles = %v", got.Options.Roles)
	}
}
