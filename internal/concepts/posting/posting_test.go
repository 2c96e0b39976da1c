package posting

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

func TestPostsByGroupReturnsOnlyThatGroup(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	for _, p := range []struct{ content, group string }{
		{"hello g1", "g1"},
		{"hello again", "g1"},
		{"hello g2", "g2"},
	} {
		if _, err := c.CreatePost(ctx, "alice", p.content, p.group, nil); err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}

	got, err := c.PostsByGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("PostsByGroup: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d posts for g1, want 2", len(got))
	}
	for _, p := range got {
		if p.GroupID != "g1" {
			t.Fatalf("post %s leaked from group %s", p.ID, p.GroupID)
		}
	}
}

func TestPostsByAuthor(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	if _, err := c.CreatePost(ctx, "alice", "mine", "g1", nil); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := c.CreatePost(ctx, "bob", "theirs", "g1", nil); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	got, err := c.PostsByAuthor(ctx, "alice")
	if err != nil {
		t.Fatalf("PostsByAuthor: %v", err)
	}
	if len(got) != 1 || got[0].Content != "mine" {
		t.Fatalf("PostsByAuthor = %+v", got)
	}
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	c := newTestConcept(t)
	if _, err := c.CreatePost(context.Background(), "alice", "", "g1", nil); apperrors.KindOf(err) != apperrors.KindInvalid {
		t.Fatalf("kind = %v, want Invalid", apperrors.KindOf(err))
	}
}

func TestUpdatePostKeepsAuthorAndGroup(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	post, err := c.CreatePost(ctx, "alice", "before", "g1", nil)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	content := "after"
	color := "#fff8e7"
	if err := c.UpdatePost(ctx, post.ID, &content, &PostOptions{BackgroundColor: &color}); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	got, err := c.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Content != "after" {
		t.Fatalf("content = %q", got.Content)
	}
	if got.Author != "alice" || got.GroupID != "g1" {
		t.Fatalf("author/group mutated: %+v", got)
	}
	if got.Options == nil || got.Options.BackgroundColor == nil || *got.Options.BackgroundColor != "#fff8e7" {
		t.Fatalf("options = %+v", got.Options)
	}
}

func TestAssertAuthorIsUser(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	post, _ := c.CreatePost(ctx, "alice", "hello", "g1", nil)

	if err := c.AssertAuthorIsUser(ctx, post.ID, "alice"); err != nil {
		t.Fatalf("author check failed for author: %v", err)
	}
	if err := c.AssertAuthorIsUser(ctx, post.ID, "bob"); apperrors.KindOf(err) != apperrors.KindNotAllowed {
		t.Fatalf("wrong author: kind = %v, want NotAllowed", apperrors.KindOf(err))
	}
	if err := c.AssertAuthorIsUser(ctx, "missing", "alice"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("missing post: kind = %v, want NotFound", apperrors.KindOf(err))
	}
}

func TestDeletePost(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	post, _ := c.CreatePost(ctx, "alice", "hello", "g1", nil)
	if err := c.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if err := c.DeletePost(ctx, post.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("second delete: kind = %v, want NotFound", apperrors.KindOf(err))
	}
}

func TestImagePostLifecycle(t *testing.T) {
	c := newTestConcept(t)
	ctx := context.Background()

	desc := "sunset"
	post, err := c.CreateImagePost(ctx, "alice", "https://img.example/1.jpg", "g1", &desc, nil)
	if err != nil {
		t.Fatalf("CreateImagePost: %v", err)
	}

	byGroup, err := c.ImagePostsByGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("ImagePostsByGroup: %v", err)
	}
	if len(byGroup) != 1 || byGroup[0].ImageURL != "https://img.example/1.jpg" {
		t.Fatalf("ImagePostsByGroup = %+v", byGroup)
	}

	newDesc := "sunrise"
	if err := c.UpdateImagePost(ctx, post.ID, nil, &newDesc, nil); err != nil {
		t.Fatalf("UpdateImagePost: %v", err)
	}
	got, err := c.GetImagePost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetImagePost: %v", err)
	}
	if got.Description == nil || *got.Description != "sunrise" {
		t.Fatalf("description = %v", got.Description)
	}
	if got.ImageURL != "https://img.example/1.jpg" {
		t.Fatalf("image url mutated: %q", got.ImageURL)
	}

	if err := c.AssertImageAuthorIsUser(ctx, post.ID, "bob"); apperrors.KindOf(err) != apperrors.KindNotAllowed {
		t.Fatalf("wrong author: kind = %v, want NotAllowed", apperrors.KindOf(err))
	}
	if err := c.DeleteImagePost(ctx, post.ID); err != nil {
		t.Fatalf("DeleteImagePost: %v", err)
	}
}

func TestCreateImagePostRejectsEmptyURL(t *testing.T) {
	c := newTestConcept(t)
	if _, err := c.CreateImagePost(context.Background(), "alice", "", "g1", nil, nil); apperrors.KindOf(err) != apperrors.KindInvalid {
		t.Fatalf("kind = %v, want Invalid", apperrors.KindOf(err))
	}
}
