// Package grouping owns groups and their member sets. Membership is the
// authorization boundary for group-scoped content; AssertIsInGroup is the
// primitive other operations are gated on by the composition layer.
package grouping

import (
	"context"

	"github.com/hearth-social/hearth/server/internal/apperrors"
	"github.com/hearth-social/hearth/server/internal/docstore"
)

type GroupOptions struct {
	Privacy    *string  `json:"privacy,omitempty"`
	ColorTheme *string  `json:"colorTheme,omitempty"`
	Roles      []string `json:"roles,omitempty"`
}

type GroupDoc struct {
	docstore.Base
	Creator     string        `json:"creator"`
	Title       string        `json:"title"`
	Members     []string      `json:"members"`
	Description *string       `json:"description,omitempty"`
	Options     *GroupOptions `json:"options,omitempty"`
}

type Concept struct {
	groups *docstore.Collection[GroupDoc]
}

func New(db *docstore.DB) (*Concept, error) {
	groups, err := docstore.NewCollection[GroupDoc](db, "groups")
	if err != nil {
		return nil, err
	}
	return &Concept{groups: groups}, nil
}

// Create makes a group with the creator as its first member.
func (c *Concept) Create(ctx context.Context, creator, title string, description *string, options *GroupOptions) (*GroupDoc, error) {
	if title == "" {
		return nil, apperrors.Invalidf("group title must not be empty")
	}
	doc := &GroupDoc{Creator: creator, Title: title, Members: []string{creator}, Description: description, Options: options}
	if _, err := c.groups.CreateOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Concept) Get(ctx context.Context, groupID string) (*GroupDoc, error) {
	doc, err := c.groups.ReadOne(ctx, docstore.Filter{"id": groupID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFoundf("group %s does not exist", groupID)
	}
	return doc, nil
}

func (c *Concept) List(ctx context.Context) ([]*GroupDoc, error) {
	return c.groups.ReadMany(ctx, nil, docstore.Desc("createdAt"))
}

func (c *Concept) GetMembers(ctx context.Context, groupID string) ([]string, error) {
	doc, err := c.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return doc.Members, nil
}

// InviteUser adds invitee to the member set. Re-inviting an existing member
// is a no-op success, not an error.
func (c *Concept) InviteUser(ctx context.Context, groupID, invitee string) (string, error) {
	doc, err := c.Get(ctx, groupID)
	if err != nil {
		return "", err
	}
	if contains(doc.Members, invitee) {
		return "User is already a member!", nil
	}
	members := append(doc.Members, invitee)
	if _, err := c.groups.PartialUpdateOne(ctx, docstore.Filter{"id": groupID}, docstore.Patch{"members": members}); err != nil {
		return "", err
	}
	return "User has been successfully invited!", nil
}

// AssertIsInGroup distinguishes an unresolvable group (not found) from an
// existing group the user is simply not a member of (not allowed).
func (c *Concept) AssertIsInGroup(ctx context.Context, userID, groupID string) error {
	doc, err := c.groups.ReadOne(ctx, docstore.Filter{"id": groupID})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NotFoundf("group %s does not exist", groupID)
	}
	if !contains(doc.Members, userID) {
		return apperrors.NotAllowedf("user %s is not a member of group %s", userID, groupID)
	}
	return nil
}

// LeaveGroup removes the user from the member set. Leaving a group the user
// is not in fails loudly; a repeated leave is not a no-op.
func (c *Concept) LeaveGroup(ctx context.Context, groupID, userID string) (string, error) {
	doc, err := c.Get(ctx, groupID)
	if err != nil {
		return "", err
	}
	if !contains(doc.Members, userID) {
		return "", apperrors.NotAllowedf("user %s is not a member of group %s", userID, groupID)
	}
	members := make([]string, 0, len(doc.Members)-1)
	for _, m := range doc.Members {
		if m != userID {
			members = append(members, m)
		}
	}
	if _, err := c.groups.PartialUpdateOne(ctx, docstore.Filter{"id": groupID}, docstore.Patch{"members": members}); err != nil {
		return "", err
	}
	return "You have successfully left the group!", nil
}

func contains(members []string, id string) bool {
	for _, m := range members {
		if m == id {
			return true
		}
	}
	return false
}
