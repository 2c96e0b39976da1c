// Package friending tracks friend requests and the friendships derived from
// accepted ones. Per ordered pair the request moves none -> pending ->
// accepted|rejected; accepted pairs collapse into a single canonical
// friendship record so symmetric queries stay cheap.
package friending

import (
	"context"

	"github.com/hearth-social/hearth/server/internal/apperrors"
	"github.com/hearth-social/hearth/server/internal/docstore"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type RequestDoc struct {
	docstore.Base
	From   string `json:"from"`
	To     string `json:"to"`
	Status Status `json:"status"`
}

// FriendshipDoc stores the pair in lexicographic order: UserA < UserB.
type FriendshipDoc struct {
	docstore.Base
	UserA string `json:"userA"`
	UserB string `json:"userB"`
}

type Concept struct {
	requests    *docstore.Collection[RequestDoc]
	friendships *docstore.Collection[FriendshipDoc]
}

func New(db *docstore.DB) (*Concept, error) {
	requests, err := docstore.NewCollection[RequestDoc](db, "friend_requests")
	if err != nil {
		return nil, err
	}
	friendships, err := docstore.NewCollection[FriendshipDoc](db, "friendships")
	if err != nil {
		return nil, err
	}
	return &Concept{requests: requests, friendships: friendships}, nil
}

// SendRequest opens a pending request from -> to. It fails when a pending
// request already exists in either direction or when the two are friends.
func (c *Concept) SendRequest(ctx context.Context, from, to string) error {
	if from == to {
		return apperrors.Invalidf("user %s cannot send a friend request to themselves", from)
	}
	friends, err := c.areFriends(ctx, from, to)
	if err != nil {
		return err
	}
	if friends {
		return apperrors.Conflictf("users %s and %s are already friends", from, to)
	}
	for _, pair := range [][2]string{{from, to}, {to, from}} {
		pending, err := c.requests.ReadOne(ctx, docstore.Filter{"from": pair[0], "to": pair[1], "status": string(StatusPending)})
		if err != nil {
			return err
		}
		if pending != nil {
			return apperrors.Conflictf("friend request between %s and %s already exists", from, to)
		}
	}
	_, err = c.requests.CreateOne(ctx, &RequestDoc{From: from, To: to, Status: StatusPending})
	return err
}

// AcceptRequest transitions the pending request and records the friendship.
func (c *Concept) AcceptRequest(ctx context.Context, from, to string) error {
	if err := c.transition(ctx, from, to, StatusAccepted); err != nil {
		return err
	}
	a, b := canonical(from, to)
	_, err := c.friendships.CreateOne(ctx, &FriendshipDoc{UserA: a, UserB: b})
	return err
}

// RejectRequest transitions the pending request to rejected.
func (c *Concept) RejectRequest(ctx context.Context, from, to string) error {
	return c.transition(ctx, from, to, StatusRejected)
}

// RemoveRequest withdraws a pending request.
func (c *Concept) RemoveRequest(ctx context.Context, from, to string) error {
	n, err := c.requests.DeleteOne(ctx, docstore.Filter{"from": from, "to": to, "status": string(StatusPending)})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("no pending friend request from %s to %s", from, to)
	}
	return nil
}

// ListRequests returns every request involving user, in either direction.
func (c *Concept) ListRequests(ctx context.Context, user string) ([]*RequestDoc, error) {
	sent, err := c.requests.ReadMany(ctx, docstore.Filter{"from": user}, docstore.Desc("createdAt"))
	if err != nil {
		return nil, err
	}
	received, err := c.requests.ReadMany(ctx, docstore.Filter{"to": user}, docstore.Desc("createdAt"))
	if err != nil {
		return nil, err
	}
	return append(sent, received...), nil
}

// Friends lists the user's friends. The relation is symmetric: b appears in
// Friends(a) exactly when a appears in Friends(b).
func (c *Concept) Friends(ctx context.Context, user string) ([]string, error) {
	var out []string
	asA, err := c.friendships.ReadMany(ctx, docstore.Filter{"userA": user})
	if err != nil {
		return nil, err
	}
	for _, f := range asA {
		out = append(out, f.UserB)
	}
	asB, err := c.friendships.ReadMany(ctx, docstore.Filter{"userB": user})
	if err != nil {
		return nil, err
	}
	for _, f := range asB {
		out = append(out, f.UserA)
	}
	return out, nil
}

// RemoveFriend deletes the friendship; one call removes both directions.
func (c *Concept) RemoveFriend(ctx context.Context, user, friend string) error {
	a, b := canonical(user, friend)
	n, err := c.friendships.DeleteOne(ctx, docstore.Filter{"userA": a, "userB": b})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("users %s and %s are not friends", user, friend)
	}
	return nil
}

func (c *Concept) transition(ctx context.Context, from, to string, status Status) error {
	n, err := c.requests.PartialUpdateOne(ctx,
		docstore.Filter{"from": from, "to": to, "status": string(StatusPending)},
		docstore.Patch{"status": string(status)})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("no pending friend request from %s to %s", from, to)
	}
	return nil
}

func (c *Concept) areFriends(ctx context.Context, x, y string) (bool, error) {
	a, b := canonical(x, y)
	doc, err := c.friendships.ReadOne(ctx, docstore.Filter{"userA": a, "userB": b})
	if err != nil {
		return false, err
	}
	return doc != nil, nil
}

func canonical(x, y string) (string, string) {
	if x < y {
		return x, y
	}
	return y, x
}
