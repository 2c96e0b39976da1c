package sync

import (
	"context"
	"time"

	"github.com/hearth-social/hearth/server/internal/concepts/eventing"
	"github.com/hearth-social/hearth/server/internal/concepts/friending"
	"github.com/hearth-social/hearth/server/internal/concepts/grouping"
	"github.com/hearth-social/hearth/server/internal/concepts/posting"
)

// Formatter is the read-only projection that enriches raw records with
// display fields resolved from other concepts. It resolves author and
// creator ids to usernames so opaque identifiers never leak where a display
// name is expected. It mutates nothing and lives outside every concept.
type Formatter struct {
	auth Authenticator
}

type PostView struct {
	ID        string               `json:"id"`
	Author    string               `json:"author"`
	Content   string               `json:"content"`
	GroupID   string               `json:"groupId"`
	Options   *posting.PostOptions `json:"options,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type ImagePostView struct {
	ID          string               `json:"id"`
	Author      string               `json:"author"`
	ImageURL    string               `json:"imageUrl"`
	Description *string              `json:"description,omitempty"`
	GroupID     string               `json:"groupId"`
	Options     *posting.PostOptions `json:"options,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type EventView struct {
	ID          string                 `json:"id"`
	Creator     string                 `json:"creator"`
	GroupID     string                 `json:"groupId"`
	Title       string                 `json:"title"`
	Date        time.Time              `json:"date"`
	Description *string                `json:"description,omitempty"`
	Attendees   []string               `json:"attendees,omitempty"`
	Options     *eventing.EventOptions `json:"options,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type GroupView struct {
	ID          string                 `json:"id"`
	Creator     string                 `json:"creator"`
	Title       string                 `json:"title"`
	Members     []string               `json:"members"`
	Description *string                `json:"description,omitempty"`
	Options     *grouping.GroupOptions `json:"options,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type FriendRequestView struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (f *Formatter) Post(ctx context.Context, doc *posting.PostDoc) (*PostView, error) {
	views, err := f.Posts(ctx, []*posting.PostDoc{doc})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (f *Formatter) Posts(ctx context.Context, docs []*posting.PostDoc) ([]*PostView, error) {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.Author)
	}
	names, err := f.auth.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*PostView, 0, len(docs))
	for _, d := range docs {
		out = append(out, &PostView{
			ID:        d.ID,
			Author:    names[d.Author],
			Content:   d.Content,
			GroupID:   d.GroupID,
			Options:   d.Options,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return out, nil
}

func (f *Formatter) ImagePost(ctx context.Context, doc *posting.ImagePostDoc) (*ImagePostView, error) {
	views, err := f.ImagePosts(ctx, []*posting.ImagePostDoc{doc})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (f *Formatter) ImagePosts(ctx context.Context, docs []*posting.ImagePostDoc) ([]*ImagePostView, error) {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.Author)
	}
	names, err := f.auth.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*ImagePostView, 0, len(docs))
	for _, d := range docs {
		out = append(out, &ImagePostView{
			ID:          d.ID,
			Author:      names[d.Author],
			ImageURL:    d.ImageURL,
			Description: d.Description,
			GroupID:     d.GroupID,
			Options:     d.Options,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		})
	}
	return out, nil
}

func (f *Formatter) Event(ctx context.Context, doc *eventing.EventDoc) (*EventView, error) {
	views, err := f.Events(ctx, []*eventing.EventDoc{doc})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (f *Formatter) Events(ctx context.Context, docs []*eventing.EventDoc) ([]*EventView, error) {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.Creator)
	}
	names, err := f.auth.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*EventView, 0, len(docs))
	for _, d := range docs {
		out = append(out, &EventView{
			ID:          d.ID,
			Creator:     names[d.Creator],
			GroupID:     d.GroupID,
			Title:       d.Title,
			Date:        d.Date,
			Description: d.Description,
			Attendees:   d.Attendees,
			Options:     d.Options,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		})
	}
	return out, nil
}

func (f *Formatter) Group(ctx context.Context, doc *grouping.GroupDoc) (*GroupView, error) {
	views, err := f.Groups(ctx, []*grouping.GroupDoc{doc})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (f *Formatter) Groups(ctx context.Context, docs []*grouping.GroupDoc) ([]*GroupView, error) {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.Creator)
	}
	names, err := f.auth.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*GroupView, 0, len(docs))
	for _, d := range docs {
		out = append(out, &GroupView{
			ID:          d.ID,
			Creator:     names[d.Creator],
			Title:       d.Title,
			Members:     d.Members,
			Description: d.Description,
			Options:     d.Options,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		})
	}
	return out, nil
}

func (f *Formatter) FriendRequests(ctx context.Context, docs []*friending.RequestDoc) ([]*FriendRequestView, error) {
	ids := make([]string, 0, 2*len(docs))
	for _, d := range docs {
		ids = append(ids, d.From, d.To)
	}
	names, err := f.auth.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*FriendRequestView, 0, len(docs))
	for _, d := range docs {
		out = append(out, &FriendRequestView{
			ID:        d.ID,
			From:      names[d.From],
			To:        names[d.To],
			Status:    string(d.Status),
			CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}
