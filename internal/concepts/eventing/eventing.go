// Package eventing owns group-scoped events with validated dates and an
// attendee set. DeleteByCreatorAndGroup is the cascading-cleanup primitive
// the composition layer runs before a user's group membership is removed.
package eventing

import (
	"context"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/hearth-social/hearth/server/internal/apperrors"
	"github.com/hearth-social/hearth/server/internal/docstore"
)

type EventOptions struct {
	Location   *string `json:"location,omitempty"`
	Reminder   *bool   `json:"reminder,omitempty"`
	ColorTheme *string `json:"colorTheme,omitempty"`
}

type EventDoc struct {
	docstore.Base
	Creator     string        `json:"creator"`
	GroupID     string        `json:"groupId"`
	Title       string        `json:"title"`
	Date        time.Time     `json:"date"`
	Description *string       `json:"description,omitempty"`
	Attendees   []string      `json:"attendees,omitempty"`
	Options     *EventOptions `json:"options,omitempty"`
}

// UpdateParams carries the optional fields of a partial event update.
type UpdateParams struct {
	Title       *string
	Date        *string
	Description *string
	Attendees   []string
}

type Concept struct {
	events *docstore.Collection[EventDoc]
}

func New(db *docstore.DB) (*Concept, error) {
	events, err := docstore.NewCollection[EventDoc](db, "events")
	if err != nil {
		return nil, err
	}
	return &Concept{events: events}, nil
}

// ParseDate accepts ISO 8601 timestamp strings only. Anything else is a
// validation error, never a silent coercion.
func ParseDate(s string) (time.Time, error) {
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return time.Time{}, apperrors.Invalidf("invalid date %q: use ISO 8601, e.g. 2024-01-01T00:00:00Z", s)
	}
	return time.Time(dt).UTC(), nil
}

// Create validates the date before any record is written.
func (c *Concept) Create(ctx context.Context, creator, groupID, title, date string, description *string, attendees []string) (*EventDoc, error) {
	if title == "" {
		return nil, apperrors.Invalidf("event title must not be empty")
	}
	parsed, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	doc := &EventDoc{
		Creator:     creator,
		GroupID:     groupID,
		Title:       title,
		Date:        parsed,
		Description: description,
		Attendees:   dedupe(attendees),
	}
	if _, err := c.events.CreateOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Concept) Get(ctx context.Context, id string) (*EventDoc, error) {
	doc, err := c.events.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFoundf("event %s does not exist", id)
	}
	return doc, nil
}

func (c *Concept) List(ctx context.Context) ([]*EventDoc, error) {
	return c.events.ReadMany(ctx, nil, docstore.Asc("date"))
}

// ListByGroup filters on the group attribute at the store boundary.
func (c *Concept) ListByGroup(ctx context.Context, groupID string) ([]*EventDoc, error) {
	return c.events.ReadMany(ctx, docstore.Filter{"groupId": groupID}, docstore.Asc("date"))
}

// ListByAttendee scans for events the user attends. Attendance is a set
// inside the document, so this cannot be an equality filter.
func (c *Concept) ListByAttendee(ctx context.Context, user string) ([]*EventDoc, error) {
	all, err := c.events.ReadMany(ctx, nil, docstore.Asc("date"))
	if err != nil {
		return nil, err
	}
	var out []*EventDoc
	for _, e := range all {
		if contains(e.Attendees, user) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Update applies the provided fields only; a provided date is re-validated.
func (c *Concept) Update(ctx context.Context, id string, params UpdateParams) error {
	patch := docstore.Patch{}
	if params.Title != nil {
		if *params.Title == "" {
			return apperrors.Invalidf("event title must not be empty")
		}
		patch["title"] = *params.Title
	}
	if params.Date != nil {
		parsed, err := ParseDate(*params.Date)
		if err != nil {
			return err
		}
		patch["date"] = parsed
	}
	if params.Description != nil {
		patch["description"] = *params.Description
	}
	if params.Attendees != nil {
		patch["attendees"] = dedupe(params.Attendees)
	}
	if len(patch) == 0 {
		return nil
	}
	n, err := c.events.PartialUpdateOne(ctx, docstore.Filter{"id": id}, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("event %s does not exist", id)
	}
	return nil
}

func (c *Concept) Delete(ctx context.Context, id string) error {
	n, err := c.events.DeleteOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("event %s does not exist", id)
	}
	return nil
}

// AddAttendee is idempotent: adding an existing attendee reports success
// without touching the set.
func (c *Concept) AddAttendee(ctx context.Context, eventID, attendee string) (string, error) {
	doc, err := c.Get(ctx, eventID)
	if err != nil {
		return "", err
	}
	if contains(doc.Attendees, attendee) {
		return "Attendee is already added!", nil
	}
	attendees := append(doc.Attendees, attendee)
	if _, err := c.events.PartialUpdateOne(ctx, docstore.Filter{"id": eventID}, docstore.Patch{"attendees": attendees}); err != nil {
		return "", err
	}
	return "Attendee added successfully!", nil
}

// AssertCreatorIsUser gates event mutation and deletion.
func (c *Concept) AssertCreatorIsUser(ctx context.Context, eventID, user string) error {
	doc, err := c.events.ReadOne(ctx, docstore.Filter{"id": eventID})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NotFoundf("event %s does not exist", eventID)
	}
	if doc.Creator != user {
		return apperrors.NotAllowedf("user %s is not the creator of event %s", user, eventID)
	}
	return nil
}

// DeleteByCreatorAndGroup removes every event the creator made in the group
// and reports the count. The composition layer calls this before committing
// a membership removal.
func (c *Concept) DeleteByCreatorAndGroup(ctx context.Context, creator, groupID string) (int64, error) {
	return c.events.DeleteMany(ctx, docstore.Filter{"creator": creator, "groupId": groupID})
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
