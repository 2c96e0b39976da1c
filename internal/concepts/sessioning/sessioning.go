// Package sessioning binds an opaque session context to at most one account
// reference. It stores a bare identifier, never an account record; cookie
// transport belongs to the composition layer.
package sessioning

import (
	"context"

	"github.com/hearth-social/hearth/server/internal/apperrors"
	"github.com/hearth-social/hearth/server/internal/docstore"
)

type SessionDoc struct {
	docstore.Base
	AccountID *string `json:"accountId"`
}

type Concept struct {
	sessions *docstore.Collection[SessionDoc]
}

func New(db *docstore.DB) (*Concept, error) {
	sessions, err := docstore.NewCollection[SessionDoc](db, "sessions")
	if err != nil {
		return nil, err
	}
	return &Concept{sessions: sessions}, nil
}

// Ensure returns a valid session id, creating a fresh session when id is
// empty or no longer resolves.
func (c *Concept) Ensure(ctx context.Context, id string) (string, error) {
	if id != "" {
		doc, err := c.sessions.ReadOne(ctx, docstore.Filter{"id": id})
		if err != nil {
			return "", err
		}
		if doc != nil {
			return id, nil
		}
	}
	return c.sessions.CreateOne(ctx, &SessionDoc{})
}

// Start binds an account to the session. Fails when already logged in.
func (c *Concept) Start(ctx context.Context, sessionID, accountID string) error {
	doc, err := c.sessions.ReadOne(ctx, docstore.Filter{"id": sessionID})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NotFoundf("session %s does not exist", sessionID)
	}
	if doc.AccountID != nil {
		return apperrors.NotAllowedf("session %s is already logged in", sessionID)
	}
	_, err = c.sessions.PartialUpdateOne(ctx, docstore.Filter{"id": sessionID}, docstore.Patch{"accountId": accountID})
	return err
}

// End clears the bound account. Fails when not logged in.
func (c *Concept) End(ctx context.Context, sessionID string) error {
	doc, err := c.sessions.ReadOne(ctx, docstore.Filter{"id": sessionID})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NotFoundf("session %s does not exist", sessionID)
	}
	if doc.AccountID == nil {
		return apperrors.NotAllowedf("session %s is not logged in", sessionID)
	}
	_, err = c.sessions.PartialUpdateOne(ctx, docstore.Filter{"id": sessionID}, docstore.Patch{"accountId": nil})
	return err
}

// GetAccount returns the bound account id or an authentication failure.
func (c *Concept) GetAccount(ctx context.Context, sessionID string) (string, error) {
	doc, err := c.sessions.ReadOne(ctx, docstore.Filter{"id": sessionID})
	if err != nil {
		return "", err
	}
	if doc == nil || doc.AccountID == nil {
		return "", apperrors.Unauthenticatedf("must be logged in")
	}
	return *doc.AccountID, nil
}

// AssertLoggedOut guards operations reserved for anonymous sessions.
func (c *Concept) AssertLoggedOut(ctx context.Context, sessionID string) error {
	doc, err := c.sessions.ReadOne(ctx, docstore.Filter{"id": sessionID})
	if err != nil {
		return err
	}
	if doc != nil && doc.AccountID != nil {
		return apperrors.NotAllowedf("session %s is already logged in", sessionID)
	}
	return nil
}
