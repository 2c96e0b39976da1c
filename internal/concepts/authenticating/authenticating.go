// Package authenticating owns account records: usernames and credentials.
// It never references another concept's storage; other concepts hold account
// ids as opaque strings.
package authenticating

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hearth-social/hearth/server/internal/apperrors"
	"github.com/hearth-social/hearth/server/internal/docstore"
)

// AccountDoc is the stored shape. The password hash never crosses the
// concept boundary; reads return Account instead.
type AccountDoc struct {
	docstore.Base
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Account is the sanitized view returned by every lookup.
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Concept struct {
	accounts *docstore.Collection[AccountDoc]
}

func New(db *docstore.DB) (*Concept, error) {
	accounts, err := docstore.NewCollection[AccountDoc](db, "accounts")
	if err != nil {
		return nil, err
	}
	return &Concept{accounts: accounts}, nil
}

// Create registers a new account. The username must be unused (case
// sensitive).
func (c *Concept) Create(ctx context.Context, username, password string) (*Account, error) {
	if username == "" || password == "" {
		return nil, apperrors.Invalidf("username and password must not be empty")
	}
	existing, err := c.accounts.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflictf("username %q is already taken", username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	doc := &AccountDoc{Username: username, PasswordHash: string(hash)}
	if _, err := c.accounts.CreateOne(ctx, doc); err != nil {
		return nil, err
	}
	return sanitize(doc), nil
}

// Authenticate verifies a username/password pair. Mismatches on either side
// surface as the same authentication failure.
func (c *Concept) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	doc, err := c.accounts.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.Unauthenticatedf("invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthenticatedf("invalid username or password")
	}
	return sanitize(doc), nil
}

func (c *Concept) GetByID(ctx context.Context, id string) (*Account, error) {
	doc, err := c.accounts.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFoundf("account %s does not exist", id)
	}
	return sanitize(doc), nil
}

func (c *Concept) GetByUsername(ctx context.Context, username string) (*Account, error) {
	doc, err := c.accounts.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFoundf("account %q does not exist", username)
	}
	return sanitize(doc), nil
}

func (c *Concept) List(ctx context.Context) ([]*Account, error) {
	docs, err := c.accounts.ReadMany(ctx, nil, docstore.Asc("username"))
	if err != nil {
		return nil, err
	}
	out := make([]*Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, sanitize(d))
	}
	return out, nil
}

// UpdateUsername renames the account, re-checking uniqueness.
func (c *Concept) UpdateUsername(ctx context.Context, id, username string) error {
	if username == "" {
		return apperrors.Invalidf("username must not be empty")
	}
	existing, err := c.accounts.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return apperrors.Conflictf("username %q is already taken", username)
	}
	n, err := c.accounts.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{"username": username})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("account %s does not exist", id)
	}
	return nil
}

// UpdatePassword requires the current credential before accepting the new one.
func (c *Concept) UpdatePassword(ctx context.Context, id, current, next string) error {
	if next == "" {
		return apperrors.Invalidf("new password must not be empty")
	}
	doc, err := c.accounts.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NotFoundf("account %s does not exist", id)
	}
	if bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(current)) != nil {
		return apperrors.Unauthenticatedf("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = c.accounts.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{"passwordHash": string(hash)})
	return err
}

func (c *Concept) Delete(ctx context.Context, id string) error {
	n, err := c.accounts.DeleteOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("account %s does not exist", id)
	}
	return nil
}

// UsernamesByIDs resolves account ids to display names. Ids that no longer
// resolve map to "DELETED_USER" so stale references stay renderable.
func (c *Concept) UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		doc, err := c.accounts.ReadOne(ctx, docstore.Filter{"id": id})
		if err != nil {
			return nil, err
		}
		if doc == nil {
			out[id] = "DELETED_USER"
		} else {
			out[id] = doc.Username
		}
	}
	return out, nil
}

func sanitize(d *AccountDoc) *Account {
	return &Account{ID: d.ID, Username: d.Username, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}
