// Package sync is the synchronization layer: the only component allowed to
// call into more than one concept per logical operation. It sequences
// precondition checks, mutations and compensating actions across concepts
// and shapes responses for the wire. Concepts stay independent; every
// cross-concept rule lives here.
package sync

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hearth-social/hearth/server/internal/concepts/authenticating"
	"github.com/hearth-social/hearth/server/internal/concepts/eventing"
	"github.com/hearth-social/hearth/server/internal/concepts/friending"
	"github.com/hearth-social/hearth/server/internal/concepts/grouping"
	"github.com/hearth-social/hearth/server/internal/concepts/posting"
)

// The layer depends on concept behavior through interfaces so sequencing can
// be tested with faulty stand-ins (e.g. a cascade delete that fails).

type Authenticator interface {
	Create(ctx context.Context, username, password string) (*authenticating.Account, error)
	Authenticate(ctx context.Context, username, password string) (*authenticating.Account, error)
	GetByID(ctx context.Context, id string) (*authenticating.Account, error)
	GetByUsername(ctx context.Context, username string) (*authenticating.Account, error)
	List(ctx context.Context) ([]*authenticating.Account, error)
	UpdateUsername(ctx context.Context, id, username string) error
	UpdatePassword(ctx context.Context, id, current, next string) error
	Delete(ctx context.Context, id string) error
	UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type Sessioner interface {
	Ensure(ctx context.Context, id string) (string, error)
	Start(ctx context.Context, sessionID, accountID string) error
	End(ctx context.Context, sessionID string) error
	GetAccount(ctx context.Context, sessionID string) (string, error)
	AssertLoggedOut(ctx context.Context, sessionID string) error
}

type Friender interface {
	SendRequest(ctx context.Context, from, to string) error
	AcceptRequest(ctx context.Context, from, to string) error
	RejectRequest(ctx context.Context, from, to string) error
	RemoveRequest(ctx context.Context, from, to string) error
	ListRequests(ctx context.Context, user string) ([]*friending.RequestDoc, error)
	Friends(ctx context.Context, user string) ([]string, error)
	RemoveFriend(ctx context.Context, user, friend string) error
}

type Grouper interface {
	Create(ctx context.Context, creator, title string, description *string, options *grouping.GroupOptions) (*grouping.GroupDoc, error)
	Get(ctx context.Context, groupID string) (*grouping.GroupDoc, error)
	List(ctx context.Context) ([]*grouping.GroupDoc, error)
	InviteUser(ctx context.Context, groupID, invitee string) (string, error)
	AssertIsInGroup(ctx context.Context, userID, groupID string) error
	LeaveGroup(ctx context.Context, groupID, userID string) (string, error)
}

type Poster interface {
	CreatePost(ctx context.Context, author, content, groupID string, options *posting.PostOptions) (*posting.PostDoc, error)
	Posts(ctx context.Context) ([]*posting.PostDoc, error)
	PostsByAuthor(ctx context.Context, author string) ([]*posting.PostDoc, error)
	PostsByGroup(ctx context.Context, groupID string) ([]*posting.PostDoc, error)
	UpdatePost(ctx context.Context, id string, content *string, options *posting.PostOptions) error
	DeletePost(ctx context.Context, id string) error
	AssertAuthorIsUser(ctx context.Context, id, user string) error
	CreateImagePost(ctx context.Context, author, imageURL, groupID string, description *string, options *posting.PostOptions) (*posting.ImagePostDoc, error)
	ImagePosts(ctx context.Context) ([]*posting.ImagePostDoc, error)
	ImagePostsByAuthor(ctx context.Context, author string) ([]*posting.ImagePostDoc, error)
	ImagePostsByGroup(ctx context.Context, groupID string) ([]*posting.ImagePostDoc, error)
	UpdateImagePost(ctx context.Context, id string, imageURL, description *string, options *posting.PostOptions) error
	DeleteImagePost(ctx context.Context, id string) error
	AssertImageAuthorIsUser(ctx context.Context, id, user string) error
}

type Eventer interface {
	Create(ctx context.Context, creator, groupID, title, date string, description *string, attendees []string) (*eventing.EventDoc, error)
	Get(ctx context.Context, id string) (*eventing.EventDoc, error)
	ListByGroup(ctx context.Context, groupID string) ([]*eventing.EventDoc, error)
	Update(ctx context.Context, id string, params eventing.UpdateParams) error
	Delete(ctx context.Context, id string) error
	AddAttendee(ctx context.Context, eventID, attendee string) (string, error)
	AssertCreatorIsUser(ctx context.Context, eventID, user string) error
	DeleteByCreatorAndGroup(ctx context.Context, creator, groupID string) (int64, error)
}

type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Deps bundles the concepts a Syncs instance composes.
type Deps struct {
	Auth       Authenticator
	Sessions   Sessioner
	Friends    Friender
	Groups     Grouper
	Posts      Poster
	Events     Eventer
	Translator Translator
}

type Syncs struct {
	log        zerolog.Logger
	cookieName string

	auth       Authenticator
	sessions   Sessioner
	friends    Friender
	groups     Grouper
	posts      Poster
	events     Eventer
	translator Translator

	format *Formatter
}

func New(log zerolog.Logger, cookieName string, deps Deps) *Syncs {
	return &Syncs{
		log:        log,
		cookieName: cookieName,
		auth:       deps.Auth,
		sessions:   deps.Sessions,
		friends:    deps.Friends,
		groups:     deps.Groups,
		posts:      deps.Posts,
		events:     deps.Events,
		translator: deps.Translator,
		format:     &Formatter{auth: deps.Auth},
	}
}
