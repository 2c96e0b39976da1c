// Package posting owns text posts and image posts: two parallel entity
// collections with the same (author, group) lifecycle. Ownership gates
// mutation; group membership gates creation, which is enforced upstream by
// the composition layer.
package posting

import (
	"context"

	"github.com/hearth-social/hearth/server/internal/apperrors"
	"github.com/hearth-social/hearth/server/internal/docstore"
)

type PostOptions struct {
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

type PostDoc struct {
	docstore.Base
	Author  string       `json:"author"`
	Content string       `json:"content"`
	GroupID string       `json:"groupId"`
	Options *PostOptions `json:"options,omitempty"`
}

type ImagePostDoc struct {
	docstore.Base
	Author      string       `json:"author"`
	ImageURL    string       `json:"imageUrl"`
	Description *string      `json:"description,omitempty"`
	GroupID     string       `json:"groupId"`
	Options     *PostOptions `json:"options,omitempty"`
}

type Concept struct {
	posts      *docstore.Collection[PostDoc]
	imagePosts *docstore.Collection[ImagePostDoc]
}

func New(db *docstore.DB) (*Concept, error) {
	posts, err := docstore.NewCollection[PostDoc](db, "posts")
	if err != nil {
		return nil, err
	}
	imagePosts, err := docstore.NewCollection[ImagePostDoc](db, "image_posts")
	if err != nil {
		return nil, err
	}
	return &Concept{posts: posts, imagePosts: imagePosts}, nil
}

// --- Text posts ---

func (c *Concept) CreatePost(ctx context.Context, author, content, groupID string, options *PostOptions) (*PostDoc, error) {
	if content == "" {
		return nil, apperrors.Invalidf("post content must not be empty")
	}
	doc := &PostDoc{Author: author, Content: content, GroupID: groupID, Options: options}
	if _, err := c.posts.CreateOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Concept) GetPost(ctx context.Context, id string) (*PostDoc, error) {
	doc, err := c.posts.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFoundf("post %s does not exist", id)
	}
	return doc, nil
}

func (c *Concept) Posts(ctx context.Context) ([]*PostDoc, error) {
	return c.posts.ReadMany(ctx, nil, docstore.Desc("createdAt"))
}

func (c *Concept) PostsByAuthor(ctx context.Context, author string) ([]*PostDoc, error) {
	return c.posts.ReadMany(ctx, docstore.Filter{"author": author}, docstore.Desc("createdAt"))
}

// PostsByGroup filters on the group attribute at the store boundary.
func (c *Concept) PostsByGroup(ctx context.Context, groupID string) ([]*PostDoc, error) {
	return c.posts.ReadMany(ctx, docstore.Filter{"groupId": groupID}, docstore.Desc("createdAt"))
}

// UpdatePost patches content and options only; author and group are
// immutable after creation.
func (c *Concept) UpdatePost(ctx context.Context, id string, content *string, options *PostOptions) error {
	patch := docstore.Patch{}
	if content != nil {
		if *content == "" {
			return apperrors.Invalidf("post content must not be empty")
		}
		patch["content"] = *content
	}
	if options != nil {
		patch["options"] = options
	}
	if len(patch) == 0 {
		return nil
	}
	n, err := c.posts.PartialUpdateOne(ctx, docstore.Filter{"id": id}, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("post %s does not exist", id)
	}
	return nil
}

func (c *Concept) DeletePost(ctx context.Context, id string) error {
	n, err := c.posts.DeleteOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("post %s does not exist", id)
	}
	return nil
}

// AssertAuthorIsUser fails not-found when the post id does not resolve and
// not-allowed, naming both parties, when the author differs.
func (c *Concept) AssertAuthorIsUser(ctx context.Context, id, user string) error {
	doc, err := c.posts.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NotFoundf("post %s does not exist", id)
	}
	if doc.Author != user {
		return apperrors.NotAllowedf("user %s is not the author of post %s", user, id)
	}
	return nil
}

// --- Image posts ---

func (c *Concept) CreateImagePost(ctx context.Context, author, imageURL, groupID string, description *string, options *PostOptions) (*ImagePostDoc, error) {
	if imageURL == "" {
		return nil, apperrors.Invalidf("image url must not be empty")
	}
	doc := &ImagePostDoc{Author: author, ImageURL: imageURL, Description: description, GroupID: groupID, Options: options}
	if _, err := c.imagePosts.CreateOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Concept) GetImagePost(ctx context.Context, id string) (*ImagePostDoc, error) {
	doc, err := c.imagePosts.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFoundf("image post %s does not exist", id)
	}
	return doc, nil
}

func (c *Concept) ImagePosts(ctx context.Context) ([]*ImagePostDoc, error) {
	return c.imagePosts.ReadMany(ctx, nil, docstore.Desc("createdAt"))
}

func (c *Concept) ImagePostsByAuthor(ctx context.Context, author string) ([]*ImagePostDoc, error) {
	return c.imagePosts.ReadMany(ctx, docstore.Filter{"author": author}, docstore.Desc("createdAt"))
}

func (c *Concept) ImagePostsByGroup(ctx context.Context, groupID string) ([]*ImagePostDoc, error) {
	return c.imagePosts.ReadMany(ctx, docstore.Filter{"groupId": groupID}, docstore.Desc("createdAt"))
}

func (c *Concept) UpdateImagePost(ctx context.Context, id string, imageURL, description *string, options *PostOptions) error {
	patch := docstore.Patch{}
	if imageURL != nil {
		if *imageURL == "" {
			return apperrors.Invalidf("image url must not be empty")
		}
		patch["imageUrl"] = *imageURL
	}
	if description != nil {
		patch["description"] = *description
	}
	if options != nil {
		patch["options"] = options
	}
	if len(patch) == 0 {
		return nil
	}
	n, err := c.imagePosts.PartialUpdateOne(ctx, docstore.Filter{"id": id}, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("image post %s does not exist", id)
	}
	return nil
}

func (c *Concept) DeleteImagePost(ctx context.Context, id string) error {
	n, err := c.imagePosts.DeleteOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("image post %s does not exist", id)
	}
	return nil
}

func (c *Concept) AssertImageAuthorIsUser(ctx context.Context, id, user string) error {
	doc, err := c.imagePosts.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NotFoundf("image post %s does not exist", id)
	}
	if doc.Author != user {
		return apperrors.NotAllowedf("user %s is not the author of image post %s", user, id)
	}
	return nil
}
