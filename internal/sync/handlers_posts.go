package sync

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hearth-social/hearth/server/internal/concepts/posting"
)

func (s *Syncs) handleGetPosts(w http.ResponseWriter, r *http.Request) {
	var docs []*posting.PostDoc
	if author := r.URL.Query().Get("author"); author != "" {
		account, err := s.auth.GetByUsername(r.Context(), author)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		docs, err = s.posts.PostsByAuthor(r.Context(), account.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	} else {
		var err error
		docs, err = s.posts.Posts(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	views, err := s.format.Posts(r.Context(), docs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

// Posting into a group requires membership in that group.
func (s *Syncs) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in struct {
		Content string               `json:"content"`
		GroupID string               `json:"groupId"`
		Options *posting.PostOptions `json:"options"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.groups.AssertIsInGroup(r.Context(), user, in.GroupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.posts.CreatePost(r.Context(), user, in.Content, in.GroupID, in.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.format.Post(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"msg": "Post successfully created!", "post": view})
}

func (s *Syncs) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	var in struct {
		Content *string              `json:"content"`
		Options *posting.PostOptions `json:"options"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.posts.AssertAuthorIsUser(r.Context(), id, user); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.posts.UpdatePost(r.Context(), id, in.Content, in.Options); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Post successfully updated!"})
}

func (s *Syncs) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.posts.AssertAuthorIsUser(r.Context(), id, user); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.posts.DeletePost(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Post deleted successfully!"})
}

func (s *Syncs) handleGetImagePosts(w http.ResponseWriter, r *http.Request) {
	var docs []*posting.ImagePostDoc
	if author := r.URL.Query().Get("author"); author != "" {
		account, err := s.auth.GetByUsername(r.Context(), author)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		docs, err = s.posts.ImagePostsByAuthor(r.Context(), account.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	} else {
		var err error
		docs, err = s.posts.ImagePosts(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	views, err := s.format.ImagePosts(r.Context(), docs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Syncs) handleCreateImagePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in struct {
		ImageURL    string               `json:"imageUrl"`
		Description *string              `json:"description"`
		GroupID     string               `json:"groupId"`
		Options     *posting.PostOptions `json:"options"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.groups.AssertIsInGroup(r.Context(), user, in.GroupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.posts.CreateImagePost(r.Context(), user, in.ImageURL, in.GroupID, in.Description, in.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.format.ImagePost(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"msg": "Image post successfully created!", "imagePost": view})
}

func (s *Syncs) handleUpdateImagePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	var in struct {
		ImageURL    *string              `json:"imageUrl"`
		Description *string              `json:"description"`
		Options     *posting.PostOptions `json:"options"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.posts.AssertImageAuthorIsUser(r.Context(), id, user); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.posts.UpdateImagePost(r.Context(), id, in.ImageURL, in.Description, in.Options); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Image post successfully updated!"})
}

func (s *Syncs) handleDeleteImagePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.posts.AssertImageAuthorIsUser(r.Context(), id, user); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.posts.DeleteImagePost(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Image post deleted successfully!"})
}
