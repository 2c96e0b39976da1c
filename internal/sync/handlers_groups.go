package sync

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hearth-social/hearth/server/internal/concepts/grouping"
)

func (s *Syncs) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in struct {
		Title       string                 `json:"title"`
		Description *string                `json:"description"`
		Options     *grouping.GroupOptions `json:"options"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	group, err := s.groups.Create(r.Context(), user, in.Title, in.Description, in.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.format.Group(r.Context(), group)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"msg": "Group created successfully!", "group": view})
}

func (s *Syncs) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views, err := s.format.Groups(r.Context(), groups)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Syncs) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), mux.Vars(r)["groupId"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.format.Group(r.Context(), group)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// Inviting is member-gated: only someone already in the group may add
// another user to it.
func (s *Syncs) handleInviteToGroup(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	groupID := mux.Vars(r)["groupId"]
	var in struct {
		Username string `json:"username"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.groups.AssertIsInGroup(r.Context(), user, groupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	invitee, err := s.auth.GetByUsername(r.Context(), in.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.groups.InviteUser(r.Context(), groupID, invitee.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": msg})
}

// handleLeaveGroup removes the caller from a group after cascading away the
// events they created in it. The cascade runs first: if it fails the caller
// stays a member, so no group is left holding events owned by a non-member.
func (s *Syncs) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	groupID := mux.Vars(r)["groupId"]
	if err := s.groups.AssertIsInGroup(r.Context(), user, groupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.events.DeleteByCreatorAndGroup(r.Context(), user, groupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.groups.LeaveGroup(r.Context(), groupID, user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": msg})
}

func (s *Syncs) handleGetGroupPosts(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	if _, err := s.groups.Get(r.Context(), groupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	docs, err := s.posts.PostsByGroup(r.Context(), groupID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views, err := s.format.Posts(r.Context(), docs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Syncs) handleGetGroupImagePosts(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	if _, err := s.groups.Get(r.Context(), groupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	docs, err := s.posts.ImagePostsByGroup(r.Context(), groupID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views, err := s.format.ImagePosts(r.Context(), docs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Syncs) handleGetGroupEvents(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	if _, err := s.groups.Get(r.Context(), groupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	docs, err := s.events.ListByGroup(r.Context(), groupID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views, err := s.format.Events(r.Context(), docs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}
