package sync

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Friend routes address other users by username; records store account ids,
// so handlers resolve the name before calling into friending.

func (s *Syncs) handleGetFriends(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ids, err := s.friends.Friends(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	names, err := s.auth.UsernamesByIDs(r.Context(), ids)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, names[id])
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Syncs) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	friend, err := s.auth.GetByUsername(r.Context(), mux.Vars(r)["friend"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.friends.RemoveFriend(r.Context(), user, friend.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Friend removed!"})
}

func (s *Syncs) handleGetFriendRequests(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	docs, err := s.friends.ListRequests(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views, err := s.format.FriendRequests(r.Context(), docs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Syncs) handleSendFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	to, err := s.auth.GetByUsername(r.Context(), mux.Vars(r)["to"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.friends.SendRequest(r.Context(), user, to.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"msg": "Friend request sent!"})
}

func (s *Syncs) handleRemoveFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	to, err := s.auth.GetByUsername(r.Context(), mux.Vars(r)["to"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.friends.RemoveRequest(r.Context(), user, to.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Friend request removed!"})
}

func (s *Syncs) handleAcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	from, err := s.auth.GetByUsername(r.Context(), mux.Vars(r)["from"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.friends.AcceptRequest(r.Context(), from.ID, user); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Friend request accepted!"})
}

func (s *Syncs) handleRejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	from, err := s.auth.GetByUsername(r.Context(), mux.Vars(r)["from"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.friends.RejectRequest(r.Context(), from.ID, user); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Friend request rejected!"})
}
