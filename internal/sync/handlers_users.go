package sync

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hearth-social/hearth/server/internal/apperrors"
)

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Invalidf("invalid json body")
	}
	return nil
}

// currentUser resolves the session into the logged-in account id.
func (s *Syncs) currentUser(r *http.Request) (string, error) {
	return s.sessions.GetAccount(r.Context(), sessionID(r.Context()))
}

func (s *Syncs) handleGetSession(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	account, err := s.auth.GetByID(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, account)
}

func (s *Syncs) handleListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.auth.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, accounts)
}

func (s *Syncs) handleGetUser(w http.ResponseWriter, r *http.Request) {
	account, err := s.auth.GetByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, account)
}

func (s *Syncs) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.AssertLoggedOut(r.Context(), sessionID(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	account, err := s.auth.Create(r.Context(), in.Username, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"msg": "User created successfully!", "user": account})
}

func (s *Syncs) handleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in struct {
		Username string `json:"username"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.auth.UpdateUsername(r.Context(), user, in.Username); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Username updated successfully!"})
}

func (s *Syncs) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.auth.UpdatePassword(r.Context(), user, in.CurrentPassword, in.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Password updated successfully!"})
}

// Deleting an account ends the session first so no request can act on a
// dangling login afterwards.
func (s *Syncs) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.End(r.Context(), sessionID(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.auth.Delete(r.Context(), user); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Account deleted successfully!"})
}

func (s *Syncs) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	account, err := s.auth.Authenticate(r.Context(), in.Username, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.Start(r.Context(), sessionID(r.Context()), account.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Logged in!"})
}

func (s *Syncs) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.End(r.Context(), sessionID(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Logged out!"})
}
