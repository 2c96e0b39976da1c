package sync

import (
	"net/http"

	"github.com/gorilla/mux"
)

// route is one entry of the data-driven dispatch table. The full surface is
// declared in one place and registered at startup.
type route struct {
	method  string
	path    string
	handler http.HandlerFunc
}

func (s *Syncs) routes() []route {
	return []route{
		{http.MethodGet, "/api/health", s.handleHealth},

		{http.MethodGet, "/api/session", s.handleGetSession},
		{http.MethodGet, "/api/users", s.handleListUsers},
		{http.MethodGet, "/api/users/{username}", s.handleGetUser},
		{http.MethodPost, "/api/users", s.handleCreateUser},
		{http.MethodPatch, "/api/users/username", s.handleUpdateUsername},
		{http.MethodPatch, "/api/users/password", s.handleUpdatePassword},
		{http.MethodDelete, "/api/users", s.handleDeleteUser},
		{http.MethodPost, "/api/login", s.handleLogin},
		{http.MethodPost, "/api/logout", s.handleLogout},

		{http.MethodGet, "/api/friends", s.handleGetFriends},
		{http.MethodDelete, "/api/friends/{friend}", s.handleRemoveFriend},
		{http.MethodGet, "/api/friend/requests", s.handleGetFriendRequests},
		{http.MethodPost, "/api/friend/requests/{to}", s.handleSendFriendRequest},
		{http.MethodDelete, "/api/friend/requests/{to}", s.handleRemoveFriendRequest},
		{http.MethodPut, "/api/friend/accept/{from}", s.handleAcceptFriendRequest},
		{http.MethodPut, "/api/friend/reject/{from}", s.handleRejectFriendRequest},

		{http.MethodPost, "/api/groups", s.handleCreateGroup},
		{http.MethodGet, "/api/groups", s.handleListGroups},
		{http.MethodGet, "/api/groups/{groupId}", s.handleGetGroup},
		{http.MethodPut, "/api/groups/{groupId}/members", s.handleInviteToGroup},
		{http.MethodDelete, "/api/groups/{groupId}/members", s.handleLeaveGroup},
		{http.MethodGet, "/api/groups/{groupId}/posts", s.handleGetGroupPosts},
		{http.MethodGet, "/api/groups/{groupId}/image-posts", s.handleGetGroupImagePosts},
		{http.MethodGet, "/api/groups/{groupId}/events", s.handleGetGroupEvents},

		{http.MethodGet, "/api/posts", s.handleGetPosts},
		{http.MethodPost, "/api/posts", s.handleCreatePost},
		{http.MethodPatch, "/api/posts/{id}", s.handleUpdatePost},
		{http.MethodDelete, "/api/posts/{id}", s.handleDeletePost},
		{http.MethodGet, "/api/image-posts", s.handleGetImagePosts},
		{http.MethodPost, "/api/image-posts", s.handleCreateImagePost},
		{http.MethodPatch, "/api/image-posts/{id}", s.handleUpdateImagePost},
		{http.MethodDelete, "/api/image-posts/{id}", s.handleDeleteImagePost},

		{http.MethodPost, "/api/events/{groupId}", s.handleCreateEvent},
		{http.MethodPatch, "/api/events/{eventId}", s.handleEditEvent},
		{http.MethodDelete, "/api/events/{eventId}", s.handleDeleteEvent},
		{http.MethodPost, "/api/events/{eventId}/attendees", s.handleAddAttendee},

		{http.MethodPost, "/api/translate", s.handleTranslate},
	}
}

// Router builds the HTTP router from the dispatch table.
func (s *Syncs) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverPanics, s.logRequests, s.withSession)
	for _, rt := range s.routes() {
		r.HandleFunc(rt.path, rt.handler).Methods(rt.method)
	}
	return r
}

func (s *Syncs) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
