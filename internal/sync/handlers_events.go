package sync

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hearth-social/hearth/server/internal/concepts/eventing"
)

// Creating an event requires membership in the target group; the check runs
// before eventing writes anything.
func (s *Syncs) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	groupID := mux.Vars(r)["groupId"]
	var in struct {
		Title       string   `json:"title"`
		Date        string   `json:"date"`
		Description *string  `json:"description"`
		Attendees   []string `json:"attendees"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.groups.AssertIsInGroup(r.Context(), user, groupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.events.Create(r.Context(), user, groupID, in.Title, in.Date, in.Description, in.Attendees)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.format.Event(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"msg": "Event successfully created!", "event": view})
}

// authorizeEventMutation gates edits and deletes: the caller must belong to
// the event's group and must be the event's creator, checked in that order.
func (s *Syncs) authorizeEventMutation(r *http.Request, eventID string) (string, error) {
	user, err := s.currentUser(r)
	if err != nil {
		return "", err
	}
	event, err := s.events.Get(r.Context(), eventID)
	if err != nil {
		return "", err
	}
	if err := s.groups.AssertIsInGroup(r.Context(), user, event.GroupID); err != nil {
		return "", err
	}
	if err := s.events.AssertCreatorIsUser(r.Context(), eventID, user); err != nil {
		return "", err
	}
	return user, nil
}

func (s *Syncs) handleEditEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	var in struct {
		Title       *string  `json:"title"`
		Date        *string  `json:"date"`
		Description *string  `json:"description"`
		Attendees   []string `json:"attendees"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.authorizeEventMutation(r, eventID); err != nil {
		s.writeError(w, r, err)
		return
	}
	params := eventing.UpdateParams{
		Title:       in.Title,
		Date:        in.Date,
		Description: in.Description,
		Attendees:   in.Attendees,
	}
	if err := s.events.Update(r.Context(), eventID, params); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Event successfully updated!"})
}

func (s *Syncs) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	if _, err := s.authorizeEventMutation(r, eventID); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.events.Delete(r.Context(), eventID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": "Event deleted successfully!"})
}

// Attending requires membership in the event's group.
func (s *Syncs) handleAddAttendee(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	eventID := mux.Vars(r)["eventId"]
	event, err := s.events.Get(r.Context(), eventID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.groups.AssertIsInGroup(r.Context(), user, event.GroupID); err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.events.AddAttendee(r.Context(), eventID, user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"msg": msg})
}
