package sync

import (
	"net/http"

	"github.com/hearth-social/hearth/server/internal/apperrors"
)

func (s *Syncs) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		s.writeError(w, r, err)
		return
	}
	var in struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if in.Text == "" || in.TargetLanguage == "" {
		s.writeError(w, r, apperrors.Invalidf("text and targetLanguage are required"))
		return
	}
	translated, err := s.translator.Translate(r.Context(), in.Text, in.TargetLanguage)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"translatedText": translated})
}
