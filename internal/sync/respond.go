package sync

import (
	"encoding/json"
	"net/http"

	"github.com/hearth-social/hearth/server/internal/apperrors"
)

type errorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func (s *Syncs) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// writeError maps the error taxonomy onto HTTP status classes. Concept
// errors pass through with their original messages; only unclassified
// errors are logged as server faults.
func (s *Syncs) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Stack().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("unhandled error")
	}
	s.writeJSON(w, status, errorBody{
		Error:   http.StatusText(status),
		Code:    status,
		Message: err.Error(),
	})
}
