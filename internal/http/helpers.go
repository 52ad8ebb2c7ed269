package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"cashflow/internal/core"
	"cashflow/internal/ledger"
	applog "cashflow/internal/log"
	"cashflow/internal/profile"
	"cashflow/internal/session"
)

// UserHeader names the signed-in user for a request. Requests without
// it fall back to the stored session; with neither the request is
// unauthenticated.
const UserHeader = "X-User-ID"

type userHandler func(w http.ResponseWriter, r *http.Request, userID string)

// withUser resolves the acting user from the header or the active
// session and rejects requests that carry neither.
func (s *Server) withUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserHeader)
		if userID == "" {
			sess, err := s.sessions.Load(r.Context())
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if sess != nil {
				userID = sess.UserID
			}
		}
		if userID == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "no signed-in user"})
			return
		}
		next(w, r, userID)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON rejects bodies over 1 MiB and trailing garbage.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// writeError maps domain errors onto status codes: validation failures
// are the caller's fault, storage failures are the backend's.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrStorage),
		errors.Is(err, profile.ErrStorage),
		errors.Is(err, session.ErrStorage):
		status = http.StatusBadGateway
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrMissingCategory),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidCycle),
		errors.Is(err, core.ErrInvalidDate):
		status = http.StatusBadRequest
	}

	if status >= 500 {
		s.logger.ErrorContext(r.Context(), "Request failed",
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
