package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/api/middleware"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/identity"
	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the status the error's kind maps to. Internal
// failures are logged and their detail is not echoed.
func writeError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := apperr.Status(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), message, "error", err, "path", r.URL.Path)
		detail = apperr.ErrInternal.Error()
	}
	writeJSON(w, status, dto.Fail(message, detail))
}

func writeValidation(w http.ResponseWriter, details map[string]string) {
	resp := dto.Fail("Validation failed", apperr.ErrValidation.Error())
	resp.Details = details
	writeJSON(w, http.StatusBadRequest, resp)
}

// decode reads a JSON body. On failure it answers 400 and returns false.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body", err.Error()))
		return false
	}
	return true
}

func pathID(r *http.Request, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s id", what)
	}
	return id, nil
}

// callerOf names the acting user: the explicit userId when the request
// carries one, otherwise the session user.
func callerOf(r *http.Request, raw string) (identity.Caller, error) {
	if strings.TrimSpace(raw) != "" {
		return identity.Parse(raw)
	}
	if id := middleware.GetUserID(r.Context()); id != uuid.Nil {
		return identity.LocalID(id), nil
	}
	return identity.Caller{}, apperr.Validation("user id is required")
}

// resolveCaller is callerOf followed by a lookup of the local id.
func resolveCaller(r *http.Request, db *gorm.DB, raw string) (uuid.UUID, error) {
	caller, err := callerOf(r, raw)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.Resolve(r.Context(), db, caller)
}

// optionalCaller is resolveCaller for endpoints that also serve anonymous
// requests. It returns nil when neither a userId nor a session is present.
func optionalCaller(r *http.Request, db *gorm.DB, raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" && middleware.GetUserID(r.Context()) == uuid.Nil {
		return nil, nil
	}
	id, err := resolveCaller(r, db, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
