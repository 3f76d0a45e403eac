package handler

import (
	"chessduel/internal/apperr"
	"chessduel/internal/transport/rest/middleware"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Details string `json:"details,omitempty"`
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError answers with the status and body that match err's kind.
// Unexpected failures are logged and their cause is not exposed.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	e, ok := apperr.As(err)
	if !ok {
		e = apperr.Unexpected("internal server error", err)
	}

	resp := ErrorResponse{
		Error: e.Message,
		Code:  string(e.Code),
		Kind:  string(e.Kind),
	}
	if e.Kind == apperr.KindUnexpected {
		logger.Error("request failed", "code", e.Code, "error", err)
	} else if e.Cause != nil {
		resp.Details = e.Cause.Error()
	}

	writeJSON(w, e.Kind.HTTPStatus(), resp)
}

// decodeBody reads an optional JSON body into dst. An empty body leaves dst
// untouched.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperr.Wrap(apperr.KindValidationFailed, apperr.CodeInvalidRequest, "invalid request body", err)
}

// actingPlayer resolves who performs the request. A token-authenticated id
// wins; a body id that disagrees with it is refused.
func actingPlayer(r *http.Request, bodyPlayerID string) (string, error) {
	if authed := middleware.GetPlayerID(r.Context()); authed != "" {
		if bodyPlayerID != "" && bodyPlayerID != authed {
			return "", apperr.ErrActorMismatch
		}
		return authed, nil
	}
	if bodyPlayerID == "" {
		return "", apperr.ErrPlayerIDRequired
	}
	return bodyPlayerID, nil
}
