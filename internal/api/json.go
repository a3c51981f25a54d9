package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/starford/noteful/internal/apperr"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// decodeBody reads a JSON object into dst. An empty body leaves dst at its
// zero value so that required-field checks report the missing field.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// notFound is the single 404 responder, also installed as the router's
// NotFound handler.
func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody("not found"))
}

// writeError maps the apperr taxonomy onto HTTP. Unclassified errors are
// logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, attrs ...slog.Attr) {
	switch {
	case apperr.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorBody(apperr.ErrInvalidID.Error()))
	case errors.Is(err, apperr.ErrDuplicateName):
		writeJSON(w, http.StatusBadRequest, errorBody(apperr.ErrDuplicateName.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		notFound(w, r)
	case errors.Is(err, apperr.ErrFolderInUse):
		writeJSON(w, http.StatusConflict, errorBody(apperr.ErrFolderInUse.Error()))
	default:
		args := []any{slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.String("error", err.Error())}
		for _, a := range attrs {
			args = append(args, a)
		}
		slog.Error("request failed", args...)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
