package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/raai2005/form-builder-app/internal/server/repository"
	"github.com/raai2005/form-builder-app/internal/server/service"
)

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
// notFoundMessage names the resource so "Form not found" and "Response not
// found" read correctly; internals never leak to the client.
func (r *Router) writeServiceError(w http.ResponseWriter, req *http.Request, err error, notFoundMessage string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Errors})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": notFoundMessage})
	case errors.Is(err, service.ErrAccessDenied):
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "Access denied"})
	case errors.Is(err, service.ErrNotAcceptingResponses):
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "This form is not accepting responses"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	default:
		if r.logger != nil {
			r.logger.Printf("%s %s: %v", req.Method, req.URL.Path, err)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
}

// decodeJSON reads a size-limited JSON body into v.
func (r *Router) decodeJSON(w http.ResponseWriter, req *http.Request, v any) bool {
	if r.maxRequestBytes > 0 {
		req.Body = http.MaxBytesReader(w, req.Body, r.maxRequestBytes)
	}
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Empty request body"})
			return false
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"message": "Request entity too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON body"})
		return false
	}
	return true
}
