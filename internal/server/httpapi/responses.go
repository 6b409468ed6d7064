package httpapi

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type submitRequest struct {
	Data map[string]any `json:"data"`
}

func (r *Router) handleSubmitResponse(w http.ResponseWriter, req *http.Request) {
	var body submitRequest
	if !r.decodeJSON(w, req, &body) {
		return
	}
	resp, err := r.services.Responses.Submit(req.Context(), chi.URLParam(req, "formId"), body.Data, clientIP(req))
	if err != nil {
		r.writeServiceError(w, req, err, "Form not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":    "Response submitted successfully",
		"responseId": resp.ID,
	})
}

func (r *Router) handleListResponses(w http.ResponseWriter, req *http.Request) {
	responses, err := r.services.Responses.ListForForm(req.Context(), getUserID(req.Context()), chi.URLParam(req, "formId"))
	if err != nil {
		r.writeServiceError(w, req, err, "Form not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"responses": responses, "total": len(responses)})
}

func (r *Router) handleGetResponse(w http.ResponseWriter, req *http.Request) {
	resp, err := r.services.Responses.GetOne(req.Context(), getUserID(req.Context()), chi.URLParam(req, "id"))
	if err != nil {
		r.writeServiceError(w, req, err, "Response not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"response": resp})
}

func (r *Router) handleDeleteResponse(w http.ResponseWriter, req *http.Request) {
	if err := r.services.Responses.Delete(req.Context(), getUserID(req.Context()), chi.URLParam(req, "id")); err != nil {
		r.writeServiceError(w, req, err, "Response not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Response deleted successfully"})
}

func clientIP(req *http.Request) string {
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}
