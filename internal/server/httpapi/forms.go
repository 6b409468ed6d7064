package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raai2005/form-builder-app/internal/server/service"
)

func (r *Router) handleListForms(w http.ResponseWriter, req *http.Request) {
	forms, stats, err := r.services.Forms.List(req.Context(), getUserID(req.Context()), req.URL.Query().Get("status"))
	if err != nil {
		r.writeServiceError(w, req, err, "Form not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"forms": forms, "stats": stats})
}

func (r *Router) handleCreateForm(w http.ResponseWriter, req *http.Request) {
	var body service.FormInput
	if !r.decodeJSON(w, req, &body) {
		return
	}
	form, err := r.services.Forms.Create(req.Context(), getUserID(req.Context()), body)
	if err != nil {
		r.writeServiceError(w, req, err, "Form not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Form created successfully", "form": form})
}

func (r *Router) handleGetForm(w http.ResponseWriter, req *http.Request) {
	form, err := r.services.Forms.Get(req.Context(), getUserID(req.Context()), chi.URLParam(req, "id"))
	if err != nil {
		r.writeServiceError(w, req, err, "Form not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"form": form})
}

func (r *Router) handleUpdateForm(w http.ResponseWriter, req *http.Request) {
	var body service.FormInput
	if !r.decodeJSON(w, req, &body) {
		return
	}
	form, err := r.services.Forms.Update(req.Context(), getUserID(req.Context()), chi.URLParam(req, "id"), body)
	if err != nil {
		r.writeServiceError(w, req, err, "Form not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Form updated successfully", "form": form})
}

func (r *Router) handleDeleteForm(w http.ResponseWriter, req *http.Request) {
	if err := r.services.Forms.Delete(req.Context(), getUserID(req.Context()), chi.URLParam(req, "id")); err != nil {
		r.writeServiceError(w, req, err, "Form not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Form deleted successfully"})
}

// No ownership check: any authenticated caller opening the form to fill it
// in counts as a view.
func (r *Router) handleIncrementViews(w http.ResponseWriter, req *http.Request) {
	views, err := r.services.Forms.IncrementViews(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		r.writeServiceError(w, req, err, "Form not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"views": views})
}
