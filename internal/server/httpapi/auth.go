package httpapi

import "net/http"

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var body registerRequest
	if !r.decodeJSON(w, req, &body) {
		return
	}
	auth, err := r.services.Auth.Register(req.Context(), body.FullName, body.Email, body.Password)
	if err != nil {
		r.writeServiceError(w, req, err, "User not found")
		return
	}
	writeJSON(w, http.StatusCreated, auth)
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if !r.decodeJSON(w, req, &body) {
		return
	}
	auth, err := r.services.Auth.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		r.writeServiceError(w, req, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, auth)
}

func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) {
	user, err := r.services.Auth.Me(req.Context(), getUserID(req.Context()))
	if err != nil {
		r.writeServiceError(w, req, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
