package httpapi

import "net/http"

func (r *Router) handleAirtableConnect(w http.ResponseWriter, req *http.Request) {
	authURL, err := r.services.Airtable.ConnectURL(req.Context(), getUserID(req.Context()))
	if err != nil {
		r.writeServiceError(w, req, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authUrl": authURL})
}

// The provider redirects here. Failures never surface as JSON: the end user
// is mid-redirect, so both outcomes land back on the dashboard with a query
// flag.
func (r *Router) handleAirtableCallback(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	if err := r.services.Airtable.HandleCallback(req.Context(), q.Get("code"), q.Get("state")); err != nil {
		if r.logger != nil {
			r.logger.Printf("airtable oauth callback: %v", err)
		}
		http.Redirect(w, req, r.frontendURL+"/dashboard?airtable=error", http.StatusFound)
		return
	}
	http.Redirect(w, req, r.frontendURL+"/dashboard?airtable=connected", http.StatusFound)
}

func (r *Router) handleAirtableStatus(w http.ResponseWriter, req *http.Request) {
	status, err := r.services.Airtable.Status(req.Context(), getUserID(req.Context()))
	if err != nil {
		r.writeServiceError(w, req, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (r *Router) handleAirtableDisconnect(w http.ResponseWriter, req *http.Request) {
	if err := r.services.Airtable.Disconnect(req.Context(), getUserID(req.Context())); err != nil {
		r.writeServiceError(w, req, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Airtable disconnected successfully"})
}
