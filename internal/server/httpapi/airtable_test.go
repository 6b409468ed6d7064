package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestAirtableStatus_NotConnected(t *testing.T) {
	ts := newTestServer(t)
	authz := registerAndLogin(t, ts, "u@example.com")

	rr := doJSON(t, ts, "GET", "/api/airtable/status", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Connected bool `json:"connected"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if out.Connected {
		t.Fatalf("want connected=false: %s", rr.Body.String())
	}
}

func TestAirtableDisconnect_Idempotent(t *testing.T) {
	ts := newTestServer(t)
	authz := registerAndLogin(t, ts, "u@example.com")

	for i := 0; i < 2; i++ {
		rr := doJSON(t, ts, "POST", "/api/airtable/disconnect", nil, authz)
		if rr.Code != http.StatusOK {
			t.Fatalf("disconnect #%d: %d %s", i+1, rr.Code, rr.Body.String())
		}
	}
	rr := doJSON(t, ts, "GET", "/api/airtable/status", nil, authz)
	if !strings.Contains(rr.Body.String(), `"connected":false`) {
		t.Fatalf("want connected=false: %s", rr.Body.String())
	}
}

// A callback without a code never reaches the provider; the user is bounced
// back to the dashboard with the error flag.
func TestAirtableCallback_MissingCodeRedirects(t *testing.T) {
	ts := newTestServer(t)
	rr := doJSON(t, ts, "GET", "/api/airtable/callback?state=whoever", nil, nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("want 302 got %d", rr.Code)
	}
	loc := rr.Header().Get("Location")
	if !strings.HasSuffix(loc, "/dashboard?airtable=error") {
		t.Fatalf("bad redirect target: %q", loc)
	}
}
