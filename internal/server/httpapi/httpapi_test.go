package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raai2005/form-builder-app/internal/server/config"
	"github.com/raai2005/form-builder-app/internal/server/repository/sqlite"
	"github.com/raai2005/form-builder-app/internal/server/service"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	repo, err := sqlite.New(fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	cfg := config.Config{JWTSecret: "test", MaxRequestBytes: 1 << 20, CORSOrigin: "http://localhost:3000"}
	svcs := service.NewServices(repo, cfg, nil)
	return NewRouter(svcs, nil, cfg)
}

func doJSON(t *testing.T, ts http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	return rr
}

func registerAndLogin(t *testing.T, ts http.Handler, email string) map[string]string {
	t.Helper()
	rr := doJSON(t, ts, "POST", "/api/auth/register", map[string]string{
		"fullName": "Test User", "email": email, "password": "secret1",
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rr.Code, rr.Body.String())
	}
	var auth struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &auth)
	if auth.Token == "" {
		t.Fatalf("empty token: %s", rr.Body.String())
	}
	return map[string]string{"Authorization": "Bearer " + auth.Token}
}

func TestHealthAndIndex(t *testing.T) {
	ts := newTestServer(t)
	if rr := doJSON(t, ts, "GET", "/health", nil, nil); rr.Code != http.StatusOK {
		t.Fatalf("health status: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "GET", "/", nil, nil); rr.Code != http.StatusOK {
		t.Fatalf("index status: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "GET", "/no/such/route", nil, nil); rr.Code != http.StatusNotFound {
		t.Fatalf("want 404 got %d", rr.Code)
	}
}

func TestAuthMiddleware_Unauthorized(t *testing.T) {
	ts := newTestServer(t)
	rr := doJSON(t, ts, "GET", "/api/forms", nil, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d", rr.Code)
	}
	rr = doJSON(t, ts, "GET", "/api/forms", nil, map[string]string{"Authorization": "Bearer garbage"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d", rr.Code)
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	rr := doJSON(t, ts, "POST", "/api/auth/register", map[string]string{
		"fullName": "", "email": "bad", "password": "x",
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400 got %d %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if len(out.Errors) != 3 {
		t.Fatalf("want 3 field errors, got %d: %s", len(out.Errors), rr.Body.String())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	registerAndLogin(t, ts, "u@example.com")
	rr := doJSON(t, ts, "POST", "/api/auth/login", map[string]string{
		"email": "u@example.com", "password": "wrong",
	}, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d", rr.Code)
	}
}

// Register, login, create a draft form, activate it, submit a response,
// delete the form and verify the cascade.
func TestFormLifecycleEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	authz := registerAndLogin(t, ts, "u@example.com")

	// Create: status defaults to draft.
	rr := doJSON(t, ts, "POST", "/api/forms", map[string]any{"title": "T", "fields": []any{}}, authz)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create form: %d %s", rr.Code, rr.Body.String())
	}
	var created struct {
		Form struct {
			ID            string `json:"id"`
			Status        string `json:"status"`
			Views         int64  `json:"views"`
			ResponseCount int64  `json:"responseCount"`
		} `json:"form"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	if created.Form.Status != "draft" || created.Form.Views != 0 || created.Form.ResponseCount != 0 {
		t.Fatalf("bad defaults: %+v", created.Form)
	}
	formID := created.Form.ID

	// Submitting while draft is rejected.
	rr = doJSON(t, ts, "POST", "/api/responses/"+formID, map[string]any{"data": map[string]any{"a": 1}}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("submit to draft: want 400 got %d %s", rr.Code, rr.Body.String())
	}

	// Activate via full update.
	rr = doJSON(t, ts, "PUT", "/api/forms/"+formID, map[string]any{"title": "T", "status": "active"}, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("update form: %d %s", rr.Code, rr.Body.String())
	}

	// Views increment (authenticated route, no ownership check).
	rr = doJSON(t, ts, "POST", "/api/forms/"+formID+"/views", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("views: %d %s", rr.Code, rr.Body.String())
	}
	var views struct {
		Views int64 `json:"views"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &views)
	if views.Views != 1 {
		t.Fatalf("want views=1 got %d", views.Views)
	}

	// Public submission succeeds now.
	rr = doJSON(t, ts, "POST", "/api/responses/"+formID, map[string]any{"data": map[string]any{"a": 1}}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", rr.Code, rr.Body.String())
	}
	var submitted struct {
		ResponseID string `json:"responseId"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &submitted)
	if submitted.ResponseID == "" {
		t.Fatalf("missing responseId: %s", rr.Body.String())
	}

	// Counter visible on the form, and in list stats.
	rr = doJSON(t, ts, "GET", "/api/forms/"+formID, nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("get form: %d", rr.Code)
	}
	var fetched struct {
		Form struct {
			ResponseCount int64 `json:"responseCount"`
		} `json:"form"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &fetched)
	if fetched.Form.ResponseCount != 1 {
		t.Fatalf("want responseCount=1 got %d", fetched.Form.ResponseCount)
	}

	rr = doJSON(t, ts, "GET", "/api/forms?status=all", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("list forms: %d", rr.Code)
	}
	var listed struct {
		Forms []any `json:"forms"`
		Stats struct {
			TotalForms     int64 `json:"totalForms"`
			TotalResponses int64 `json:"totalResponses"`
			ActiveForms    int64 `json:"activeForms"`
			TotalViews     int64 `json:"totalViews"`
		} `json:"stats"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &listed)
	if len(listed.Forms) != 1 || listed.Stats.TotalResponses != 1 || listed.Stats.ActiveForms != 1 || listed.Stats.TotalViews != 1 {
		t.Fatalf("bad list/stats: %s", rr.Body.String())
	}

	// List responses.
	rr = doJSON(t, ts, "GET", "/api/responses/form/"+formID, nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("list responses: %d %s", rr.Code, rr.Body.String())
	}
	var respList struct {
		Total int `json:"total"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &respList)
	if respList.Total != 1 {
		t.Fatalf("want total=1 got %d", respList.Total)
	}

	// Delete cascades: responses for the form become not-found.
	rr = doJSON(t, ts, "DELETE", "/api/forms/"+formID, nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete form: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "GET", "/api/responses/form/"+formID, nil, authz)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("want 404 after cascade, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestResponseOwnershipStatusCodes(t *testing.T) {
	ts := newTestServer(t)
	alice := registerAndLogin(t, ts, "alice@example.com")
	bob := registerAndLogin(t, ts, "bob@example.com")

	rr := doJSON(t, ts, "POST", "/api/forms", map[string]any{"title": "T", "status": "active"}, alice)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d", rr.Code)
	}
	var created struct {
		Form struct {
			ID string `json:"id"`
		} `json:"form"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	formID := created.Form.ID

	rr = doJSON(t, ts, "POST", "/api/responses/"+formID, map[string]any{"data": map[string]any{"a": 1}}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit: %d", rr.Code)
	}
	var submitted struct {
		ResponseID string `json:"responseId"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &submitted)

	// Foreign form: 404 everywhere on the form paths.
	if rr := doJSON(t, ts, "GET", "/api/forms/"+formID, nil, bob); rr.Code != http.StatusNotFound {
		t.Fatalf("foreign get form: want 404 got %d", rr.Code)
	}
	if rr := doJSON(t, ts, "GET", "/api/responses/form/"+formID, nil, bob); rr.Code != http.StatusNotFound {
		t.Fatalf("foreign list responses: want 404 got %d", rr.Code)
	}
	// But an individual foreign response is a 403.
	if rr := doJSON(t, ts, "GET", "/api/responses/"+submitted.ResponseID, nil, bob); rr.Code != http.StatusForbidden {
		t.Fatalf("foreign get response: want 403 got %d", rr.Code)
	}
	if rr := doJSON(t, ts, "DELETE", "/api/responses/"+submitted.ResponseID, nil, bob); rr.Code != http.StatusForbidden {
		t.Fatalf("foreign delete response: want 403 got %d", rr.Code)
	}

	// Owner can fetch and delete.
	if rr := doJSON(t, ts, "GET", "/api/responses/"+submitted.ResponseID, nil, alice); rr.Code != http.StatusOK {
		t.Fatalf("owner get response: %d", rr.Code)
	}
	if rr := doJSON(t, ts, "DELETE", "/api/responses/"+submitted.ResponseID, nil, alice); rr.Code != http.StatusOK {
		t.Fatalf("owner delete response: %d", rr.Code)
	}
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	authz := registerAndLogin(t, ts, "u@example.com")
	rr := doJSON(t, ts, "GET", "/api/auth/me", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("me: %d", rr.Code)
	}
	var out struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if out.User.Email != "u@example.com" {
		t.Fatalf("bad me body: %s", rr.Body.String())
	}
}
