package sandbox

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmctl/internal/crm"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	store, err := OpenStore("sqlite", filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)

	srv := New(store, "test-secret")
	require.NoError(t, srv.Seed())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func bodyText(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func adminToken(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/login",
		map[string]string{"email": "admin@crm.local", "password": "admin123"})
	token := bodyText(t, resp)
	require.NotEmpty(t, token)
	require.False(t, strings.HasPrefix(token, "Invalid"))
	return token
}

func authedRequest(t *testing.T, method, url, token string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// The upstream server answers bad credentials with a 200 and an in-band
// message, not a 401. The sandbox keeps that shape so the client's decode
// is exercised against the real contract.
func TestLoginWireShape(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/login",
		map[string]string{"email": "admin@crm.local", "password": "nope"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", bodyText(t, resp))

	resp = postJSON(t, ts.URL+"/api/login",
		map[string]string{"email": "admin@crm.local", "password": "admin123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token := bodyText(t, resp)
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, " ")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{"/api/users/me", "/api/tasks", "/api/dashboard"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	_, ts := newTestServer(t)

	resp := authedRequest(t, http.MethodGet, ts.URL+"/api/tasks", "not-a-jwt", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	_, ts := newTestServer(t)

	// Missing password.
	resp := postJSON(t, ts.URL+"/api/register", map[string]string{"email": "x@y.z"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Duplicate email.
	resp = postJSON(t, ts.URL+"/api/register",
		map[string]string{"fullName": "Clone", "email": "admin@crm.local", "password": "pw"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown roles are downgraded to SALES, never stored raw.
	resp = postJSON(t, ts.URL+"/api/register", map[string]string{
		"fullName": "Eve", "email": "eve@crm.local", "password": "pw", "role": "ROOT",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	resp.Body.Close()
	assert.Equal(t, "SALES", user.Role)
}

func TestPasswordNeverSerialized(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/register", map[string]string{
		"fullName": "Eve", "email": "eve@crm.local", "password": "pw",
	})
	body := bodyText(t, resp)
	assert.NotContains(t, body, "pw")
	assert.NotContains(t, body, "password")
}

func TestSalesCollectionHasNoDelete(t *testing.T) {
	_, ts := newTestServer(t)
	token := adminToken(t, ts)

	resp := authedRequest(t, http.MethodDelete, ts.URL+"/api/sales/1", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	// Tasks on the same mounting path do support delete.
	resp = authedRequest(t, http.MethodDelete, ts.URL+"/api/tasks/1", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPutMissingRecordIs404(t *testing.T) {
	_, ts := newTestServer(t)
	token := adminToken(t, ts)

	lead, err := json.Marshal(crm.Lead{Name: "Ghost", Source: "Web", Status: "New"})
	require.NoError(t, err)

	resp := authedRequest(t, http.MethodPut, ts.URL+"/api/leads/999", token, bytes.NewReader(lead))
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPutReplacesWholeRecord(t *testing.T) {
	_, ts := newTestServer(t)
	token := adminToken(t, ts)

	// Seeded customer 1 has an email; replacing without one erases it.
	replacement, err := json.Marshal(crm.Customer{Name: "Initech v2", Status: "Inactive"})
	require.NoError(t, err)

	resp := authedRequest(t, http.MethodPut, ts.URL+"/api/customers/1", token, bytes.NewReader(replacement))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated crm.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()

	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Initech v2", updated.Name)
	assert.Empty(t, updated.Email)
}

func TestSeedIsIdempotent(t *testing.T) {
	srv, ts := newTestServer(t)
	require.NoError(t, srv.Seed())
	require.NoError(t, srv.Seed())

	token := adminToken(t, ts)
	resp := authedRequest(t, http.MethodGet, ts.URL+"/api/tasks", token, nil)
	var tasks []crm.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	resp.Body.Close()
	assert.Len(t, tasks, 2, "repeated seeding must not duplicate records")
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	adminToken(t, ts) // generate at least one /api request

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body := bodyText(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "crmctl_sandbox_requests_total")
}
