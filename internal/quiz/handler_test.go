package quiz

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioedu-labs/biobuddy-platform/internal/auth"
)

func newHandlerFixture(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	svc, err := NewService(ServiceConfig{
		Bank:   serviceTestBank(),
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	tokens := auth.NewManager(auth.TokenConfig{
		Secret: []byte("test-secret-key-for-learner-tokens"),
		TTL:    time.Hour,
	})
	token, err := tokens.Generate(uuid.New(), "Ada")
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewHTTPHandler(svc, tokens, zerolog.Nop()).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, token
}

func doJSON(t *testing.T, method, url, token, body string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHandler_AttemptLifecycle(t *testing.T) {
	srv, token := newHandlerFixture(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/attempts", token, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(body["question"]), `"id":1`)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/attempts/current/select", token, `{"option_index":1}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/attempts/current/advance", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body["question"]), `"id":2`)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/quiz/attempts/current", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(body["state"], &snap))
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, 1, snap.CorrectCount)
}

func TestHandler_CurrentWithoutAttempt(t *testing.T) {
	srv, token := newHandlerFixture(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/quiz/attempts/current", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body["error"]), "attempt_not_found")
}

func TestHandler_RejectsMissingToken(t *testing.T) {
	srv, _ := newHandlerFixture(t)

	resp, err := http.Post(srv.URL+"/v1/quiz/attempts", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_RejectsWrongMethod(t *testing.T) {
	srv, token := newHandlerFixture(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/v1/quiz/attempts", token, "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandler_ResetRestartsAttempt(t *testing.T) {
	srv, token := newHandlerFixture(t)

	_, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/attempts", token, "")
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/attempts/current/select", token, `{"option_index":1}`)
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/attempts/current/advance", token, "")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/attempts/current/reset", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(body["state"], &snap))
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, 0, snap.CorrectCount)
	assert.False(t, snap.Answered)
}
