package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/paintgrid-backend/internal/apperror"
	"github.com/rocketscienceinc/paintgrid-backend/internal/entity"
)

type stubSessionService struct {
	deleted []string
}

func (that *stubSessionService) Create(_ context.Context, name string) (*entity.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ErrNameRequired
	}

	return &entity.Session{Token: "token-123", Name: name}, nil
}

func (that *stubSessionService) DeleteByToken(_ context.Context, token string) error {
	that.deleted = append(that.deleted, token)
	return nil
}

func newTestServer() (*httptest.Server, *stubSessionService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := &stubSessionService{}

	return httptest.NewServer(New(logger, sessions).Handler()), sessions
}

func TestServer_Ping(t *testing.T) {
	// Given: a running API server
	server, _ := newTestServer()
	defer server.Close()

	// When: pinging it
	resp, err := http.Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	// Then: it answers pong
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestServer_CreateSession(t *testing.T) {
	t.Run("Issues a session for a display name", func(t *testing.T) {
		// Given: a running API server
		server, _ := newTestServer()
		defer server.Close()

		// When: requesting a session
		resp, err := http.Post(server.URL+"/api/session", "application/json", strings.NewReader(`{"name":"alice"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then: a token and the name come back
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"token":"token-123","name":"alice"}`, string(body))
	})

	t.Run("Rejects a blank name", func(t *testing.T) {
		// Given: a running API server
		server, _ := newTestServer()
		defer server.Close()

		// When: requesting a session without a usable name
		resp, err := http.Post(server.URL+"/api/session", "application/json", strings.NewReader(`{"name":"  "}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rejects a malformed body", func(t *testing.T) {
		// Given: a running API server
		server, _ := newTestServer()
		defer server.Close()

		// When: sending something that is not JSON
		resp, err := http.Post(server.URL+"/api/session", "application/json", strings.NewReader("not-json"))
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_DeleteSession(t *testing.T) {
	// Given: a running API server
	server, sessions := newTestServer()
	defer server.Close()

	// When: revoking a token
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/session/token-123", http.NoBody)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Then: the revocation reaches the session service
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"token-123"}, sessions.deleted)
}
