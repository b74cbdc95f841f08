package server

import (
	"fmt"
	"net/http"
	"testing"

	"momentcanvas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	aliceID, alice := signupAndLogin(t, app, "alice_f", "alice.f")
	bobID, bob := signupAndLogin(t, app, "bob_f", "bob.f")

	followPath := func(id uint) string { return fmt.Sprintf("/api/follows/%d", id) }

	t.Run("Follow creates a directed edge", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, followPath(bobID), alice.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Duplicate follow is a conflict", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, followPath(bobID), alice.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Self follow rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, followPath(aliceID), alice.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Following a missing user is not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, followPath(9999), alice.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Listings reflect the one-way edge", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/follows/following", alice.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		following := decodeBody[[]models.FollowUserSummary](t, resp)
		require.Len(t, following, 1)
		assert.Equal(t, bobID, following[0].UserID)

		resp = doJSON(t, app, http.MethodGet, "/api/follows/followers", bob.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		followers := decodeBody[[]models.FollowUserSummary](t, resp)
		require.Len(t, followers, 1)
		assert.Equal(t, aliceID, followers[0].UserID)

		// Bob follows nobody.
		resp = doJSON(t, app, http.MethodGet, "/api/follows/following", bob.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, decodeBody[[]models.FollowUserSummary](t, resp))
	})

	t.Run("Unfollow removes the edge", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, followPath(bobID), alice.AccessToken, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodDelete, followPath(bobID), alice.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}
