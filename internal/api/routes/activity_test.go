package routes

import (
	"fmt"
	"net/http"
	"testing"

	"account-panel/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityFeedScoping(t *testing.T) {
	db, cfg := setupTest(t)
	r := setupTestRouter(db, cfg)

	registerUser(t, r, "alice", "alice@x.com", "pw1")
	registerUser(t, r, "bob", "bob@x.com", "pw2")

	aliceToken := loginToken(t, r, "alice@x.com", "pw1")
	loginToken(t, r, "bob@x.com", "pw2")
	adminToken := loginToken(t, r, "admin@example.com", "admin123")

	// Admin sees everyone's activities
	w := performRequest(t, r, http.MethodGet, "/api/users/activities", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	actors := make(map[string]bool)
	for _, e := range decodeList(t, w) {
		actors[e["actor_username"].(string)] = true
	}
	assert.True(t, actors["alice"])
	assert.True(t, actors["bob"])
	assert.True(t, actors["admin"])

	// Alice sees only rows where she is actor or target
	w = performRequest(t, r, http.MethodGet, "/api/users/activities", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	entries := decodeList(t, w)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		involved := e["actor_username"] == "alice" || e["target_username"] == "alice"
		assert.True(t, involved, "unexpected entry in alice's feed: %v", e)
	}
}

func TestActivityRowsSurviveUserDeletion(t *testing.T) {
	db, cfg := setupTest(t)
	r := setupTestRouter(db, cfg)

	registerUser(t, r, "alice", "alice@x.com", "pw1")
	aliceToken := loginToken(t, r, "alice@x.com", "pw1")
	claims, err := services.NewAuthService(db, cfg).ParseToken(aliceToken)
	require.NoError(t, err)

	adminToken := loginToken(t, r, "admin@example.com", "admin123")
	w := performRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", claims.UserID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, r, http.MethodGet, "/api/users/activities", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Alice's login row remains, with an absent actor name after the delete
	found := false
	for _, e := range decodeList(t, w) {
		if e["action_type"] == "USER_LOGIN" && e["description"] == "alice logged in" {
			found = true
			assert.Equal(t, "", e["actor_username"])
		}
	}
	assert.True(t, found, "expected alice's USER_LOGIN row to survive deletion")
}

func TestAdminScenario(t *testing.T) {
	db, cfg := setupTest(t)
	r := setupTestRouter(db, cfg)

	// Seed admin exists after first boot
	adminToken := loginToken(t, r, "admin@example.com", "admin123")

	registerUser(t, r, "alice", "alice@x.com", "pw1")
	aliceToken := loginToken(t, r, "alice@x.com", "pw1")

	// Alice is not an admin
	w := performRequest(t, r, http.MethodGet, "/api/admin/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin listing includes both accounts
	w = performRequest(t, r, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var aliceID float64
	usernames := make([]string, 0)
	for _, u := range decodeList(t, w) {
		usernames = append(usernames, u["username"].(string))
		if u["username"] == "alice" {
			aliceID = u["id"].(float64)
		}
	}
	assert.Contains(t, usernames, "admin")
	assert.Contains(t, usernames, "alice")

	// Delete alice
	w = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", int(aliceID)), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, r, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, u := range decodeList(t, w) {
		assert.NotEqual(t, "alice", u["username"])
	}

	// The feed records both her creation and her deletion
	w = performRequest(t, r, http.MethodGet, "/api/users/activities", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sawCreated, sawDeleted bool
	for _, e := range decodeList(t, w) {
		switch e["action_type"] {
		case "ACCOUNT_CREATED":
			if e["description"] == "Account created for alice" {
				sawCreated = true
			}
		case "USER_DELETED":
			if e["description"] == "admin deleted user alice" {
				sawDeleted = true
			}
		}
	}
	assert.True(t, sawCreated, "expected an ACCOUNT_CREATED entry for alice")
	assert.True(t, sawDeleted, "expected a USER_DELETED entry for alice")
}
