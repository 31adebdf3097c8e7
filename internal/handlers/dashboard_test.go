package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// seedOwnedLink creates a record owned by the user behind the given
// bearer token, going through the public API so the mirror exists.
func seedOwnedLink(t *testing.T, env *testEnv, token, url, alias string) string {
	body := gin.H{"url": url}
	if alias != "" {
		body["alias"] = alias
	}
	w := performRequest(env.router, http.MethodPost, "/api/v1/shorten", body,
		map[string]string{"Authorization": token})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed shorten failed with status %d: %s", w.Code, w.Body.String())
	}
	return decodeBody(t, w)["short_code"].(string)
}

func TestListLinks(t *testing.T) {
	env := setupTestHandler(t)
	alice := bearerToken(t, "ext_alice", "alice@example.com", "Alice")
	bob := bearerToken(t, "ext_bob", "bob@example.com", "Bob")

	seedOwnedLink(t, env, alice, "https://a1.example.com", "")
	seedOwnedLink(t, env, alice, "https://a2.example.com", "")
	seedOwnedLink(t, env, bob, "https://b1.example.com", "")

	t.Run("Owner sees only their links", func(t *testing.T) {
		w := performRequest(env.router, http.MethodGet, "/api/v1/links", nil,
			map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, float64(2), body["total"])
		links := body["links"].([]interface{})
		for _, l := range links {
			item := l.(map[string]interface{})
			assert.Contains(t, item["original_url"], "https://a")
		}
	})

	t.Run("Empty for a new user", func(t *testing.T) {
		carol := bearerToken(t, "ext_carol", "carol@example.com", "Carol")
		w := performRequest(env.router, http.MethodGet, "/api/v1/links", nil,
			map[string]string{"Authorization": carol})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), decodeBody(t, w)["total"])
	})
}

func TestUpdateAliasEndpoint(t *testing.T) {
	env := setupTestHandler(t)
	alice := bearerToken(t, "ext_alice", "alice@example.com", "Alice")
	bob := bearerToken(t, "ext_bob", "bob@example.com", "Bob")

	code := seedOwnedLink(t, env, alice, "https://docs.example.com", "")

	t.Run("Owner renames", func(t *testing.T) {
		w := performRequest(env.router, http.MethodPut, "/api/v1/links/"+code,
			gin.H{"alias": "new-name"}, map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "new-name", decodeBody(t, w)["short_code"])

		// Old code no longer resolves to the destination.
		r := performRequest(env.router, http.MethodGet, "/"+code, nil, nil)
		assert.Equal(t, "/", r.Header().Get("Location"))
		r = performRequest(env.router, http.MethodGet, "/new-name", nil, nil)
		assert.Equal(t, "https://docs.example.com", r.Header().Get("Location"))
	})

	t.Run("Non-owner denied", func(t *testing.T) {
		w := performRequest(env.router, http.MethodPut, "/api/v1/links/new-name",
			gin.H{"alias": "stolen"}, map[string]string{"Authorization": bob})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Collision with existing code", func(t *testing.T) {
		other := seedOwnedLink(t, env, alice, "https://other.example.com", "")
		w := performRequest(env.router, http.MethodPut, "/api/v1/links/"+other,
			gin.H{"alias": "new-name"}, map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid alias rejected", func(t *testing.T) {
		w := performRequest(env.router, http.MethodPut, "/api/v1/links/new-name",
			gin.H{"alias": "x"}, map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown code", func(t *testing.T) {
		w := performRequest(env.router, http.MethodPut, "/api/v1/links/missing0",
			gin.H{"alias": "whatever2"}, map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		w := performRequest(env.router, http.MethodPut, "/api/v1/links/new-name",
			gin.H{"alias": "whatever2"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDeleteLinkEndpoint(t *testing.T) {
	env := setupTestHandler(t)
	alice := bearerToken(t, "ext_alice", "alice@example.com", "Alice")
	bob := bearerToken(t, "ext_bob", "bob@example.com", "Bob")

	code := seedOwnedLink(t, env, alice, "https://gone.example.com", "")

	t.Run("Non-owner denied", func(t *testing.T) {
		w := performRequest(env.router, http.MethodDelete, "/api/v1/links/"+code, nil,
			map[string]string{"Authorization": bob})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Owner deletes", func(t *testing.T) {
		w := performRequest(env.router, http.MethodDelete, "/api/v1/links/"+code, nil,
			map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusOK, w.Code)

		r := performRequest(env.router, http.MethodGet, "/"+code, nil, nil)
		assert.Equal(t, "/", r.Header().Get("Location"))
	})

	t.Run("Already gone", func(t *testing.T) {
		w := performRequest(env.router, http.MethodDelete, "/api/v1/links/"+code, nil,
			map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestShowStatsEndpoint(t *testing.T) {
	env := setupTestHandler(t)
	ctx := context.Background()
	alice := bearerToken(t, "ext_alice", "alice@example.com", "Alice")
	bob := bearerToken(t, "ext_bob", "bob@example.com", "Bob")

	code := seedOwnedLink(t, env, alice, "https://stats.example.com", "")

	var record models.URL
	assert.NoError(t, env.db.Where("short_code = ?", code).First(&record).Error)
	for i := 0; i < 3; i++ {
		recorded, err := env.store.RecordClick(ctx, record.ID, time.Now())
		assert.NoError(t, err)
		assert.True(t, recorded)
		assert.NoError(t, env.store.InsertClick(ctx, &models.Click{
			URLID:      record.ID,
			Timestamp:  time.Now(),
			Browser:    "Firefox 130",
			OS:         "Linux",
			DeviceType: "Desktop",
			Referrer:   "Direct",
		}))
	}

	t.Run("Owner reads stats", func(t *testing.T) {
		w := performRequest(env.router, http.MethodGet, "/api/v1/links/"+code+"/stats", nil,
			map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, float64(3), body["clicks"])
		assert.NotNil(t, body["last_clicked_at"])
		history := body["history"].([]interface{})
		assert.Len(t, history, 3)
		event := history[0].(map[string]interface{})
		assert.Equal(t, "Firefox 130", event["browser"])
		assert.Equal(t, "Desktop", event["device_type"])
	})

	t.Run("Non-owner denied", func(t *testing.T) {
		w := performRequest(env.router, http.MethodGet, "/api/v1/links/"+code+"/stats", nil,
			map[string]string{"Authorization": bob})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown code", func(t *testing.T) {
		w := performRequest(env.router, http.MethodGet, "/api/v1/links/missing0/stats", nil,
			map[string]string{"Authorization": alice})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
