package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRedirectToURL(t *testing.T) {
	env := setupTestHandler(t)
	ctx := context.Background()

	seed := &models.URL{ShortCode: "go2docs", OriginalURL: "https://docs.example.com/intro"}
	assert.NoError(t, env.store.Create(ctx, seed))

	t.Run("Known code redirects", func(t *testing.T) {
		w := performRequest(env.router, http.MethodGet, "/go2docs", nil, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://docs.example.com/intro", w.Header().Get("Location"))
	})

	t.Run("Unknown code falls back to home", func(t *testing.T) {
		w := performRequest(env.router, http.MethodGet, "/nope999", nil, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("Redirect dispatches a click", func(t *testing.T) {
		workerCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go env.clicks.Start(workerCtx)

		req := httptest.NewRequest(http.MethodGet, "/go2docs", nil)
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0")
		req.Header.Set("Referer", "https://news.example.com")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)

		// The worker also drains the click queued by the earlier
		// subtest, so wait for this specific event to land.
		var click models.Click
		assert.Eventually(t, func() bool {
			err := env.db.Where("url_id = ? AND referrer = ?",
				seed.ID, "https://news.example.com").First(&click).Error
			return err == nil
		}, 2*time.Second, 10*time.Millisecond)
		assert.NotEmpty(t, click.Browser)

		var record models.URL
		assert.NoError(t, env.db.First(&record, seed.ID).Error)
		assert.GreaterOrEqual(t, record.ClicksCount, 1)
	})

	t.Run("Redirect never waits on recording", func(t *testing.T) {
		// No worker running here: the event just sits in the channel.
		start := time.Now()
		w := performRequest(env.router, http.MethodGet, "/go2docs", nil, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Less(t, time.Since(start), time.Second)
	})
}
