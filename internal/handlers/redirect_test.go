package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fossabot/short/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getSlug(r *gin.Engine, path, host string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	req.Host = host
	r.ServeHTTP(w, req)
	return w
}

func TestResolveLink(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Unknown Slug", func(t *testing.T) {
		w := getSlug(r, "/nosuch", "s.test")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Short link not found")
	})

	t.Run("Interstitial For OK Status", func(t *testing.T) {
		seedLink(db, "plain", "https://example.com/landing", "", models.StatusOK)

		w := getSlug(r, "/plain", "s.test")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "https://example.com/landing")
		assert.Contains(t, w.Body.String(), "Taking you to the target")
	})

	t.Run("Proxy Status Bounces To Gate", func(t *testing.T) {
		seedLink(db, "gated", "https://example.com/img.png", "", models.StatusProxy)

		w := getSlug(r, "/gated", "s.test")
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "http://s.test/proxy/gated", w.Header().Get("Location"))
	})

	t.Run("Banned Status", func(t *testing.T) {
		seedLink(db, "nasty", "https://example.com/bad", "", models.StatusBan)

		w := getSlug(r, "/nasty", "s.test")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Resolution refused")
	})

	t.Run("Hidden Status", func(t *testing.T) {
		seedLink(db, "gone", "https://example.com/gone", "", models.StatusNotFound)

		w := getSlug(r, "/gone", "s.test")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Denylist Recheck On Resolution", func(t *testing.T) {
		// The link predates the ban; resolution still refuses it
		seedLink(db, "stale", "https://lateban.example/x", "", models.StatusOK)
		db.Create(&models.BanDomain{Domain: "lateban.example"})

		w := getSlug(r, "/stale", "s.test")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Skip Status Bypasses Recheck", func(t *testing.T) {
		db.Create(&models.BanDomain{Domain: "trusted.example"})
		seedLink(db, "vetted", "https://trusted.example/ok", "", models.StatusSkip)

		w := getSlug(r, "/vetted", "s.test")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "https://trusted.example/ok")
	})

	t.Run("Access Logged", func(t *testing.T) {
		seedLink(db, "counted", "https://example.com/hit", "", models.StatusOK)

		// Earlier subtests queued entries of their own
		for {
			if _, ok := h.accessLog.TryNext(); !ok {
				break
			}
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/counted", nil)
		req.Host = "s.test"
		req.Header.Set("CF-Connecting-IP", "203.0.113.9")
		req.Header.Set("CF-IPCountry", "DE")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		// The worker is not running in tests; drain the queue by hand
		entry, ok := h.accessLog.TryNext()
		require.True(t, ok)
		assert.Equal(t, "counted", entry.Slug)
		assert.Equal(t, "203.0.113.9", entry.IP)
		assert.Equal(t, "DE", entry.Country)
	})
}

func TestResolveLinkDirectHost(t *testing.T) {
	h, db := setupTestHandler()
	h.cfg.DirectDomains = "direct.test"
	r := setupTestRouter(h)

	seedLink(db, "quick", "https://example.com/now", "", models.StatusOK)

	w := getSlug(r, "/quick", "direct.test")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/now", w.Header().Get("Location"))

	// Other hosts still get the interstitial
	w = getSlug(r, "/quick", "s.test")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResolveLinkHostAllowList(t *testing.T) {
	h, db := setupTestHandler()
	h.cfg.AllowDomains = "allowed.test"
	r := setupTestRouter(h)

	seedLink(db, "scoped", "https://example.com/", "", models.StatusOK)

	w := getSlug(r, "/scoped", "rogue.test")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized hostname")

	w = getSlug(r, "/scoped", "allowed.test")
	assert.Equal(t, http.StatusOK, w.Code)
}
