package handlers

import (
	"net/http"
	"testing"

	"github.com/fossabot/short/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCode(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Unknown Slug", func(t *testing.T) {
		w := getSlug(r, "/qr/nosuch", "s.test")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PNG For Known Slug", func(t *testing.T) {
		seedLink(db, "coded", "https://example.com/", "", models.StatusOK)

		w := getSlug(r, "/qr/coded", "s.test")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "\x89PNG", w.Body.String()[:4])
	})
}
