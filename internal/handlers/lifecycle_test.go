package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full lifecycle through the public surface: create, resolve, delete,
// resolve again.
func TestLinkLifecycle(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	w := postJSON(r, "/create", CreateRequest{
		URL:      "https://example.org/page",
		Slug:     "test1234",
		Password: "lifecycle9",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test1234", decodeResponse(w).Slug)

	resolved := getSlug(r, "/test1234", "s.test")
	require.Equal(t, http.StatusOK, resolved.Code)
	assert.Contains(t, resolved.Body.String(), "https://example.org/page")

	w = postJSON(r, "/manage", ManageRequest{
		Operation: OpDelete,
		Slug:      "test1234",
		Password:  "lifecycle9",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resolved = getSlug(r, "/test1234", "s.test")
	assert.Equal(t, http.StatusNotFound, resolved.Code)
}
