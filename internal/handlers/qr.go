package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QRCode services GET /qr/:slug, rendering the short link as a PNG.
func (h *Handler) QRCode(c *gin.Context) {
	if !h.hostAuthorized(c) {
		respond(c, http.StatusForbidden, "request hostname is not authorized")
		return
	}

	slug := c.Param("slug")
	link, err := h.lookupLink(c.Request.Context(), slug)
	if err != nil {
		respond(c, http.StatusInternalServerError, err.Error())
		return
	}
	if link == nil {
		respond(c, http.StatusNotFound, "short link not found")
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := h.qr.PNG(h.shortOrigin(c)+"/"+slug, size)
	if err != nil {
		respond(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
