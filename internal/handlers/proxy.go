package handlers

import (
	"net/http"

	"github.com/fossabot/short/internal/models"

	"github.com/gin-gonic/gin"
)

// ProxyLink services GET /proxy/:slug. Only links explicitly flipped into
// proxy status are served through here; everything else bounces back to the
// normal resolver.
func (h *Handler) ProxyLink(c *gin.Context) {
	if !h.hostAuthorized(c) {
		respond(c, http.StatusForbidden, "request hostname is not authorized")
		return
	}

	slug := c.Param("slug")
	ctx := c.Request.Context()

	link, err := h.lookupLink(ctx, slug)
	if err != nil {
		respond(c, http.StatusInternalServerError, err.Error())
		return
	}
	if link == nil {
		c.Redirect(http.StatusFound, h.shortOrigin(c)+"/"+slug)
		return
	}
	if link.Status != models.StatusProxy {
		c.Redirect(http.StatusTemporaryRedirect, h.shortOrigin(c)+"/"+slug)
		return
	}

	h.accessLog.Record(models.AccessLog{
		URL:       link.URL,
		Slug:      slug,
		IP:        clientIP(c),
		Country:   clientCountry(c),
		Status:    link.Status,
		Referer:   c.Request.Referer(),
		UserAgent: c.Request.UserAgent(),
		Hostname:  c.Request.Host,
	})

	banned, err := h.links.DomainBanned(link.URL)
	if err != nil {
		respond(c, http.StatusInternalServerError, err.Error())
		return
	}
	if banned {
		c.Status(http.StatusForbidden)
		return
	}

	result := h.proxy.Fetch(ctx, link.URL, slug, h.shortOrigin(c))
	if result.Body == nil {
		c.Status(result.StatusCode)
		return
	}
	defer result.Body.Close()

	c.Header("Cache-Control", "public, max-age=259200, must-revalidate")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Disposition", `inline; filename="`+result.FileName+`"`)
	c.DataFromReader(result.StatusCode, result.ContentLength, result.ContentType, result.Body, nil)
}
