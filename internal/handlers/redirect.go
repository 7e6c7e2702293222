package handlers

import (
	"net/http"

	"github.com/fossabot/short/internal/models"

	"github.com/gin-gonic/gin"
)

// ResolveLink services GET /:slug. Branch order matters: proxy bounce before
// logging, logging before the denylist re-check, explicit ban/404 status
// after it, direct-domain bypass last before the interstitial.
func (h *Handler) ResolveLink(c *gin.Context) {
	if !h.hostAuthorized(c) {
		h.renderPage(c, http.StatusForbidden, hostForbiddenPage, pageData{})
		return
	}

	slug := c.Param("slug")
	ctx := c.Request.Context()

	link, err := h.lookupLink(ctx, slug)
	if err != nil {
		h.renderPage(c, http.StatusInternalServerError, errorPage, pageData{ErrorMessage: err.Error()})
		return
	}
	if link == nil {
		// Unknown slugs are not logged.
		h.renderPage(c, http.StatusNotFound, notFoundPage, pageData{})
		return
	}

	if link.Status == models.StatusProxy {
		// Logging happens inside the proxy gate itself.
		c.Redirect(http.StatusTemporaryRedirect, h.shortOrigin(c)+"/proxy/"+slug)
		return
	}

	// Every remaining status is logged, including ban/404/skip.
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

	// Bans can be added after a link exists, so the target is re-checked on
	// every hit. skip/ban/404 bypass the check entirely.
	if link.Status != models.StatusSkip && link.Status != models.StatusBan && link.Status != models.StatusNotFound {
		banned, err := h.links.DomainBanned(link.URL)
		if err != nil {
			h.renderPage(c, http.StatusInternalServerError, errorPage, pageData{
				TargetURL:    link.URL,
				ErrorMessage: err.Error(),
			})
			return
		}
		if banned {
			h.renderPage(c, http.StatusForbidden, bannedPage, pageData{})
			return
		}
	}

	if link.Status == models.StatusBan {
		h.renderPage(c, http.StatusForbidden, bannedPage, pageData{})
		return
	}
	if link.Status == models.StatusNotFound {
		h.renderPage(c, http.StatusNotFound, notFoundPage, pageData{})
		return
	}

	// Trusted deployments skip the interstitial entirely.
	if h.isDirectHost(c.Request.Host) {
		c.Redirect(http.StatusFound, link.URL)
		return
	}

	h.renderPage(c, http.StatusOK, interstitialPage, pageData{
		TargetURL: link.URL,
		Slug:      slug,
	})
}
