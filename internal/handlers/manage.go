package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/fossabot/short/internal/models"
	"github.com/fossabot/short/internal/services"
	"github.com/fossabot/short/pkg/utils"
	"github.com/fossabot/short/pkg/validator"

	"github.com/gin-gonic/gin"
)

const (
	OpVerify         = "verify"
	OpUpdateURL      = "update-url"
	OpUpdateSlug     = "update-slug"
	OpUpdatePassword = "update-password"
	OpToggleStatus   = "toggle-status"
	OpDelete         = "delete"
)

type ManageRequest struct {
	Operation      string `json:"operation"`
	Slug           string `json:"slug"`
	Password       string `json:"password"`
	NewURL         string `json:"newUrl,omitempty"`
	NewSlug        string `json:"newSlug,omitempty"`
	NewPassword    string `json:"newPassword,omitempty"`
	TurnstileToken string `json:"turnstileToken,omitempty"`
}

// ManageLink services POST /manage. Every operation authenticates with the
// slug's password before touching anything.
func (h *Handler) ManageLink(c *gin.Context) {
	if !h.hostAuthorized(c) {
		respond(c, http.StatusForbidden, "request hostname is not authorized")
		return
	}

	var req ManageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "JsonError: "+err.Error())
		return
	}

	if req.Operation == "" {
		respond(c, http.StatusUnprocessableEntity, "operation is required")
		return
	}
	// Presence only: machine-generated slugs live in the sentinel namespace
	// the custom-slug grammar rejects, and they must stay manageable.
	if req.Slug == "" {
		respond(c, http.StatusUnprocessableEntity, "slug is required")
		return
	}
	if req.Password == "" || !validator.ValidPassword(req.Password) {
		respond(c, http.StatusUnprocessableEntity, "password is required and must be well-formed")
		return
	}
	switch req.Operation {
	case OpUpdateURL:
		if req.NewURL == "" || !validator.ValidURL(req.NewURL) {
			respond(c, http.StatusUnprocessableEntity, "newUrl is required and must be http(s)")
			return
		}
	case OpUpdateSlug:
		if req.NewSlug == "" || !validator.ValidSlug(req.NewSlug) {
			respond(c, http.StatusUnprocessableEntity, "newSlug is required and must be well-formed")
			return
		}
	case OpUpdatePassword:
		if req.NewPassword == "" || !validator.ValidPassword(req.NewPassword) {
			respond(c, http.StatusUnprocessableEntity, "newPassword is required and must be well-formed")
			return
		}
	case OpVerify, OpToggleStatus, OpDelete:
	default:
		respond(c, http.StatusUnprocessableEntity, "unknown operation")
		return
	}

	if h.turnstile.Enabled() {
		if req.TurnstileToken == "" {
			respond(c, http.StatusForbidden, "verification token is required to manage a short link")
			return
		}
		if !h.turnstile.Verify(c.Request.Context(), req.TurnstileToken, clientIP(c)) {
			respond(c, http.StatusForbidden, "verification failed, please retry")
			return
		}
	}

	// Always read through the store here. The cache strips password hashes
	// before serializing, which is exactly what authentication needs.
	link, err := h.links.FindBySlug(req.Slug)
	if err != nil {
		respond(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !h.links.VerifyPassword(link, req.Password) {
		respond(c, http.StatusUnauthorized, "slug and password do not match a managed link")
		return
	}
	if link.Status == models.StatusBan {
		respond(c, http.StatusForbidden, "this link is banned and locked")
		return
	}

	switch req.Operation {
	case OpVerify:
		respondLink(c, http.StatusOK, "success", link.URL, link.Slug, h.shortOrigin(c)+"/"+link.Slug)
		return

	case OpUpdateURL:
		if restrictedTLD(req.NewURL) {
			respond(c, http.StatusForbidden, "links to this top-level domain cannot be updated in")
			return
		}
		banned, err := h.links.DomainBanned(req.NewURL)
		if err != nil {
			respond(c, http.StatusInternalServerError, err.Error())
			return
		}
		if banned {
			respond(c, http.StatusForbidden, "the target domain is on the deny list")
			return
		}
		if h.selfReferential(c, req.NewURL) {
			respond(c, http.StatusForbidden, "cannot point a link back at this service")
			return
		}
		if err := h.links.UpdateURL(link.Slug, req.NewURL); err != nil {
			respond(c, http.StatusInternalServerError, err.Error())
			return
		}
		h.invalidateLink(c.Request.Context(), link.Slug)
		respondLink(c, http.StatusOK, "success", req.NewURL, link.Slug, h.shortOrigin(c)+"/"+link.Slug)
		return

	case OpUpdateSlug:
		oldSlug := link.Slug
		if err := h.links.UpdateSlug(oldSlug, req.NewSlug); err != nil {
			if errors.Is(err, services.ErrSlugTaken) {
				respond(c, http.StatusConflict, "new slug already in use, pick another")
				return
			}
			respond(c, http.StatusInternalServerError, err.Error())
			return
		}
		h.invalidateLink(c.Request.Context(), oldSlug, req.NewSlug)
		respondLink(c, http.StatusOK, "success", link.URL, req.NewSlug, h.shortOrigin(c)+"/"+req.NewSlug)
		return

	case OpUpdatePassword:
		if err := h.links.UpdatePassword(link.Slug, utils.HashPassword(req.NewPassword)); err != nil {
			respond(c, http.StatusInternalServerError, err.Error())
			return
		}
		h.invalidateLink(c.Request.Context(), link.Slug)
		respond(c, http.StatusOK, "success")
		return

	case OpToggleStatus:
		newStatus, err := h.links.ToggleStatus(link.Slug, link.Status)
		if err != nil {
			respond(c, http.StatusInternalServerError, "unknown problem toggling link status")
			return
		}
		h.invalidateLink(c.Request.Context(), link.Slug)
		respond(c, http.StatusOK, "success, status is now "+newStatus)
		return

	case OpDelete:
		if err := h.links.Delete(link.Slug); err != nil {
			respond(c, http.StatusInternalServerError, err.Error())
			return
		}
		h.invalidateLink(c.Request.Context(), link.Slug)
		respond(c, http.StatusOK, "success")
		return
	}
}

// restrictedTLD blocks retargeting onto government and education domains.
// Only the final label counts: gov.example.com is fine, agency.gov is not.
func restrictedTLD(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	last := host
	if i := strings.LastIndexByte(host, '.'); i >= 0 {
		last = host[i+1:]
	}
	return last == "gov" || last == "edu"
}
