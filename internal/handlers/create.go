package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/fossabot/short/internal/models"
	"github.com/fossabot/short/internal/services"
	"github.com/fossabot/short/pkg/utils"
	"github.com/fossabot/short/pkg/validator"

	"github.com/gin-gonic/gin"
)

type CreateRequest struct {
	URL            string `json:"url"`
	Slug           string `json:"slug,omitempty"`
	Password       string `json:"password,omitempty"`
	Email          string `json:"email,omitempty"`
	TurnstileToken string `json:"turnstileToken,omitempty"`
}

// CreateLink services POST /create.
func (h *Handler) CreateLink(c *gin.Context) {
	if !h.hostAuthorized(c) {
		respond(c, http.StatusForbidden, "request hostname is not authorized")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "JsonError: "+err.Error())
		return
	}

	// Field checks run in declared order so the first offending field names
	// the failure.
	if req.URL == "" {
		respond(c, http.StatusUnprocessableEntity, "url is required")
		return
	}
	if !validator.ValidURL(req.URL) {
		respond(c, http.StatusUnprocessableEntity, "url must be http(s) and well-formed")
		return
	}
	if req.Slug != "" && !validator.ValidSlug(req.Slug) {
		respond(c, http.StatusUnprocessableEntity, "slug must be 4-16 characters, must not start or end with a dot, and must not look like a filename")
		return
	}
	if req.Password != "" && !validator.ValidPassword(req.Password) {
		respond(c, http.StatusUnprocessableEntity, "password must be 6-32 characters from the permitted set")
		return
	}
	if req.Email != "" && !validator.ValidEmail(req.Email) {
		respond(c, http.StatusUnprocessableEntity, "email is not a valid address")
		return
	}

	if h.turnstile.Enabled() {
		if req.TurnstileToken == "" {
			respond(c, http.StatusForbidden, "verification token is required to create a short link")
			return
		}
		if !h.turnstile.Verify(c.Request.Context(), req.TurnstileToken, clientIP(c)) {
			respond(c, http.StatusForbidden, "verification failed, please retry")
			return
		}
	}

	banned, err := h.links.DomainBanned(req.URL)
	if err != nil {
		respond(c, http.StatusInternalServerError, err.Error())
		return
	}
	if banned {
		respond(c, http.StatusForbidden, "the target domain is on the deny list")
		return
	}

	if h.selfReferential(c, req.URL) {
		respond(c, http.StatusForbidden, "cannot shorten a link pointing at this service")
		return
	}

	if req.Slug != "" {
		existing, err := h.links.FindBySlug(req.Slug)
		if err != nil {
			respond(c, http.StatusInternalServerError, err.Error())
			return
		}
		if existing != nil {
			if existing.URL == req.URL {
				respond(c, http.StatusConflict, "that link and slug already exist")
			} else {
				respond(c, http.StatusConflict, "custom slug already in use, pick another")
			}
			return
		}
	}

	// Anonymous, slug-less requests reuse an existing mapping of the same
	// target instead of minting a duplicate.
	if req.Slug == "" && req.Email == "" {
		existing, err := h.links.FindByURL(req.URL)
		if err != nil {
			respond(c, http.StatusInternalServerError, err.Error())
			return
		}
		if existing != nil {
			respondLink(c, http.StatusOK, "success", req.URL, existing.Slug, h.shortOrigin(c)+"/"+existing.Slug)
			return
		}
	}

	slug := req.Slug
	if slug == "" {
		slug, err = h.links.GenerateUniqueSlug()
		if err != nil {
			respond(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	link := models.Link{
		Slug:      slug,
		URL:       req.URL,
		Email:     req.Email,
		Status:    models.StatusOK,
		IP:        clientIP(c),
		Country:   clientCountry(c),
		UserAgent: c.Request.UserAgent(),
		Hostname:  c.Request.Host,
	}
	if req.Password != "" {
		hash := utils.HashPassword(req.Password)
		link.PasswordHash = &hash
	}

	if err := h.links.Insert(&link); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			respond(c, http.StatusConflict, "custom slug already in use, pick another")
			return
		}
		respond(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondLink(c, http.StatusOK, "success", req.URL, slug, h.shortOrigin(c)+"/"+slug)
}

// selfReferential refuses targets that point back at the service itself.
// With an allow-list configured, any allow-listed hostname counts as "this
// service"; otherwise only the exact serving host does.
func (h *Handler) selfReferential(c *gin.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	target := u.Hostname()

	allowed := h.cfg.AllowedHosts()
	if len(allowed) == 0 {
		return target == c.Request.Host
	}
	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}
