package handlers

import (
	"net/http"

	"github.com/fossabot/short/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with the full middleware chain and all
// service routes. The catch-all slug route registers last so fixed paths win.
func (h *Handler) SetupRouter(limiter *services.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.RequestLogger())
	r.Use(h.CORSMiddleware())
	if limiter != nil {
		r.Use(h.RateLimitMiddleware(limiter))
	}

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		respond(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) {
		respond(c, http.StatusOK, "ok")
	})

	r.POST("/create", h.CreateLink)
	r.OPTIONS("/create", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/manage", h.ManageLink)
	r.OPTIONS("/manage", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.GET("/proxy/:slug", h.ProxyLink)
	r.GET("/qr/:slug", h.QRCode)
	r.GET("/:slug", h.ResolveLink)

	return r
}
