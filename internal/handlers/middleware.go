package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fossabot/short/internal/logger"
	"github.com/fossabot/short/internal/services"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware mirrors the permissive headers of the public API surface
// and answers preflight requests directly.
func (h *Handler) CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLogger tags each request with an ID and logs start/completion.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := logger.NewRequestID()
		c.Header("X-Request-ID", requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		} else if c.Writer.Status() >= 400 {
			level = slog.LevelWarn
		}

		logger.For(ctx).Log(ctx, level, "HTTP request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", c.ClientIP()),
		)
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := limiter.GetLimiter(clientIP(c))
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// hostAuthorized applies the servable-hostname allow-list. An empty list
// disables the check.
func (h *Handler) hostAuthorized(c *gin.Context) bool {
	allowed := h.cfg.AllowedHosts()
	if len(allowed) == 0 {
		return true
	}
	host := c.Request.Host
	for _, a := range allowed {
		if a == host {
			return true
		}
	}
	return false
}

func (h *Handler) isDirectHost(host string) bool {
	for _, d := range h.cfg.DirectHosts() {
		if d == host {
			return true
		}
	}
	return false
}

// shortOrigin is the origin used when building short links and internal
// redirects: the canonical configured domain when set, the request's own
// origin otherwise.
func (h *Handler) shortOrigin(c *gin.Context) string {
	if h.cfg.ShortDomain != "" {
		return "https://" + h.cfg.ShortDomain
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// clientIP prefers the CDN-provided address over whatever gin derives.
func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// clientCountry is the CDN-provided country code; the geo lookup in the log
// worker fills the gap when it is absent.
func clientCountry(c *gin.Context) string {
	return c.GetHeader("CF-IPCountry")
}
