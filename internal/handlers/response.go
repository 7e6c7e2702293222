package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// apiResponse is the JSON envelope every non-HTML endpoint returns. Code
// mirrors the HTTP status so script clients need not inspect headers.
type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Time    int64  `json:"time"`
	URL     string `json:"url,omitempty"`
	Slug    string `json:"slug,omitempty"`
	Link    string `json:"link,omitempty"`
}

func respond(c *gin.Context, code int, message string) {
	c.JSON(code, apiResponse{
		Code:    code,
		Message: message,
		Time:    time.Now().UnixMilli(),
	})
}

func respondLink(c *gin.Context, code int, message, url, slug, link string) {
	c.JSON(code, apiResponse{
		Code:    code,
		Message: message,
		Time:    time.Now().UnixMilli(),
		URL:     url,
		Slug:    slug,
		Link:    link,
	})
}
