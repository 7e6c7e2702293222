package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/fossabot/short/internal/config"
	"github.com/fossabot/short/internal/models"
	"github.com/fossabot/short/internal/services"
	"github.com/fossabot/short/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.Link{}, &models.BanDomain{}, &models.AccessLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SiteName:       "Short",
		AdminEmail:     "admin@example.com",
		SpecialDomains: "eu.org,us.kg,pages.dev,github.io",
	}

	classifier := services.NewClassifier(cfg.SpecialSuffixes())
	links := services.NewLinkService(db, classifier, 6)
	geoIP := services.NewGeoIPService("", logger)
	accessLog := services.NewAccessLogService(db, logger, geoIP)
	turnstile := services.NewTurnstileService("", "", logger)
	proxy := services.NewProxyService(cfg.AdminEmail, logger)
	qr := services.NewQRService()

	// Dummy redis client (not connected) with no retries
	rdb := redis.NewClient(&redis.Options{
		Addr:       "localhost:1",
		MaxRetries: -1,
	})

	h := NewHandler(cfg, logger, db, rdb, links, accessLog, turnstile, proxy, qr)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Host = "s.test"
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(w *httptest.ResponseRecorder) apiResponse {
	var resp apiResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func seedLink(db *gorm.DB, slug, url, password, status string) *models.Link {
	link := models.Link{Slug: slug, URL: url, Status: status}
	if password != "" {
		hash := utils.HashPassword(password)
		link.PasswordHash = &hash
	}
	db.Create(&link)
	return &link
}
