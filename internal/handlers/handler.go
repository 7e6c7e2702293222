package handlers

import (
	"log/slog"

	"github.com/fossabot/short/internal/config"
	"github.com/fossabot/short/internal/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *gorm.DB
	rdb       *redis.Client
	links     *services.LinkService
	accessLog *services.AccessLogService
	turnstile *services.TurnstileService
	proxy     *services.ProxyService
	qr        *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	links *services.LinkService,
	accessLog *services.AccessLogService,
	turnstile *services.TurnstileService,
	proxy *services.ProxyService,
	qr *services.QRService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		rdb:       rdb,
		links:     links,
		accessLog: accessLog,
		turnstile: turnstile,
		proxy:     proxy,
		qr:        qr,
	}
}
