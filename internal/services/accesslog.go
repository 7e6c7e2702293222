package services

import (
	"context"
	"log/slog"

	"github.com/fossabot/short/internal/models"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

// AccessLogService appends one record per resolution attempt. Writes are
// best-effort and asynchronous: a failed or dropped log entry never blocks
// or fails the redirect it describes.
type AccessLogService struct {
	db      *gorm.DB
	logger  *slog.Logger
	geoIP   *GeoIPService
	entries chan models.AccessLog
}

func NewAccessLogService(db *gorm.DB, logger *slog.Logger, geoIP *GeoIPService) *AccessLogService {
	return &AccessLogService{
		db:      db,
		logger:  logger,
		geoIP:   geoIP,
		entries: make(chan models.AccessLog, 1000),
	}
}

func (s *AccessLogService) Start(ctx context.Context) {
	s.logger.Info("Access log worker starting")
	for {
		select {
		case entry := <-s.entries:
			if err := s.Write(entry); err != nil {
				s.logger.Error("Failed to write access log", "slug", entry.Slug, "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Access log worker stopping")
			return
		}
	}
}

// Record queues an entry without blocking; the entry is dropped with a
// warning if the buffer is full.
func (s *AccessLogService) Record(entry models.AccessLog) {
	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Access log channel full, dropping entry", "slug", entry.Slug)
	}
}

// TryNext pops one queued entry without blocking, or reports that the queue
// is empty. Lets callers drain the queue when the worker is not running.
func (s *AccessLogService) TryNext() (models.AccessLog, bool) {
	select {
	case entry := <-s.entries:
		return entry, true
	default:
		return models.AccessLog{}, false
	}
}

// Write enriches and persists one entry synchronously.
func (s *AccessLogService) Write(entry models.AccessLog) error {
	s.enrich(&entry)
	return s.db.Create(&entry).Error
}

func (s *AccessLogService) enrich(entry *models.AccessLog) {
	if entry.UserAgent != "" {
		ua := user_agent.New(entry.UserAgent)
		name, version := ua.Browser()
		entry.Browser = name + " " + version
		entry.OS = ua.OS()

		if ua.Bot() {
			entry.DeviceType = "Bot"
		} else if ua.Mobile() {
			entry.DeviceType = "Mobile"
		} else {
			entry.DeviceType = "Desktop"
		}
	}

	if entry.Country == "" && s.geoIP != nil {
		entry.Country = s.geoIP.CountryCode(entry.IP)
	}
}
