package services

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService resolves a client IP to an ISO country code for link and
// access-log metadata. Lookups are a fallback: the CDN country header wins
// when present. Without a database file the service degrades to empty codes.
type GeoIPService struct {
	logger *slog.Logger
	path   string

	mu     sync.RWMutex
	reader *geoip2.Reader
}

func NewGeoIPService(path string, logger *slog.Logger) *GeoIPService {
	return &GeoIPService{logger: logger, path: path}
}

func (s *GeoIPService) Init() {
	if s.path == "" {
		return
	}
	if _, err := os.Stat(s.path); err != nil {
		s.logger.Warn("GeoIP: database not found, country lookups disabled", "path", s.path)
		return
	}

	reader, err := geoip2.Open(s.path)
	if err != nil {
		s.logger.Error("GeoIP: failed to open database", "path", s.path, "error", err)
		return
	}

	s.mu.Lock()
	s.reader = reader
	s.mu.Unlock()

	s.logger.Info("GeoIP: loaded database", "epoch", reader.Metadata().BuildEpoch)
}

func (s *GeoIPService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader != nil {
		s.reader.Close()
		s.reader = nil
	}
}

// CountryCode returns the ISO country code for ipStr, or "" when unknown.
func (s *GeoIPService) CountryCode(ipStr string) string {
	s.mu.RLock()
	reader := s.reader
	s.mu.RUnlock()

	if reader == nil {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	record, err := reader.Country(ip)
	if err != nil {
		s.logger.Error("GeoIP: lookup error", "ip", ipStr, "error", err)
		return ""
	}
	return record.Country.IsoCode
}
