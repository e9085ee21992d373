package services

import (
	"log/slog"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService answers best-effort country/city lookups against a
// MaxMind database. Every failure mode degrades to empty values: click
// recording must never depend on enrichment succeeding.
type GeoIPService struct {
	logger *slog.Logger
	mu     sync.RWMutex
	reader *geoip2.Reader
}

func NewGeoIPService(logger *slog.Logger) *GeoIPService {
	return &GeoIPService{logger: logger}
}

// Open loads the database at path, replacing any previous reader. A
// missing or unreadable database just leaves lookups disabled.
func (s *GeoIPService) Open(path string) {
	if path == "" {
		return
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		s.logger.Warn("geoip database unavailable, lookups disabled", "path", path, "error", err)
		return
	}

	s.mu.Lock()
	if s.reader != nil {
		s.reader.Close()
	}
	s.reader = reader
	s.mu.Unlock()

	s.logger.Info("geoip database loaded", "path", path, "epoch", reader.Metadata().BuildEpoch)
}

func (s *GeoIPService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader != nil {
		s.reader.Close()
		s.reader = nil
	}
}

// Lookup returns the ISO country code and city name for ip. Empty
// strings come back when no database is loaded, the IP is malformed, or
// the IP is simply not in the database.
func (s *GeoIPService) Lookup(ipStr string) (country, city string) {
	s.mu.RLock()
	reader := s.reader
	s.mu.RUnlock()

	if reader == nil {
		return "", ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "", ""
	}

	record, err := reader.City(ip)
	if err != nil {
		return "", ""
	}

	country = record.Country.IsoCode
	if len(country) > 2 {
		country = country[:2]
	}
	city = record.City.Names["en"]
	if len(city) > 100 {
		city = city[:100]
	}
	return country, city
}
