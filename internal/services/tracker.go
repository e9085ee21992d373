package services

import (
	"context"
	"log/slog"
	"net"
	"strings"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/repository"

	"github.com/google/uuid"
	"github.com/mssola/user_agent"
)

// ClickRequest carries the raw client signal captured at redirect time.
// Enrichment happens off the request path so the redirect response
// never waits on it.
type ClickRequest struct {
	ShortLinkID  uuid.UUID
	RemoteAddr   string
	ForwardedFor string
	UserAgent    string
	Referrer     string
}

// UserAgentInfo is the structured result of parsing a User-Agent
// header. Fields stay empty when the header is absent or unparseable.
type UserAgentInfo struct {
	Browser        string
	BrowserVersion string
	OS             string
	OSVersion      string
	DeviceType     string
}

// ClickTracker turns raw redirect traffic into the click-event log and
// the denormalized per-link counter.
type ClickTracker struct {
	clicks *repository.ClickRepository
	links  *repository.LinkRepository
	geoip  *GeoIPService
	logger *slog.Logger
	queue  chan ClickRequest
}

func NewClickTracker(clicks *repository.ClickRepository, links *repository.LinkRepository, geoip *GeoIPService, logger *slog.Logger) *ClickTracker {
	return &ClickTracker{
		clicks: clicks,
		links:  links,
		geoip:  geoip,
		logger: logger,
		queue:  make(chan ClickRequest, 1000),
	}
}

// Start drains the queue until ctx is cancelled.
func (t *ClickTracker) Start(ctx context.Context) {
	t.logger.Info("click tracker starting")
	for {
		select {
		case req := <-t.queue:
			if _, err := t.Record(req); err != nil {
				t.logger.Error("failed to record click", "error", err)
			}
		case <-ctx.Done():
			t.logger.Info("click tracker stopping")
			return
		}
	}
}

// RecordAsync enqueues a click without blocking the redirect path. A
// full queue drops the event rather than stalling responses.
func (t *ClickTracker) RecordAsync(req ClickRequest) {
	select {
	case t.queue <- req:
	default:
		t.logger.Warn("click queue full, dropping event")
	}
}

// Record enriches and persists one click, then bumps the link counter.
// The event log is the system of record: a failed counter bump is
// logged and tolerated, since the counter can always be recomputed from
// the log.
func (t *ClickTracker) Record(req ClickRequest) (*models.ClickEvent, error) {
	ip := ClientIP(req.ForwardedFor, req.RemoteAddr)
	ua := ParseUserAgent(req.UserAgent)
	country, city := t.geoip.Lookup(ip)

	referrer := req.Referrer
	if len(referrer) > 2048 {
		referrer = referrer[:2048]
	}

	click := &models.ClickEvent{
		ShortLinkID:    req.ShortLinkID,
		IPAddress:      ip,
		Country:        country,
		City:           city,
		Browser:        ua.Browser,
		BrowserVersion: ua.BrowserVersion,
		OS:             ua.OS,
		OSVersion:      ua.OSVersion,
		DeviceType:     ua.DeviceType,
		Referrer:       referrer,
		UserAgent:      req.UserAgent,
	}

	if err := t.clicks.Create(click); err != nil {
		return nil, err
	}

	if err := t.links.IncrementClickCount(req.ShortLinkID); err != nil {
		t.logger.Error("failed to increment click count", "shortlink_id", req.ShortLinkID, "error", err)
	}

	return click, nil
}

// ClientIP picks the first forwarded-for entry when a proxy supplied
// one, else the direct connection address. Whether that header deserves
// trust is the network edge's problem, not this layer's.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

// ParseUserAgent classifies a raw User-Agent header. An empty header
// yields empty fields and the unknown bucket. When several heuristics
// match, precedence is bot > mobile > tablet > desktop: automated
// traffic must never be counted as human engagement.
func ParseUserAgent(raw string) UserAgentInfo {
	info := UserAgentInfo{DeviceType: models.DeviceUnknown}
	if raw == "" {
		return info
	}

	ua := user_agent.New(raw)
	info.Browser, info.BrowserVersion = ua.Browser()
	osInfo := ua.OSInfo()
	info.OS = osInfo.Name
	info.OSVersion = osInfo.Version

	switch {
	case ua.Bot():
		info.DeviceType = models.DeviceBot
	case ua.Mobile():
		info.DeviceType = models.DeviceMobile
	case isTablet(raw):
		info.DeviceType = models.DeviceTablet
	case info.Browser != "" || info.OS != "":
		info.DeviceType = models.DeviceDesktop
	}

	return info
}

// mssola/user_agent has no tablet signal of its own, so tablets that
// escape its mobile detection are caught by substring.
func isTablet(raw string) bool {
	l := strings.ToLower(raw)
	if strings.Contains(l, "ipad") || strings.Contains(l, "tablet") || strings.Contains(l, "kindle") {
		return true
	}
	return strings.Contains(l, "android") && !strings.Contains(l, "mobile")
}
