package services

import (
	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/repository"
)

// topN caps each categorical breakdown, matching the reporting view.
const topN = 10

// LinkAnalytics is the full analytics view for one link.
type LinkAnalytics struct {
	ShortCode      string                  `json:"short_code"`
	OriginalURL    string                  `json:"original_url"`
	TotalClicks    uint                    `json:"total_clicks"`
	UniqueVisitors int64                   `json:"unique_visitors"`
	ClicksByDay    []repository.DayCount   `json:"clicks_by_day"`
	TopCountries   []repository.FieldCount `json:"top_countries"`
	TopBrowsers    []repository.FieldCount `json:"top_browsers"`
	TopOS          []repository.FieldCount `json:"top_os"`
	TopReferrers   []repository.FieldCount `json:"top_referrers"`
	TopDevices     []repository.FieldCount `json:"top_devices"`
}

type AnalyticsService struct {
	clicks *repository.ClickRepository
}

func NewAnalyticsService(clicks *repository.ClickRepository) *AnalyticsService {
	return &AnalyticsService{clicks: clicks}
}

// Summary recomputes the analytics view for one link straight from the
// event log on every call. Per-link click volumes are small enough that
// a cache would cost more in invalidation than it saves in reads.
func (s *AnalyticsService) Summary(link *models.ShortLink) (*LinkAnalytics, error) {
	unique, err := s.clicks.CountUniqueVisitors(link.ID)
	if err != nil {
		return nil, err
	}

	byDay, err := s.clicks.ClicksByDay(link.ID)
	if err != nil {
		return nil, err
	}

	countries, err := s.clicks.TopByField(link.ID, "country", topN)
	if err != nil {
		return nil, err
	}
	browsers, err := s.clicks.TopByField(link.ID, "browser", topN)
	if err != nil {
		return nil, err
	}
	osBreakdown, err := s.clicks.TopByField(link.ID, "os", topN)
	if err != nil {
		return nil, err
	}
	referrers, err := s.clicks.TopByField(link.ID, "referrer", topN)
	if err != nil {
		return nil, err
	}

	devices, err := s.clicks.DeviceBreakdown(link.ID)
	if err != nil {
		return nil, err
	}

	return &LinkAnalytics{
		ShortCode:      link.ShortCode,
		OriginalURL:    link.OriginalURL,
		TotalClicks:    link.ClickCount,
		UniqueVisitors: unique,
		ClicksByDay:    byDay,
		TopCountries:   countries,
		TopBrowsers:    browsers,
		TopOS:          osBreakdown,
		TopReferrers:   referrers,
		TopDevices:     devices,
	}, nil
}
