package repository

import (
	"fmt"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldCount is one bucket of a categorical breakdown.
type FieldCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayCount is one calendar day of the click series.
type DayCount struct {
	Date  string `json:"date"` // ISO-8601 calendar date
	Count int    `json:"count"`
}

// Columns the top-N breakdown may group by. Guards the string that ends
// up in the SQL.
var breakdownColumns = map[string]bool{
	"country":  true,
	"browser":  true,
	"os":       true,
	"referrer": true,
}

// ClickRepository reads and appends the click-event log.
type ClickRepository struct {
	db *gorm.DB
}

func NewClickRepository(db *gorm.DB) *ClickRepository {
	return &ClickRepository{db: db}
}

func (r *ClickRepository) Create(click *models.ClickEvent) error {
	return r.db.Create(click).Error
}

func (r *ClickRepository) CountForLink(linkID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&models.ClickEvent{}).
		Where("short_link_id = ?", linkID).
		Count(&n).Error
	return n, err
}

func (r *ClickRepository) CountUniqueVisitors(linkID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&models.ClickEvent{}).
		Where("short_link_id = ?", linkID).
		Distinct("ip_address").
		Count(&n).Error
	return n, err
}

// ClicksByDay groups the log by the date portion of clicked_at,
// ascending. Only dates with at least one click appear.
func (r *ClickRepository) ClicksByDay(linkID uuid.UUID) ([]DayCount, error) {
	rows := make([]DayCount, 0)
	err := r.db.Model(&models.ClickEvent{}).
		Where("short_link_id = ?", linkID).
		Select("date(clicked_at) as date, count(*) as count").
		Group("date(clicked_at)").
		Order("date(clicked_at) asc").
		Scan(&rows).Error
	return rows, err
}

// TopByField returns the n most frequent non-empty values of a
// categorical column. Ties break on the value itself so results are
// stable across runs.
func (r *ClickRepository) TopByField(linkID uuid.UUID, field string, n int) ([]FieldCount, error) {
	if !breakdownColumns[field] {
		return nil, fmt.Errorf("unsupported breakdown field: %q", field)
	}

	rows := make([]FieldCount, 0)
	err := r.db.Model(&models.ClickEvent{}).
		Where("short_link_id = ? AND "+field+" <> ''", linkID).
		Select(field + " as name, count(*) as count").
		Group(field).
		Order("count desc, " + field + " asc").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}

// DeviceBreakdown counts every device bucket, unknown included. The
// enum bounds the result set, so no limit is applied.
func (r *ClickRepository) DeviceBreakdown(linkID uuid.UUID) ([]FieldCount, error) {
	rows := make([]FieldCount, 0)
	err := r.db.Model(&models.ClickEvent{}).
		Where("short_link_id = ?", linkID).
		Select("device_type as name, count(*) as count").
		Group("device_type").
		Order("count desc, device_type asc").
		Scan(&rows).Error
	return rows, err
}

// Recent returns the latest n clicks for a link.
func (r *ClickRepository) Recent(linkID uuid.UUID, n int) ([]models.ClickEvent, error) {
	clicks := make([]models.ClickEvent, 0)
	err := r.db.Where("short_link_id = ?", linkID).
		Order("clicked_at desc").
		Limit(n).
		Find(&clicks).Error
	return clicks, err
}
