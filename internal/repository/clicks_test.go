package repository

import (
	"testing"
	"time"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClicks(t *testing.T, repo *ClickRepository, linkID uuid.UUID, clicks []models.ClickEvent) {
	t.Helper()
	for i := range clicks {
		clicks[i].ShortLinkID = linkID
		require.NoError(t, repo.Create(&clicks[i]))
	}
}

func TestClickRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClickRepository(db)
	linkID := uuid.New()

	seedClicks(t, repo, linkID, []models.ClickEvent{
		{IPAddress: "10.0.0.1", DeviceType: models.DeviceDesktop},
		{IPAddress: "10.0.0.1", DeviceType: models.DeviceDesktop},
		{IPAddress: "10.0.0.2", DeviceType: models.DeviceMobile},
	})
	// A click on an unrelated link must not leak in.
	otherID := uuid.New()
	seedClicks(t, repo, otherID, []models.ClickEvent{
		{IPAddress: "10.0.0.9", DeviceType: models.DeviceBot},
	})

	total, err := repo.CountForLink(linkID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	unique, err := repo.CountUniqueVisitors(linkID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unique)
}

func TestClickRepository_ClicksByDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClickRepository(db)
	linkID := uuid.New()

	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 23, 59, 0, 0, time.UTC)
	seedClicks(t, repo, linkID, []models.ClickEvent{
		{ClickedAt: day2, IPAddress: "10.0.0.1"},
		{ClickedAt: day1, IPAddress: "10.0.0.1"},
		{ClickedAt: day1.Add(5 * time.Hour), IPAddress: "10.0.0.2"},
	})

	rows, err := repo.ClicksByDay(linkID)
	require.NoError(t, err)
	require.Len(t, rows, 2) // March 2nd had no clicks and is absent
	assert.Equal(t, "2026-03-01", rows[0].Date)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, "2026-03-03", rows[1].Date)
	assert.Equal(t, 1, rows[1].Count)
}

func TestClickRepository_TopByField(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClickRepository(db)
	linkID := uuid.New()

	seedClicks(t, repo, linkID, []models.ClickEvent{
		{Country: "DE", Browser: "Firefox"},
		{Country: "DE", Browser: "Chrome"},
		{Country: "US", Browser: "Chrome"},
		{Country: "FR", Browser: ""},
		{Country: "", Browser: "Chrome"},
	})

	t.Run("counts sorted descending, empty excluded", func(t *testing.T) {
		rows, err := repo.TopByField(linkID, "country", 10)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, FieldCount{Name: "DE", Count: 2}, rows[0])
		// FR and US tie on count; the value breaks the tie.
		assert.Equal(t, FieldCount{Name: "FR", Count: 1}, rows[1])
		assert.Equal(t, FieldCount{Name: "US", Count: 1}, rows[2])
	})

	t.Run("limit applies", func(t *testing.T) {
		rows, err := repo.TopByField(linkID, "country", 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "DE", rows[0].Name)
	})

	t.Run("unsupported field rejected", func(t *testing.T) {
		_, err := repo.TopByField(linkID, "ip_address", 10)
		assert.Error(t, err)
	})
}

func TestClickRepository_DeviceBreakdown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClickRepository(db)
	linkID := uuid.New()

	seedClicks(t, repo, linkID, []models.ClickEvent{
		{DeviceType: models.DeviceMobile},
		{DeviceType: models.DeviceMobile},
		{DeviceType: models.DeviceUnknown},
	})

	rows, err := repo.DeviceBreakdown(linkID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, FieldCount{Name: models.DeviceMobile, Count: 2}, rows[0])
	// unknown is a real bucket, not filtered like empty strings
	assert.Equal(t, FieldCount{Name: models.DeviceUnknown, Count: 1}, rows[1])
}

func TestClickRepository_Recent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClickRepository(db)
	linkID := uuid.New()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	seedClicks(t, repo, linkID, []models.ClickEvent{
		{ClickedAt: base, IPAddress: "10.0.0.1"},
		{ClickedAt: base.Add(time.Minute), IPAddress: "10.0.0.2"},
		{ClickedAt: base.Add(2 * time.Minute), IPAddress: "10.0.0.3"},
	})

	clicks, err := repo.Recent(linkID, 2)
	require.NoError(t, err)
	require.Len(t, clicks, 2)
	assert.Equal(t, "10.0.0.3", clicks[0].IPAddress)
	assert.Equal(t, "10.0.0.2", clicks[1].IPAddress)
}
