package services

import (
	"testing"
	"time"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShortLink_Generated(t *testing.T) {
	db := setupTestDB(t)
	service := setupShortener(t, db)

	t.Run("creates with default length", func(t *testing.T) {
		link, err := service.CreateShortLink(ShortenDTO{OriginalURL: "https://example.com/long-path"})

		require.NoError(t, err)
		assert.Len(t, link.ShortCode, 7)
		assert.False(t, link.IsCustomCode)
		assert.Equal(t, uint(0), link.ClickCount)
		assert.True(t, link.IsActive)
		assert.Nil(t, link.UserID)
	})

	t.Run("collision retries with longer code", func(t *testing.T) {
		var lengths []int
		service.codeGenerator = func(length int) string {
			lengths = append(lengths, length)
			if len(lengths) == 1 {
				return "collide"
			}
			return "survived"
		}
		defer func() { service.codeGenerator = utils.GenerateShortCode }()

		require.NoError(t, db.Create(&models.ShortLink{ShortCode: "collide", OriginalURL: "https://a.example", IsActive: true}).Error)

		link, err := service.CreateShortLink(ShortenDTO{OriginalURL: "https://b.example"})

		require.NoError(t, err)
		assert.Equal(t, "survived", link.ShortCode)
		// The caller never sees the transient collision; each retry asks
		// for one more character.
		assert.Equal(t, []int{7, 8}, lengths)
	})

	t.Run("exhausted retries", func(t *testing.T) {
		calls := 0
		service.codeGenerator = func(int) string {
			calls++
			return "sticky99"
		}

		require.NoError(t, db.Create(&models.ShortLink{ShortCode: "sticky99", OriginalURL: "https://a.example", IsActive: true}).Error)

		_, err := service.CreateShortLink(ShortenDTO{OriginalURL: "https://b.example"})

		assert.ErrorIs(t, err, ErrRetriesExhausted)
		assert.Equal(t, 5, calls)
	})
}

func TestCreateShortLink_CustomCode(t *testing.T) {
	db := setupTestDB(t)
	service := setupShortener(t, db)

	userID := uint(1)

	t.Run("creates custom code", func(t *testing.T) {
		link, err := service.CreateShortLink(ShortenDTO{
			UserID:      &userID,
			OriginalURL: "https://example.com",
			CustomCode:  "my-brand",
		})

		require.NoError(t, err)
		assert.Equal(t, "my-brand", link.ShortCode)
		assert.True(t, link.IsCustomCode)
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		link, err := service.CreateShortLink(ShortenDTO{
			UserID:      &userID,
			OriginalURL: "https://example.com",
			CustomCode:  "  My-Launch  ",
		})

		require.NoError(t, err)
		assert.Equal(t, "my-launch", link.ShortCode)
	})

	t.Run("invalid code rejected", func(t *testing.T) {
		for _, code := range []string{"ab", "-abc", "abc-", "ab@c", "ab c"} {
			_, err := service.CreateShortLink(ShortenDTO{
				UserID:      &userID,
				OriginalURL: "https://example.com",
				CustomCode:  code,
			})
			assert.ErrorIs(t, err, ErrInvalidCode, "code %q", code)
		}
	})

	t.Run("duplicate custom code conflicts without altering first link", func(t *testing.T) {
		first, err := service.CreateShortLink(ShortenDTO{
			UserID:      &userID,
			OriginalURL: "https://first.example",
			CustomCode:  "taken",
		})
		require.NoError(t, err)

		_, err = service.CreateShortLink(ShortenDTO{
			UserID:      &userID,
			OriginalURL: "https://second.example",
			CustomCode:  "taken",
		})
		assert.ErrorIs(t, err, ErrCodeTaken)

		var got models.ShortLink
		require.NoError(t, db.Where("short_code = ?", "taken").First(&got).Error)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, "https://first.example", got.OriginalURL)
	})

	t.Run("custom code is never retried into a different code", func(t *testing.T) {
		_, err := service.CreateShortLink(ShortenDTO{
			UserID:      &userID,
			OriginalURL: "https://third.example",
			CustomCode:  "taken",
		})
		assert.ErrorIs(t, err, ErrCodeTaken)

		var n int64
		require.NoError(t, db.Model(&models.ShortLink{}).Where("original_url = ?", "https://third.example").Count(&n).Error)
		assert.Equal(t, int64(0), n)
	})
}

func TestCreateShortLink_Expiry(t *testing.T) {
	db := setupTestDB(t)
	service := setupShortener(t, db)

	expires := time.Now().Add(24 * time.Hour).UTC()
	link, err := service.CreateShortLink(ShortenDTO{
		OriginalURL: "https://example.com",
		ExpiresAt:   &expires,
	})

	require.NoError(t, err)
	require.NotNil(t, link.ExpiresAt)
	assert.False(t, link.IsExpired())
}
