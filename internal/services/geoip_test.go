package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoIPService_Lookup(t *testing.T) {
	service := NewGeoIPService(testLogger())

	t.Run("no database loaded", func(t *testing.T) {
		country, city := service.Lookup("8.8.8.8")
		assert.Empty(t, country)
		assert.Empty(t, city)
	})

	t.Run("missing database path leaves lookups disabled", func(t *testing.T) {
		service.Open("/nonexistent/GeoLite2-City.mmdb")

		country, city := service.Lookup("8.8.8.8")
		assert.Empty(t, country)
		assert.Empty(t, city)
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		service.Open("")
		country, city := service.Lookup("8.8.8.8")
		assert.Empty(t, country)
		assert.Empty(t, city)
	})

	t.Run("malformed ip", func(t *testing.T) {
		country, city := service.Lookup("not-an-ip")
		assert.Empty(t, country)
		assert.Empty(t, city)
	})

	t.Run("close is safe without reader", func(t *testing.T) {
		service.Close()
		service.Close()
	})
}
