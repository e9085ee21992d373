package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLinkQR renders a QR code pointing at the short URL. Works for any
// resolvable code so printed material keeps working without a login.
func (h *Handler) GetLinkQR(c *gin.Context) {
	shortCode := c.Param("short_code")

	link, err := h.links.FindByCode(shortCode)
	if err != nil || !link.IsResolvable() {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Short URL not found."})
		return
	}

	svg, err := h.qr.GenerateSVG(link.ShortURL(h.cfg.SiteDomain))
	if err != nil {
		h.logger.Error("failed to render qr code", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate QR code."})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}
