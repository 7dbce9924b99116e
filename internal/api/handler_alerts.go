package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultAlertLimit = 50
	maxAlertLimit     = 500
)

// GetAlerts handles GET /api/alerts?vehicle_id=&limit=, newest first.
func (h *Handler) GetAlerts(c *gin.Context) {
	limit := defaultAlertLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if n > maxAlertLimit {
			n = maxAlertLimit
		}
		limit = n
	}

	alerts, err := h.alerts.Recent(c.Request.Context(), c.Query("vehicle_id"), limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// AlertFeed upgrades the connection to a websocket streaming every
// emitted alert.
func (h *Handler) AlertFeed(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
