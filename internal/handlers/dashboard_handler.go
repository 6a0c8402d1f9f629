package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gatherly/internal/models"
	"github.com/joshua-takyi/gatherly/internal/services"
)

// MyEvents returns the authenticated user's created and attended events with
// the derived chart data (attendance rates, current-month distribution).
func MyEvents(a *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userFromContext(c)
		if !ok {
			return
		}

		accessToken, _ := c.Cookie("access_token")

		dashboard, err := a.BuildDashboard(c.Request.Context(), userID, accessToken, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("failed to load your events"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(dashboard, ""))
	}
}
