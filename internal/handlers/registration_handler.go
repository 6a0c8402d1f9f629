package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/gatherly/internal/helpers"
	"github.com/joshua-takyi/gatherly/internal/models"
	"github.com/joshua-takyi/gatherly/internal/services"
)

func parseEventParam(c *gin.Context) (uuid.UUID, bool) {
	eventID := strings.TrimSpace(c.Param("id"))
	eventID = strings.Trim(eventID, "\"'")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("event ID is required"))
		return uuid.Nil, false
	}

	parsedId, err := uuid.Parse(eventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event ID format"))
		return uuid.Nil, false
	}
	return parsedId, true
}

func userFromContext(c *gin.Context) (uuid.UUID, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return uuid.Nil, false
	}

	claims, ok := userClaims.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return uuid.Nil, false
	}
	return userID, true
}

// CheckRegistration reports the tri-state registration status for the
// authenticated user. The registered flag in the payload collapses unknown to
// false, the fail-open default, while the status field exposes the difference.
func CheckRegistration(r *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseEventParam(c)
		if !ok {
			return
		}

		userID, ok := userFromContext(c)
		if !ok {
			return
		}

		status := r.CheckRegistration(c.Request.Context(), eventID, userID)

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"status":     status.String(),
			"registered": status.IsRegistered(),
		}, ""))
	}
}

// ToggleRegistration flips the caller's registration. The request carries the
// client's believed current state; the service acts on that belief without a
// re-read, so a stale tab toggles against what it last saw.
func ToggleRegistration(r *services.RegistrationService, e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseEventParam(c)
		if !ok {
			return
		}

		userID, ok := userFromContext(c)
		if !ok {
			return
		}

		var req struct {
			Registered bool `json:"registered"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		event, err := e.GetEventByID(c.Request.Context(), eventID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse("event not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("error loading event"))
			return
		}

		accessToken, _ := c.Cookie("access_token")

		result, err := r.Toggle(c.Request.Context(), event, userID, req.Registered, accessToken)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrUnauthenticated):
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			case errors.Is(err, models.ErrEventFull):
				c.JSON(http.StatusConflict, models.ErrorResponse("Event is full"))
			case errors.Is(err, models.ErrPartialUpdate):
				// The record mutation committed; report the divergence rather
				// than pretending nothing happened.
				c.JSON(http.StatusInternalServerError, models.ApiResponse{
					Success: false,
					Error:   "Error updating registration",
					Data: gin.H{
						"registered":     result.Registered,
						"record_mutated": result.RecordMutated,
						"counter_synced": result.CounterSynced,
						"event":          result.Event,
					},
				})
			default:
				c.JSON(http.StatusInternalServerError, models.ErrorResponse("Error updating registration"))
			}
			return
		}

		message := "Successfully registered for event"
		if !result.Registered {
			message = "Successfully unregistered from event"
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"registered": result.Registered,
			"event":      result.Event,
		}, message))
	}
}
