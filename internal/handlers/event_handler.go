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

func ListEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := e.ListEvents(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("failed to load events"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

func GetEventByID(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Param("id")
		// Normalize incoming id: trim spaces and surrounding quotes which may occur
		// when clients pass values as JSON strings or templates.
		eventID = strings.TrimSpace(eventID)
		eventID = strings.Trim(eventID, "\"'")

		if eventID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("event ID is required"))
			return
		}

		parsedId, err := uuid.Parse(eventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event ID format"))
			return
		}

		event, err := e.GetEventByID(c.Request.Context(), parsedId)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse("event not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("error loading event"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func CreateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.Event

		userClaims, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		claims, ok := userClaims.(*helpers.EnhancedClaims)
		if !ok {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
			return
		}

		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		ownerID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		accessToken, _ := c.Cookie("access_token")

		created, err := e.CreateEvent(c.Request.Context(), &event, ownerID, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Event created successfully"))
	}
}

func UpdateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseEventParam(c)
		if !ok {
			return
		}

		ownerID, ok := userFromContext(c)
		if !ok {
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		accessToken, _ := c.Cookie("access_token")

		updated, err := e.UpdateEvent(c.Request.Context(), eventID, fields, ownerID, accessToken)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse("event not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Event updated successfully"))
	}
}
