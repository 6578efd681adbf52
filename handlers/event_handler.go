package handlers

import (
	"net/http"
	"strings"

	"content-backend/models"
	"content-backend/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// RecordEvent records a user interaction event
// POST /api/v1/articles/:id/events
// Body: {"event_type": "view", "read_time_seconds": 42, "scroll_percentage": 80}
func (h *EventHandler) RecordEvent(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.RecordEvent(
		c.Request.Context(),
		c.Param("id"),
		currentUserID(c),
		strings.ToLower(req.EventType),
		services.EventOptions{
			ReadTimeSeconds:  req.ReadTimeSeconds,
			ScrollPercentage: req.ScrollPercentage,
			Metadata:         req.Metadata,
		},
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// A nil event is the duplicate-view sentinel, not a failure.
	if event == nil {
		c.JSON(http.StatusOK, models.EventResponse{Recorded: false})
		return
	}

	c.JSON(http.StatusCreated, models.EventResponse{
		Recorded: true,
		EventID:  event.EventID,
	})
}
