package api

import (
	"net/http"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalendarHandler serves personal calendar events.
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// CalendarEventRequest defines the expected JSON for creating or
// updating an event.
type CalendarEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime"`
}

// CalendarEventResponse is the DTO for returning event details.
type CalendarEventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func mapEventToResponse(event *domain.CalendarEvent) CalendarEventResponse {
	return CalendarEventResponse{
		ID:          event.ID.Hex(),
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req CalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	event, err := h.calendarService.CreateEvent(c.Request.Context(), &domain.CalendarEvent{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapEventToResponse(event))
}

// GetEvents lists events, optionally bounded by from/to query params
// (RFC 3339 timestamps).
func (h *CalendarHandler) GetEvents(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	fromRaw, toRaw := c.Query("from"), c.Query("to")
	var events []domain.CalendarEvent
	if fromRaw != "" || toRaw != "" {
		from, err := time.Parse(time.RFC3339, fromRaw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "from must be RFC 3339")
			return
		}
		to, err := time.Parse(time.RFC3339, toRaw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "to must be RFC 3339")
			return
		}
		events, err = h.calendarService.GetEventsInRange(c.Request.Context(), userID, from, to)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	} else {
		events, err = h.calendarService.GetEvents(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	responses := make([]CalendarEventResponse, len(events))
	for i := range events {
		responses[i] = mapEventToResponse(&events[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *CalendarHandler) GetEvent(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.calendarService.GetEvent(c.Request.Context(), eventID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapEventToResponse(event))
}

func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	var req CalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	event, err := h.calendarService.UpdateEvent(c.Request.Context(), userID, &domain.CalendarEvent{
		ID:          eventID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapEventToResponse(event))
}

func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.calendarService.DeleteEvent(c.Request.Context(), eventID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
