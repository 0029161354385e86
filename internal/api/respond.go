package api

import (
	"errors"
	"net/http"

	"fitai/agent-backend/internal/ai"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondServiceError translates service error kinds to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmailTaken):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrEquipmentNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrConversationNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ai.ErrProvider):
		abortWithError(c, http.StatusBadGateway, "AI provider unavailable")
	default:
		logrus.WithError(err).Error("unhandled service error")
		abortWithError(c, http.StatusInternalServerError, "internal server error")
	}
}
