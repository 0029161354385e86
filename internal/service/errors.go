package service

import "errors"

// Error kinds shared across services. Handlers translate these into
// HTTP status codes.
var (
	ErrForbidden  = errors.New("resource does not belong to this user")
	ErrValidation = errors.New("invalid input")

	ErrUserNotFound         = errors.New("user not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrEquipmentNotFound    = errors.New("equipment not found")
	ErrEventNotFound        = errors.New("calendar event not found")
	ErrLogNotFound          = errors.New("log entry not found")
	ErrConversationNotFound = errors.New("conversation not found")
)
