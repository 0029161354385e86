package api

import (
	"net/http"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// EquipmentHandler serves the read-only gym equipment catalog.
type EquipmentHandler struct {
	equipmentService service.EquipmentService
}

// NewEquipmentHandler creates a new EquipmentHandler.
func NewEquipmentHandler(equipmentService service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

// EquipmentResponse is the DTO for a catalog entry.
type EquipmentResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	PrimaryMuscles string `json:"primaryMuscles,omitempty"`
	Alternatives   string `json:"alternatives,omitempty"`
	WorkoutTypes   string `json:"workoutTypes,omitempty"`
	Difficulty     string `json:"difficulty,omitempty"`
	Tips           string `json:"tips,omitempty"`
}

func mapEquipmentToResponse(eq *domain.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:             eq.ID.Hex(),
		Name:           eq.Name,
		Description:    eq.Description,
		PrimaryMuscles: eq.PrimaryMuscles,
		Alternatives:   eq.Alternatives,
		WorkoutTypes:   eq.WorkoutTypes,
		Difficulty:     eq.Difficulty,
		Tips:           eq.Tips,
	}
}

func mapEquipmentListToResponse(items []domain.Equipment) []EquipmentResponse {
	responses := make([]EquipmentResponse, len(items))
	for i := range items {
		responses[i] = mapEquipmentToResponse(&items[i])
	}
	return responses
}

func (h *EquipmentHandler) GetAll(c *gin.Context) {
	items, err := h.equipmentService.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapEquipmentListToResponse(items))
}

func (h *EquipmentHandler) GetByName(c *gin.Context) {
	item, err := h.equipmentService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapEquipmentToResponse(item))
}

func (h *EquipmentHandler) Search(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		abortWithError(c, http.StatusBadRequest, "query parameter q is required")
		return
	}
	items, err := h.equipmentService.Search(c.Request.Context(), keyword)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapEquipmentListToResponse(items))
}

func (h *EquipmentHandler) GetByMuscle(c *gin.Context) {
	items, err := h.equipmentService.GetByMuscle(c.Request.Context(), c.Param("muscle"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapEquipmentListToResponse(items))
}
