package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves the weekly workout plan endpoints.
type PlanHandler struct {
	planService      service.PlanService
	equipmentService service.EquipmentService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, equipmentService service.EquipmentService) *PlanHandler {
	return &PlanHandler{planService: planService, equipmentService: equipmentService}
}

// --- DTOs ---

// PlanWorkoutResponse is the DTO for a single scheduled workout.
type PlanWorkoutResponse struct {
	ID          string `json:"id"`
	DayIndex    int    `json:"dayIndex"`
	WorkoutName string `json:"workoutName"`
	Sets        *int   `json:"sets,omitempty"`
	Reps        *int   `json:"reps,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Completed   bool   `json:"completed"`
	Notes       string `json:"notes,omitempty"`
}

// WeeklyPlanResponse is the DTO for a plan with its day-grouped views.
type WeeklyPlanResponse struct {
	ID                string                        `json:"id"`
	UserID            string                        `json:"userId"`
	StartDate         time.Time                     `json:"startDate"`
	EndDate           time.Time                     `json:"endDate"`
	WorkoutCount      int                           `json:"workoutCount"`
	WorkoutsByDay     map[int][]PlanWorkoutResponse `json:"workoutsByDay"`
	MuscleGroupsByDay map[int]string                `json:"muscleGroupsByDay"`
}

// WeeklyPlanSummary is the slim DTO for plan listings.
type WeeklyPlanSummary struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

func mapPlanWorkoutToResponse(w *domain.PlanWorkout) PlanWorkoutResponse {
	return PlanWorkoutResponse{
		ID:          w.ID.Hex(),
		DayIndex:    w.DayIndex,
		WorkoutName: w.WorkoutName,
		Sets:        w.Sets,
		Reps:        w.Reps,
		Weight:      w.Weight,
		Duration:    w.Duration,
		Completed:   w.Completed,
		Notes:       w.Notes,
	}
}

// mapPlanToResponse builds the day-grouped plan view: workouts bucketed
// by day index plus a derived muscle-group label per day.
func (h *PlanHandler) mapPlanToResponse(ctx context.Context, result *service.PlanWithWorkouts) WeeklyPlanResponse {
	byDay := make(map[int][]domain.PlanWorkout)
	for _, w := range result.Workouts {
		byDay[w.DayIndex] = append(byDay[w.DayIndex], w)
	}

	workoutsByDay := make(map[int][]PlanWorkoutResponse, 7)
	muscleGroupsByDay := make(map[int]string, 7)
	for day := 0; day < 7; day++ {
		dayWorkouts := byDay[day]
		responses := make([]PlanWorkoutResponse, len(dayWorkouts))
		for i := range dayWorkouts {
			responses[i] = mapPlanWorkoutToResponse(&dayWorkouts[i])
		}
		workoutsByDay[day] = responses
		muscleGroupsByDay[day] = h.equipmentService.DayMuscleLabel(ctx, dayWorkouts)
	}

	return WeeklyPlanResponse{
		ID:                result.Plan.ID.Hex(),
		UserID:            result.Plan.UserID.Hex(),
		StartDate:         result.Plan.StartDate,
		EndDate:           result.Plan.EndDate,
		WorkoutCount:      len(result.Workouts),
		WorkoutsByDay:     workoutsByDay,
		MuscleGroupsByDay: muscleGroupsByDay,
	}
}

// --- Handler Methods ---

// GetCurrentPlan returns the plan covering today, if any.
func (h *PlanHandler) GetCurrentPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.planService.GetCurrentPlan(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.mapPlanToResponse(c.Request.Context(), result))
}

// GeneratePlan regenerates the current week's plan from scratch.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.planService.Regenerate(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.mapPlanToResponse(c.Request.Context(), result))
}

func (h *PlanHandler) GetAllPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plans, err := h.planService.GetAllPlans(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	summaries := make([]WeeklyPlanSummary, len(plans))
	for i, p := range plans {
		summaries[i] = WeeklyPlanSummary{
			ID:        p.ID.Hex(),
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			CreatedAt: p.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *PlanHandler) GetPlanByID(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	result, err := h.planService.GetPlanByID(c.Request.Context(), planID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.mapPlanToResponse(c.Request.Context(), result))
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), planID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HasNextWeekPlan reports whether a plan exists for the week after the
// given end date.
func (h *PlanHandler) HasNextWeekPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}

	has, err := h.planService.HasNextWeekPlan(c.Request.Context(), userID, endDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasNextWeekPlan": has})
}

func (h *PlanHandler) HasPlanForCurrentWeek(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	has, err := h.planService.HasPlanForCurrentWeek(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasPlan": has})
}

// CopyToNextWeekRequest selects how to reconcile with an existing
// next-week plan: cancel, overwrite, or merge.
type CopyToNextWeekRequest struct {
	Action string `json:"action"`
}

func (h *PlanHandler) CopyToNextWeek(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid plan id")
		return
	}
	var req CopyToNextWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.planService.CopyToNextWeek(c.Request.Context(), userID, planID, req.Action)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.mapPlanToResponse(c.Request.Context(), result))
}

func (h *PlanHandler) ToggleWorkoutCompletion(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workout id")
		return
	}

	workout, err := h.planService.ToggleWorkoutCompletion(c.Request.Context(), workoutID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlanWorkoutToResponse(workout))
}

func (h *PlanHandler) ClearDayWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid plan id")
		return
	}
	dayIndex, err := strconv.Atoi(c.Param("dayIndex"))
	if err != nil || dayIndex < 0 || dayIndex > 6 {
		abortWithError(c, http.StatusBadRequest, "day index must be in [0,6]")
		return
	}

	if err := h.planService.ClearDayWorkouts(c.Request.Context(), planID, dayIndex, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddWorkoutRequest defines the expected JSON for adding a workout.
// planId is optional; without it the workout lands on the current
// week's plan, created on demand.
type AddWorkoutRequest struct {
	PlanID      string `json:"planId"`
	DayIndex    int    `json:"dayIndex"`
	WorkoutName string `json:"workoutName" binding:"required"`
	Sets        *int   `json:"sets"`
	Reps        *int   `json:"reps"`
	Weight      string `json:"weight"`
	Duration    string `json:"duration"`
	Notes       string `json:"notes"`
}

func (h *PlanHandler) AddWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req AddWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.AddWorkoutInput{
		DayIndex:    req.DayIndex,
		WorkoutName: req.WorkoutName,
		Sets:        req.Sets,
		Reps:        req.Reps,
		Weight:      req.Weight,
		Duration:    req.Duration,
		Notes:       req.Notes,
	}
	if req.PlanID != "" {
		planID, err := primitive.ObjectIDFromHex(req.PlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid plan id")
			return
		}
		input.PlanID = &planID
	}

	workout, err := h.planService.AddWorkout(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapPlanWorkoutToResponse(workout))
}

// UpdateWorkoutRequest updates workout fields. Omitted fields are left
// unchanged; sets/reps sent as JSON null are cleared.
type UpdateWorkoutRequest struct {
	WorkoutName *string          `json:"workoutName"`
	DayIndex    *int             `json:"dayIndex"`
	Sets        optionalIntField `json:"sets"`
	Reps        optionalIntField `json:"reps"`
	Weight      *string          `json:"weight"`
	Duration    *string          `json:"duration"`
	Notes       *string          `json:"notes"`
	Completed   *bool            `json:"completed"`
}

// optionalIntField distinguishes "absent" from "present but null".
type optionalIntField struct {
	Present bool
	Value   *int
}

func (f *optionalIntField) UnmarshalJSON(data []byte) error {
	f.Present = true
	if string(data) == "null" {
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

func (h *PlanHandler) UpdateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workout id")
		return
	}
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.UpdateWorkoutInput{
		WorkoutName: req.WorkoutName,
		DayIndex:    req.DayIndex,
		Sets:        req.Sets.Value,
		ClearSets:   req.Sets.Present && req.Sets.Value == nil,
		Reps:        req.Reps.Value,
		ClearReps:   req.Reps.Present && req.Reps.Value == nil,
		Weight:      req.Weight,
		Duration:    req.Duration,
		Notes:       req.Notes,
		Completed:   req.Completed,
	}

	workout, err := h.planService.UpdateWorkout(c.Request.Context(), workoutID, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlanWorkoutToResponse(workout))
}
