package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubPlanService overrides only the calls a test needs; the embedded
// interface panics on anything unexpected.
type stubPlanService struct {
	service.PlanService
	result *service.PlanWithWorkouts
	err    error
}

func (s *stubPlanService) GetCurrentPlan(_ context.Context, _ primitive.ObjectID) (*service.PlanWithWorkouts, error) {
	return s.result, s.err
}

type stubEquipmentService struct {
	service.EquipmentService
}

func (s *stubEquipmentService) DayMuscleLabel(_ context.Context, workouts []domain.PlanWorkout) string {
	if len(workouts) == 0 {
		return "Rest"
	}
	return "Chest"
}

func planRouter(planService service.PlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPlanHandler(planService, &stubEquipmentService{})
	group := router.Group("/api/v1")
	group.Use(UserContextMiddleware())
	group.GET("/plans/current", handler.GetCurrentPlan)
	return router
}

func TestGetCurrentPlan_GroupsWorkoutsByDay(t *testing.T) {
	userID := primitive.NewObjectID()
	planID := primitive.NewObjectID()
	start := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	sets := 3
	stub := &stubPlanService{result: &service.PlanWithWorkouts{
		Plan: domain.WeeklyPlan{
			ID:        planID,
			UserID:    userID,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 6),
		},
		Workouts: []domain.PlanWorkout{
			{ID: primitive.NewObjectID(), PlanID: planID, DayIndex: 0, WorkoutName: "Bench Press", Sets: &sets},
			{ID: primitive.NewObjectID(), PlanID: planID, DayIndex: 0, WorkoutName: "Incline Press"},
			{ID: primitive.NewObjectID(), PlanID: planID, DayIndex: 3, WorkoutName: "Deadlift", Completed: true},
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans/current", nil)
	req.Header.Set("X-User-ID", userID.Hex())
	rec := httptest.NewRecorder()
	planRouter(stub).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp WeeklyPlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, planID.Hex(), resp.ID)
	assert.Equal(t, 3, resp.WorkoutCount)
	assert.Len(t, resp.WorkoutsByDay, 7)
	assert.Len(t, resp.WorkoutsByDay[0], 2)
	assert.Equal(t, "Bench Press", resp.WorkoutsByDay[0][0].WorkoutName)
	assert.Len(t, resp.WorkoutsByDay[3], 1)
	assert.True(t, resp.WorkoutsByDay[3][0].Completed)
	assert.Empty(t, resp.WorkoutsByDay[1])

	assert.Equal(t, "Chest", resp.MuscleGroupsByDay[0])
	assert.Equal(t, "Rest", resp.MuscleGroupsByDay[1])
}

func TestGetCurrentPlan_NotFound(t *testing.T) {
	stub := &stubPlanService{err: service.ErrPlanNotFound}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans/current", nil)
	req.Header.Set("X-User-ID", primitive.NewObjectID().Hex())
	rec := httptest.NewRecorder()
	planRouter(stub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCurrentPlan_RequiresUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans/current", nil)
	rec := httptest.NewRecorder()
	planRouter(&stubPlanService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
