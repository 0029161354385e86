package service

import (
	"context"
	"testing"
	"time"

	"fitai/agent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tuesday 2026-09-01; its week runs Mon 2026-08-31 .. Sun 2026-09-06.
var testToday = time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)

type planFixture struct {
	svc         *planService
	planRepo    *fakePlanRepo
	workoutRepo *fakeWorkoutRepo
	userRepo    *fakeUserRepo
	user        *domain.User
	otherUser   *domain.User
}

func newPlanFixture(t *testing.T, providerReply string) *planFixture {
	t.Helper()

	user := &domain.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com"}
	other := &domain.User{ID: primitive.NewObjectID(), Name: "Eve", Email: "eve@example.com"}

	workoutRepo := newFakeWorkoutRepo()
	planRepo := newFakePlanRepo(workoutRepo)
	userRepo := newFakeUserRepo(user, other)
	equipment := NewEquipmentService(&fakeEquipmentRepo{})
	generator := NewPlanGenerator(&fakeProvider{reply: providerReply})

	svc := &planService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
		equipment:   equipment,
		generator:   generator,
		regenLocks:  newUserLocks(),
		now:         func() time.Time { return testToday },
	}
	return &planFixture{
		svc:         svc,
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
		user:        user,
		otherUser:   other,
	}
}

func (f *planFixture) seedPlan(t *testing.T, userID primitive.ObjectID, start, end time.Time, workouts ...domain.PlanWorkout) *domain.WeeklyPlan {
	t.Helper()
	plan := &domain.WeeklyPlan{UserID: userID, StartDate: start, EndDate: end}
	_, err := f.planRepo.Create(context.Background(), plan)
	require.NoError(t, err)
	for i := range workouts {
		workouts[i].PlanID = plan.ID
	}
	require.NoError(t, f.workoutRepo.CreateMany(context.Background(), workouts))
	return plan
}

func intPtr(v int) *int { return &v }

func TestRegenerate_CreatesPlanForCurrentWeek(t *testing.T) {
	reply := `[{"day":"Monday","workouts":[{"name":"Bench Press","sets":3,"reps":8}]}]`
	f := newPlanFixture(t, reply)

	result, err := f.svc.Regenerate(context.Background(), f.user.ID)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), result.Plan.StartDate)
	assert.Equal(t, time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC), result.Plan.EndDate)
	require.Len(t, result.Workouts, 1)
	assert.Equal(t, "Bench Press", result.Workouts[0].WorkoutName)
	assert.Equal(t, result.Plan.ID, result.Workouts[0].PlanID)
}

func TestRegenerate_ReplacesExistingPlan(t *testing.T) {
	reply := `[{"day":"Friday","workouts":[{"name":"Deadlift","sets":5,"reps":5}]}]`
	f := newPlanFixture(t, reply)

	weekStart, weekEnd := domain.WeekBounds(testToday)
	old := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Old Workout"})

	result, err := f.svc.Regenerate(context.Background(), f.user.ID)
	require.NoError(t, err)

	assert.NotEqual(t, old.ID, result.Plan.ID)
	_, err = f.planRepo.GetByID(context.Background(), old.ID)
	assert.Error(t, err)
	orphans, err := f.workoutRepo.GetByPlanID(context.Background(), old.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestRegenerate_UnknownUser(t *testing.T) {
	f := newPlanFixture(t, "[]")
	_, err := f.svc.Regenerate(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCopyToNextWeek_CancelLeavesEverythingUntouched(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	plan := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 2, WorkoutName: "Squats", Completed: false})

	result, err := f.svc.CopyToNextWeek(context.Background(), f.user.ID, plan.ID, CopyActionCancel)
	require.NoError(t, err)

	assert.Equal(t, plan.ID, result.Plan.ID)
	assert.Len(t, f.planRepo.plans, 1)
}

func TestCopyToNextWeek_MergeWithoutExistingPlanCreatesOne(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	plan := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 2, WorkoutName: "Squats", Completed: false},
		domain.PlanWorkout{DayIndex: 4, WorkoutName: "Bench", Completed: true})

	result, err := f.svc.CopyToNextWeek(context.Background(), f.user.ID, plan.ID, CopyActionMerge)
	require.NoError(t, err)

	assert.Equal(t, weekEnd.AddDate(0, 0, 1), result.Plan.StartDate)
	assert.Equal(t, weekEnd.AddDate(0, 0, 7), result.Plan.EndDate)
	require.Len(t, result.Workouts, 1)
	assert.Equal(t, "Squats", result.Workouts[0].WorkoutName)
	assert.Equal(t, 2, result.Workouts[0].DayIndex)
	assert.False(t, result.Workouts[0].Completed)
}

func TestCopyToNextWeek_MergeAppendsToExistingPlan(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	current := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 1, WorkoutName: "Rows", Completed: false})
	next := f.seedPlan(t, f.user.ID, weekStart.AddDate(0, 0, 7), weekEnd.AddDate(0, 0, 7),
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Existing", Completed: false})

	result, err := f.svc.CopyToNextWeek(context.Background(), f.user.ID, current.ID, CopyActionMerge)
	require.NoError(t, err)

	assert.Equal(t, next.ID, result.Plan.ID)
	require.Len(t, result.Workouts, 2)
	names := []string{result.Workouts[0].WorkoutName, result.Workouts[1].WorkoutName}
	assert.Contains(t, names, "Existing")
	assert.Contains(t, names, "Rows")
}

func TestCopyToNextWeek_OverwriteReplacesExistingPlan(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	current := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 3, WorkoutName: "Lunges", Completed: false, Sets: intPtr(4)})
	next := f.seedPlan(t, f.user.ID, weekStart.AddDate(0, 0, 7), weekEnd.AddDate(0, 0, 7),
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Doomed", Completed: false})

	result, err := f.svc.CopyToNextWeek(context.Background(), f.user.ID, current.ID, CopyActionOverwrite)
	require.NoError(t, err)

	assert.NotEqual(t, next.ID, result.Plan.ID)
	require.Len(t, result.Workouts, 1)
	assert.Equal(t, "Lunges", result.Workouts[0].WorkoutName)
	assert.False(t, result.Workouts[0].Completed)

	// The overwritten plan and its workouts are fully gone.
	_, err = f.planRepo.GetByID(context.Background(), next.ID)
	assert.Error(t, err)
	orphans, err := f.workoutRepo.GetByPlanID(context.Background(), next.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestCopyToNextWeek_NoIncompleteWorkouts(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	plan := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Done", Completed: true})

	for _, action := range []string{CopyActionCancel, CopyActionOverwrite, CopyActionMerge} {
		_, err := f.svc.CopyToNextWeek(context.Background(), f.user.ID, plan.ID, action)
		assert.ErrorIs(t, err, ErrValidation, "action %q", action)
	}
}

func TestCopyToNextWeek_ForeignPlan(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	plan := f.seedPlan(t, f.otherUser.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Private", Completed: false})

	_, err := f.svc.CopyToNextWeek(context.Background(), f.user.ID, plan.ID, CopyActionMerge)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestToggleWorkoutCompletion_SelfInverse(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Press", Completed: false})
	workouts, _ := f.workoutRepo.GetByPlanID(context.Background(), f.planOf(t).ID)
	workoutID := workouts[0].ID

	first, err := f.svc.ToggleWorkoutCompletion(context.Background(), workoutID, f.user.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)

	second, err := f.svc.ToggleWorkoutCompletion(context.Background(), workoutID, f.user.ID)
	require.NoError(t, err)
	assert.False(t, second.Completed)
}

func TestToggleWorkoutCompletion_ForeignWorkout(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	plan := f.seedPlan(t, f.otherUser.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Press", Completed: false})
	workouts, _ := f.workoutRepo.GetByPlanID(context.Background(), plan.ID)

	_, err := f.svc.ToggleWorkoutCompletion(context.Background(), workouts[0].ID, f.user.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestClearDayWorkouts(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	plan := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 1, WorkoutName: "A"},
		domain.PlanWorkout{DayIndex: 1, WorkoutName: "B"},
		domain.PlanWorkout{DayIndex: 2, WorkoutName: "C"})

	require.NoError(t, f.svc.ClearDayWorkouts(context.Background(), plan.ID, 1, f.user.ID))

	remaining, err := f.workoutRepo.GetByPlanID(context.Background(), plan.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "C", remaining[0].WorkoutName)

	// Clearing an empty day is a logged no-op, not an error.
	require.NoError(t, f.svc.ClearDayWorkouts(context.Background(), plan.ID, 5, f.user.ID))
}

func TestAddWorkout_LazilyCreatesCurrentWeekPlan(t *testing.T) {
	f := newPlanFixture(t, "[]")

	workout, err := f.svc.AddWorkout(context.Background(), f.user.ID, AddWorkoutInput{
		DayIndex:    3,
		WorkoutName: "Pull-ups",
		Sets:        intPtr(3),
	})
	require.NoError(t, err)

	plan, err := f.planRepo.GetByID(context.Background(), workout.PlanID)
	require.NoError(t, err)
	weekStart, weekEnd := domain.WeekBounds(testToday)
	assert.Equal(t, weekStart, plan.StartDate)
	assert.Equal(t, weekEnd, plan.EndDate)

	// A second add reuses the same plan.
	second, err := f.svc.AddWorkout(context.Background(), f.user.ID, AddWorkoutInput{
		DayIndex:    4,
		WorkoutName: "Dips",
	})
	require.NoError(t, err)
	assert.Equal(t, plan.ID, second.PlanID)
}

func TestAddWorkout_Validation(t *testing.T) {
	f := newPlanFixture(t, "[]")

	_, err := f.svc.AddWorkout(context.Background(), f.user.ID, AddWorkoutInput{DayIndex: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.AddWorkout(context.Background(), f.user.ID, AddWorkoutInput{DayIndex: 9, WorkoutName: "X"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateWorkout_FieldByField(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	plan := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Press", Sets: intPtr(3), Reps: intPtr(10), Weight: "60 kg"})
	workouts, _ := f.workoutRepo.GetByPlanID(context.Background(), plan.ID)

	name := "Incline Press"
	completed := true
	updated, err := f.svc.UpdateWorkout(context.Background(), workouts[0].ID, f.user.ID, UpdateWorkoutInput{
		WorkoutName: &name,
		Sets:        intPtr(5),
		ClearReps:   true,
		Completed:   &completed,
	})
	require.NoError(t, err)

	assert.Equal(t, "Incline Press", updated.WorkoutName)
	require.NotNil(t, updated.Sets)
	assert.Equal(t, 5, *updated.Sets)
	assert.Nil(t, updated.Reps)
	assert.Equal(t, "60 kg", updated.Weight) // untouched
	assert.True(t, updated.Completed)
}

func TestHasNextWeekPlan(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)

	has, err := f.svc.HasNextWeekPlan(context.Background(), f.user.ID, weekEnd)
	require.NoError(t, err)
	assert.False(t, has)

	f.seedPlan(t, f.user.ID, weekStart.AddDate(0, 0, 7), weekEnd.AddDate(0, 0, 7))

	has, err = f.svc.HasNextWeekPlan(context.Background(), f.user.ID, weekEnd)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestHasPlanForCurrentWeek(t *testing.T) {
	f := newPlanFixture(t, "[]")

	has, err := f.svc.HasPlanForCurrentWeek(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.False(t, has)

	weekStart, weekEnd := domain.WeekBounds(testToday)
	f.seedPlan(t, f.user.ID, weekStart, weekEnd)

	has, err = f.svc.HasPlanForCurrentWeek(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGetCurrentPlan_NotFound(t *testing.T) {
	f := newPlanFixture(t, "[]")
	_, err := f.svc.GetCurrentPlan(context.Background(), f.user.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestDeletePlan_CascadesToWorkouts(t *testing.T) {
	f := newPlanFixture(t, "[]")
	weekStart, weekEnd := domain.WeekBounds(testToday)
	plan := f.seedPlan(t, f.user.ID, weekStart, weekEnd,
		domain.PlanWorkout{DayIndex: 0, WorkoutName: "Press"})

	require.NoError(t, f.svc.DeletePlan(context.Background(), plan.ID, f.user.ID))

	_, err := f.planRepo.GetByID(context.Background(), plan.ID)
	assert.Error(t, err)
	workouts, err := f.workoutRepo.GetByPlanID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Empty(t, workouts)
}

// planOf returns the single plan owned by the fixture user.
func (f *planFixture) planOf(t *testing.T) *domain.WeeklyPlan {
	t.Helper()
	plans, err := f.planRepo.GetByUser(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, plans)
	return &plans[0]
}
