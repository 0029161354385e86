package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanWithWorkouts bundles a weekly plan with its workouts.
type PlanWithWorkouts struct {
	Plan     domain.WeeklyPlan
	Workouts []domain.PlanWorkout
}

// AddWorkoutInput carries the fields for a new plan workout. A nil
// PlanID attaches the workout to the caller's current-week plan,
// creating an empty one if needed.
type AddWorkoutInput struct {
	PlanID      *primitive.ObjectID
	DayIndex    int
	WorkoutName string
	Sets        *int
	Reps        *int
	Weight      string
	Duration    string
	Notes       string
}

// UpdateWorkoutInput updates fields of an existing workout. Nil
// pointers leave the field unchanged; ClearSets/ClearReps explicitly
// null the numeric fields.
type UpdateWorkoutInput struct {
	WorkoutName *string
	DayIndex    *int
	Sets        *int
	ClearSets   bool
	Reps        *int
	ClearReps   bool
	Weight      *string
	Duration    *string
	Notes       *string
	Completed   *bool
}

// Copy actions for reconciling the current plan into next week.
const (
	CopyActionCancel    = "cancel"
	CopyActionOverwrite = "overwrite"
	CopyActionMerge     = "merge"
)

// PlanService manages weekly workout plans: AI generation, day edits,
// completion tracking, and the carry-over into next week.
type PlanService interface {
	GetCurrentPlan(ctx context.Context, userID primitive.ObjectID) (*PlanWithWorkouts, error)
	GetAllPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WeeklyPlan, error)
	GetPlanByID(ctx context.Context, planID, userID primitive.ObjectID) (*PlanWithWorkouts, error)
	Regenerate(ctx context.Context, userID primitive.ObjectID) (*PlanWithWorkouts, error)
	DeletePlan(ctx context.Context, planID, userID primitive.ObjectID) error
	HasNextWeekPlan(ctx context.Context, userID primitive.ObjectID, currentEndDate time.Time) (bool, error)
	HasPlanForCurrentWeek(ctx context.Context, userID primitive.ObjectID) (bool, error)
	CopyToNextWeek(ctx context.Context, userID, currentPlanID primitive.ObjectID, action string) (*PlanWithWorkouts, error)
	ToggleWorkoutCompletion(ctx context.Context, workoutID, userID primitive.ObjectID) (*domain.PlanWorkout, error)
	ClearDayWorkouts(ctx context.Context, planID primitive.ObjectID, dayIndex int, userID primitive.ObjectID) error
	AddWorkout(ctx context.Context, userID primitive.ObjectID, input AddWorkoutInput) (*domain.PlanWorkout, error)
	UpdateWorkout(ctx context.Context, workoutID, userID primitive.ObjectID, input UpdateWorkoutInput) (*domain.PlanWorkout, error)
}

// userLocks serializes plan regeneration per user. Regeneration is a
// delete-then-create spanning an external AI call, so concurrent
// requests for the same user would race without it.
type userLocks struct {
	mu    sync.Mutex
	locks map[primitive.ObjectID]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[primitive.ObjectID]*sync.Mutex)}
}

func (u *userLocks) get(userID primitive.ObjectID) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()
	lock, ok := u.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		u.locks[userID] = lock
	}
	return lock
}

type planService struct {
	planRepo    repository.WeeklyPlanRepository
	workoutRepo repository.PlanWorkoutRepository
	userRepo    repository.UserRepository
	equipment   EquipmentService
	generator   PlanGenerator
	regenLocks  *userLocks
	now         func() time.Time
}

// NewPlanService creates the plan service.
func NewPlanService(
	planRepo repository.WeeklyPlanRepository,
	workoutRepo repository.PlanWorkoutRepository,
	userRepo repository.UserRepository,
	equipment EquipmentService,
	generator PlanGenerator,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
		equipment:   equipment,
		generator:   generator,
		regenLocks:  newUserLocks(),
		now:         time.Now,
	}
}

func (s *planService) GetCurrentPlan(ctx context.Context, userID primitive.ObjectID) (*PlanWithWorkouts, error) {
	plan, err := s.planRepo.FindByDate(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("finding current plan: %w", err)
	}
	return s.withWorkouts(ctx, plan)
}

func (s *planService) GetAllPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WeeklyPlan, error) {
	return s.planRepo.GetByUser(ctx, userID)
}

func (s *planService) GetPlanByID(ctx context.Context, planID, userID primitive.ObjectID) (*PlanWithWorkouts, error) {
	plan, err := s.ownedPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	return s.withWorkouts(ctx, plan)
}

// Regenerate deletes any plan covering today and creates a fresh
// AI-generated one for the Monday-Sunday week containing today.
// Serialized per user.
func (s *planService) Regenerate(ctx context.Context, userID primitive.ObjectID) (*PlanWithWorkouts, error) {
	lock := s.regenLocks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	today := s.now()
	weekStart, weekEnd := domain.WeekBounds(today)

	existing, err := s.planRepo.FindByDate(ctx, userID, today)
	if err == nil {
		if err := s.planRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("deleting existing plan: %w", err)
		}
		logrus.WithField("planId", existing.ID.Hex()).Info("deleted existing weekly plan before regeneration")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking for existing plan: %w", err)
	}

	knowledge, err := s.equipment.KnowledgeBase(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading equipment knowledge: %w", err)
	}
	workouts := s.generator.Generate(ctx, knowledge, weekStart, weekEnd)

	plan := &domain.WeeklyPlan{
		UserID:    userID,
		StartDate: weekStart,
		EndDate:   weekEnd,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("creating weekly plan: %w", err)
	}
	for i := range workouts {
		workouts[i].PlanID = planID
	}
	if err := s.workoutRepo.CreateMany(ctx, workouts); err != nil {
		return nil, fmt.Errorf("storing plan workouts: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"userId":   userID.Hex(),
		"planId":   planID.Hex(),
		"workouts": len(workouts),
	}).Info("generated weekly plan")

	return s.withWorkouts(ctx, plan)
}

func (s *planService) DeletePlan(ctx context.Context, planID, userID primitive.ObjectID) error {
	if _, err := s.ownedPlan(ctx, planID, userID); err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

func (s *planService) HasNextWeekPlan(ctx context.Context, userID primitive.ObjectID, currentEndDate time.Time) (bool, error) {
	nextWeekStart := currentEndDate.AddDate(0, 0, 1)
	_, err := s.planRepo.FindByDate(ctx, userID, nextWeekStart)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking next week plan: %w", err)
	}
	return true, nil
}

// HasPlanForCurrentWeek reports whether any plan overlaps the rolling
// window [today, today+6], excluding boundary-only touches.
func (s *planService) HasPlanForCurrentWeek(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	plans, err := s.planRepo.GetByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("listing plans: %w", err)
	}

	today := truncateToDay(s.now())
	windowEnd := today.AddDate(0, 0, 6)

	for _, plan := range plans {
		maxStart := today
		if plan.StartDate.After(maxStart) {
			maxStart = plan.StartDate
		}
		minEnd := windowEnd
		if plan.EndDate.Before(minEnd) {
			minEnd = plan.EndDate
		}
		if maxStart.Before(minEnd) {
			return true, nil
		}
	}
	return false, nil
}

// CopyToNextWeek carries the current plan's incomplete workouts into
// next week according to the requested action.
func (s *planService) CopyToNextWeek(ctx context.Context, userID, currentPlanID primitive.ObjectID, action string) (*PlanWithWorkouts, error) {
	currentPlan, err := s.ownedPlan(ctx, currentPlanID, userID)
	if err != nil {
		return nil, err
	}

	workouts, err := s.workoutRepo.GetByPlanID(ctx, currentPlanID)
	if err != nil {
		return nil, fmt.Errorf("loading plan workouts: %w", err)
	}
	var incomplete []domain.PlanWorkout
	for _, w := range workouts {
		if !w.Completed {
			incomplete = append(incomplete, w)
		}
	}
	if len(incomplete) == 0 {
		return nil, fmt.Errorf("%w: no incomplete workouts to copy", ErrValidation)
	}

	if action == CopyActionCancel {
		return s.withWorkouts(ctx, currentPlan)
	}

	nextWeekStart := currentPlan.EndDate.AddDate(0, 0, 1)
	nextWeekEnd := nextWeekStart.AddDate(0, 0, 6)

	nextPlan, err := s.planRepo.FindByDate(ctx, userID, nextWeekStart)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking next week plan: %w", err)
	}
	nextPlanExists := err == nil

	switch {
	case action == CopyActionOverwrite:
		if nextPlanExists {
			if err := s.planRepo.Delete(ctx, nextPlan.ID); err != nil {
				return nil, fmt.Errorf("deleting next week plan: %w", err)
			}
		}
		return s.createNextWeekPlan(ctx, userID, nextWeekStart, nextWeekEnd, incomplete)

	case action == CopyActionMerge && nextPlanExists:
		copies := copyWorkouts(incomplete, nextPlan.ID)
		if err := s.workoutRepo.CreateMany(ctx, copies); err != nil {
			return nil, fmt.Errorf("merging workouts into next week plan: %w", err)
		}
		return s.withWorkouts(ctx, nextPlan)

	default:
		return s.createNextWeekPlan(ctx, userID, nextWeekStart, nextWeekEnd, incomplete)
	}
}

func (s *planService) createNextWeekPlan(ctx context.Context, userID primitive.ObjectID, start, end time.Time, source []domain.PlanWorkout) (*PlanWithWorkouts, error) {
	plan := &domain.WeeklyPlan{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("creating next week plan: %w", err)
	}
	copies := copyWorkouts(source, planID)
	if err := s.workoutRepo.CreateMany(ctx, copies); err != nil {
		return nil, fmt.Errorf("storing next week workouts: %w", err)
	}
	return s.withWorkouts(ctx, plan)
}

// copyWorkouts clones workouts onto a target plan with completion reset.
func copyWorkouts(source []domain.PlanWorkout, planID primitive.ObjectID) []domain.PlanWorkout {
	copies := make([]domain.PlanWorkout, 0, len(source))
	for _, w := range source {
		copies = append(copies, domain.PlanWorkout{
			PlanID:      planID,
			DayIndex:    w.DayIndex,
			WorkoutName: w.WorkoutName,
			Sets:        w.Sets,
			Reps:        w.Reps,
			Weight:      w.Weight,
			Duration:    w.Duration,
			Notes:       w.Notes,
			Completed:   false,
		})
	}
	return copies
}

func (s *planService) ToggleWorkoutCompletion(ctx context.Context, workoutID, userID primitive.ObjectID) (*domain.PlanWorkout, error) {
	workout, err := s.ownedWorkout(ctx, workoutID, userID)
	if err != nil {
		return nil, err
	}
	workout.Completed = !workout.Completed
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, fmt.Errorf("updating workout: %w", err)
	}
	return workout, nil
}

func (s *planService) ClearDayWorkouts(ctx context.Context, planID primitive.ObjectID, dayIndex int, userID primitive.ObjectID) error {
	if _, err := s.ownedPlan(ctx, planID, userID); err != nil {
		return err
	}
	deleted, err := s.workoutRepo.DeleteByPlanAndDay(ctx, planID, dayIndex)
	if err != nil {
		return fmt.Errorf("clearing day workouts: %w", err)
	}
	if deleted == 0 {
		logrus.WithFields(logrus.Fields{
			"planId":   planID.Hex(),
			"dayIndex": dayIndex,
		}).Warn("no workouts to clear for day")
		return nil
	}
	logrus.WithFields(logrus.Fields{
		"planId":   planID.Hex(),
		"dayIndex": dayIndex,
		"deleted":  deleted,
	}).Info("cleared day workouts")
	return nil
}

func (s *planService) AddWorkout(ctx context.Context, userID primitive.ObjectID, input AddWorkoutInput) (*domain.PlanWorkout, error) {
	if input.WorkoutName == "" {
		return nil, fmt.Errorf("%w: workout name is required", ErrValidation)
	}
	if input.DayIndex < 0 || input.DayIndex > 6 {
		return nil, fmt.Errorf("%w: day index must be in [0,6]", ErrValidation)
	}

	var plan *domain.WeeklyPlan
	var err error
	if input.PlanID != nil {
		plan, err = s.ownedPlan(ctx, *input.PlanID, userID)
		if err != nil {
			return nil, err
		}
	} else {
		plan, err = s.currentOrNewPlan(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	workout := &domain.PlanWorkout{
		PlanID:      plan.ID,
		DayIndex:    input.DayIndex,
		WorkoutName: input.WorkoutName,
		Sets:        input.Sets,
		Reps:        input.Reps,
		Weight:      input.Weight,
		Duration:    input.Duration,
		Notes:       input.Notes,
		Completed:   false,
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("creating workout: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"workoutId": workout.ID.Hex(),
		"planId":    plan.ID.Hex(),
	}).Info("added workout to plan")
	return workout, nil
}

// currentOrNewPlan finds the plan covering today or lazily creates an
// empty one for the current Monday-Sunday week.
func (s *planService) currentOrNewPlan(ctx context.Context, userID primitive.ObjectID) (*domain.WeeklyPlan, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	today := s.now()
	plan, err := s.planRepo.FindByDate(ctx, userID, today)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("finding current plan: %w", err)
	}

	weekStart, weekEnd := domain.WeekBounds(today)
	plan = &domain.WeeklyPlan{
		UserID:    userID,
		StartDate: weekStart,
		EndDate:   weekEnd,
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("creating weekly plan: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"planId": plan.ID.Hex(),
		"userId": userID.Hex(),
	}).Info("created empty weekly plan for workout")
	return plan, nil
}

func (s *planService) UpdateWorkout(ctx context.Context, workoutID, userID primitive.ObjectID, input UpdateWorkoutInput) (*domain.PlanWorkout, error) {
	workout, err := s.ownedWorkout(ctx, workoutID, userID)
	if err != nil {
		return nil, err
	}

	if input.WorkoutName != nil {
		workout.WorkoutName = *input.WorkoutName
	}
	if input.DayIndex != nil {
		if *input.DayIndex < 0 || *input.DayIndex > 6 {
			return nil, fmt.Errorf("%w: day index must be in [0,6]", ErrValidation)
		}
		workout.DayIndex = *input.DayIndex
	}
	if input.Sets != nil {
		workout.Sets = input.Sets
	} else if input.ClearSets {
		workout.Sets = nil
	}
	if input.Reps != nil {
		workout.Reps = input.Reps
	} else if input.ClearReps {
		workout.Reps = nil
	}
	if input.Weight != nil {
		workout.Weight = *input.Weight
	}
	if input.Duration != nil {
		workout.Duration = *input.Duration
	}
	if input.Notes != nil {
		workout.Notes = *input.Notes
	}
	if input.Completed != nil {
		workout.Completed = *input.Completed
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, fmt.Errorf("updating workout: %w", err)
	}
	return workout, nil
}

// ownedPlan loads a plan and rejects the call when it belongs to a
// different user.
func (s *planService) ownedPlan(ctx context.Context, planID, userID primitive.ObjectID) (*domain.WeeklyPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("fetching plan: %w", err)
	}
	if plan.UserID != userID {
		return nil, ErrForbidden
	}
	return plan, nil
}

// ownedWorkout loads a workout and checks ownership via its plan.
func (s *planService) ownedWorkout(ctx context.Context, workoutID, userID primitive.ObjectID) (*domain.PlanWorkout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("fetching workout: %w", err)
	}
	if _, err := s.ownedPlan(ctx, workout.PlanID, userID); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *planService) withWorkouts(ctx context.Context, plan *domain.WeeklyPlan) (*PlanWithWorkouts, error) {
	workouts, err := s.workoutRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("loading plan workouts: %w", err)
	}
	return &PlanWithWorkouts{Plan: *plan, Workouts: workouts}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
