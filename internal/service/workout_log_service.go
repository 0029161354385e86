package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLogService records per-set workout sessions and derives their
// summary totals.
type WorkoutLogService interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (*domain.WorkoutLog, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	GetByRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutLog, error)
	Delete(ctx context.Context, logID, userID primitive.ObjectID) error
}

type workoutLogService struct {
	repo repository.WorkoutLogRepository
}

// NewWorkoutLogService creates the workout log service.
func NewWorkoutLogService(repo repository.WorkoutLogRepository) WorkoutLogService {
	return &workoutLogService{repo: repo}
}

// Create stores a session after deriving totalSets, durationSeconds and
// totalVolume from the recorded sets.
func (s *workoutLogService) Create(ctx context.Context, log *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	if log.ExerciseName == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if log.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", ErrValidation)
	}
	if !log.EndTime.IsZero() && log.EndTime.Before(log.StartTime) {
		return nil, fmt.Errorf("%w: session ends before it starts", ErrValidation)
	}

	log.TotalSets = len(log.Sets)
	if !log.EndTime.IsZero() {
		log.DurationSeconds = int(log.EndTime.Sub(log.StartTime).Seconds())
	}
	var volume float64
	for _, set := range log.Sets {
		volume += float64(set.Reps) * set.Weight
	}
	log.TotalVolume = volume

	if _, err := s.repo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("creating workout log: %w", err)
	}
	return log, nil
}

func (s *workoutLogService) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *workoutLogService) GetByRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutLog, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end before start", ErrValidation)
	}
	return s.repo.GetByUserAndRange(ctx, userID, start, end)
}

func (s *workoutLogService) Delete(ctx context.Context, logID, userID primitive.ObjectID) error {
	log, err := s.repo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return fmt.Errorf("fetching workout log: %w", err)
	}
	if log.UserID != userID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, logID); err != nil {
		return fmt.Errorf("deleting workout log: %w", err)
	}
	return nil
}
