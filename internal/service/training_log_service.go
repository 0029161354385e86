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

// TrainingLogService manages per-exercise training history.
type TrainingLogService interface {
	Create(ctx context.Context, log *domain.TrainingLog) (*domain.TrainingLog, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingLog, error)
	GetByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.TrainingLog, error)
	GetByRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.TrainingLog, error)
	GetByExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string) ([]domain.TrainingLog, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	GetMostRecent(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingLog, error)
	Delete(ctx context.Context, logID, userID primitive.ObjectID) error
}

type trainingLogService struct {
	repo repository.TrainingLogRepository
}

// NewTrainingLogService creates the training log service.
func NewTrainingLogService(repo repository.TrainingLogRepository) TrainingLogService {
	return &trainingLogService{repo: repo}
}

func (s *trainingLogService) Create(ctx context.Context, log *domain.TrainingLog) (*domain.TrainingLog, error) {
	if log.ExerciseName == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if log.WorkoutDate.IsZero() {
		return nil, fmt.Errorf("%w: workout date is required", ErrValidation)
	}
	if _, err := s.repo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("creating training log: %w", err)
	}
	return log, nil
}

func (s *trainingLogService) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingLog, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *trainingLogService) GetByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.TrainingLog, error) {
	return s.repo.GetByUserAndDate(ctx, userID, date)
}

func (s *trainingLogService) GetByRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.TrainingLog, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end before start", ErrValidation)
	}
	return s.repo.GetByUserAndRange(ctx, userID, start, end)
}

func (s *trainingLogService) GetByExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string) ([]domain.TrainingLog, error) {
	return s.repo.GetByUserAndExercise(ctx, userID, exerciseName)
}

func (s *trainingLogService) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func (s *trainingLogService) GetMostRecent(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingLog, error) {
	log, err := s.repo.GetMostRecent(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("fetching most recent log: %w", err)
	}
	return log, nil
}

func (s *trainingLogService) Delete(ctx context.Context, logID, userID primitive.ObjectID) error {
	log, err := s.repo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return fmt.Errorf("fetching training log: %w", err)
	}
	if log.UserID != userID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, logID); err != nil {
		return fmt.Errorf("deleting training log: %w", err)
	}
	return nil
}
