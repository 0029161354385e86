package repository

import (
	"context"
	"time"

	"fitai/agent-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.UserProfile) error
}

// EquipmentRepository defines the interface for the read-only equipment catalog.
type EquipmentRepository interface {
	Count(ctx context.Context) (int64, error)
	CreateMany(ctx context.Context, items []domain.Equipment) error
	GetAll(ctx context.Context) ([]domain.Equipment, error)
	GetByName(ctx context.Context, name string) (*domain.Equipment, error)
	Search(ctx context.Context, keyword string) ([]domain.Equipment, error)
	GetByMuscle(ctx context.Context, muscle string) ([]domain.Equipment, error)
}

// WeeklyPlanRepository defines the interface for weekly plan aggregates.
// Delete cascades to the plan's workouts at the application level.
type WeeklyPlanRepository interface {
	Create(ctx context.Context, plan *domain.WeeklyPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyPlan, error)
	// FindByDate returns the first plan whose [startDate, endDate] span
	// contains the given date, or ErrNotFound.
	FindByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WeeklyPlan, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WeeklyPlan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PlanWorkoutRepository defines the interface for the workouts owned by a plan.
type PlanWorkoutRepository interface {
	Create(ctx context.Context, workout *domain.PlanWorkout) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, workouts []domain.PlanWorkout) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanWorkout, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlanWorkout, error)
	Update(ctx context.Context, workout *domain.PlanWorkout) error
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
	DeleteByPlanAndDay(ctx context.Context, planID primitive.ObjectID, dayIndex int) (int64, error)
}

// CalendarEventRepository defines the interface for calendar events.
type CalendarEventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CalendarEvent, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.CalendarEvent, error)
	GetByUserAndRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, event *domain.CalendarEvent) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingLogRepository defines the interface for training log entries.
type TrainingLogRepository interface {
	Create(ctx context.Context, log *domain.TrainingLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingLog, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingLog, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.TrainingLog, error)
	GetByUserAndRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.TrainingLog, error)
	GetByUserAndExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string) ([]domain.TrainingLog, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	GetMostRecent(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingLog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutLogRepository defines the interface for workout session logs.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	GetByUserAndRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutLog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ConversationRepository defines the interface for chat conversations and
// their messages.
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Conversation, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error)
	AddMessage(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error)
	GetMessages(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error)
}
