package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTrainingLogRepo struct {
	logs map[primitive.ObjectID]*domain.TrainingLog
}

func newFakeTrainingLogRepo() *fakeTrainingLogRepo {
	return &fakeTrainingLogRepo{logs: make(map[primitive.ObjectID]*domain.TrainingLog)}
}

func (r *fakeTrainingLogRepo) Create(_ context.Context, log *domain.TrainingLog) (primitive.ObjectID, error) {
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()
	stored := *log
	r.logs[log.ID] = &stored
	return log.ID, nil
}

func (r *fakeTrainingLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *log
	return &copied, nil
}

func (r *fakeTrainingLogRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]domain.TrainingLog, error) {
	var out []domain.TrainingLog
	for _, log := range r.logs {
		if log.UserID == userID {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeTrainingLogRepo) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, date time.Time) ([]domain.TrainingLog, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var out []domain.TrainingLog
	for _, log := range r.logs {
		d := log.WorkoutDate
		if log.UserID == userID && time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Equal(day) {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeTrainingLogRepo) GetByUserAndRange(_ context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.TrainingLog, error) {
	var out []domain.TrainingLog
	for _, log := range r.logs {
		if log.UserID == userID && !log.WorkoutDate.Before(start) && !log.WorkoutDate.After(end) {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeTrainingLogRepo) GetByUserAndExercise(_ context.Context, userID primitive.ObjectID, exerciseName string) ([]domain.TrainingLog, error) {
	var out []domain.TrainingLog
	for _, log := range r.logs {
		if log.UserID == userID && log.ExerciseName == exerciseName {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeTrainingLogRepo) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, log := range r.logs {
		if log.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeTrainingLogRepo) GetMostRecent(_ context.Context, userID primitive.ObjectID) (*domain.TrainingLog, error) {
	var mine []domain.TrainingLog
	for _, log := range r.logs {
		if log.UserID == userID {
			mine = append(mine, *log)
		}
	}
	if len(mine) == 0 {
		return nil, repository.ErrNotFound
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].WorkoutDate.After(mine[j].WorkoutDate) })
	return &mine[0], nil
}

func (r *fakeTrainingLogRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

func TestTrainingLogCreate_Validation(t *testing.T) {
	svc := NewTrainingLogService(newFakeTrainingLogRepo())

	_, err := svc.Create(context.Background(), &domain.TrainingLog{
		UserID:      primitive.NewObjectID(),
		WorkoutDate: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), &domain.TrainingLog{
		UserID:       primitive.NewObjectID(),
		ExerciseName: "Deadlift",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTrainingLogGetMostRecent(t *testing.T) {
	repo := newFakeTrainingLogRepo()
	svc := NewTrainingLogService(repo)
	userID := primitive.NewObjectID()

	_, err := svc.GetMostRecent(context.Background(), userID)
	assert.ErrorIs(t, err, ErrLogNotFound)

	for _, day := range []int{1, 3, 2} {
		_, err := svc.Create(context.Background(), &domain.TrainingLog{
			UserID:       userID,
			ExerciseName: "Deadlift",
			WorkoutDate:  time.Date(2026, time.September, day, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	recent, err := svc.GetMostRecent(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, recent.WorkoutDate.Day())

	count, err := svc.CountByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestTrainingLogGetByRange_RejectsInvertedRange(t *testing.T) {
	svc := NewTrainingLogService(newFakeTrainingLogRepo())
	start := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetByRange(context.Background(), primitive.NewObjectID(), start, start.AddDate(0, 0, -7))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTrainingLogDelete_OwnershipChecked(t *testing.T) {
	repo := newFakeTrainingLogRepo()
	svc := NewTrainingLogService(repo)
	owner := primitive.NewObjectID()

	log, err := svc.Create(context.Background(), &domain.TrainingLog{
		UserID:       owner,
		ExerciseName: "Bench Press",
		WorkoutDate:  time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), log.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), log.ID, owner))
	err = svc.Delete(context.Background(), log.ID, owner)
	assert.ErrorIs(t, err, ErrLogNotFound)
}
