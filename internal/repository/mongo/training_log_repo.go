package mongo

import (
	"context"
	"errors"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingLogCollectionName = "training_logs"

// mongoTrainingLogRepository implements repository.TrainingLogRepository
type mongoTrainingLogRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingLogRepository creates a new TrainingLog repository.
func NewMongoTrainingLogRepository(db *mongo.Database) repository.TrainingLogRepository {
	return &mongoTrainingLogRepository{
		collection: db.Collection(trainingLogCollectionName),
	}
}

func (r *mongoTrainingLogRepository) Create(ctx context.Context, log *domain.TrainingLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID || log.ExerciseName == "" || log.WorkoutDate.IsZero() {
		return primitive.NilObjectID, errors.New("training log requires userId, exerciseName and workoutDate")
	}
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

func (r *mongoTrainingLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingLog, error) {
	var log domain.TrainingLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *mongoTrainingLogRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingLog, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *mongoTrainingLogRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.TrainingLog, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return r.find(ctx, bson.M{"userId": userID, "workoutDate": day})
}

func (r *mongoTrainingLogRepository) GetByUserAndRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.TrainingLog, error) {
	filter := bson.M{
		"userId":      userID,
		"workoutDate": bson.M{"$gte": start, "$lte": end},
	}
	return r.find(ctx, filter)
}

func (r *mongoTrainingLogRepository) GetByUserAndExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string) ([]domain.TrainingLog, error) {
	return r.find(ctx, bson.M{"userId": userID, "exerciseName": exerciseName})
}

func (r *mongoTrainingLogRepository) find(ctx context.Context, filter bson.M) ([]domain.TrainingLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "workoutDate", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.TrainingLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *mongoTrainingLogRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}

func (r *mongoTrainingLogRepository) GetMostRecent(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingLog, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "workoutDate", Value: -1}, {Key: "createdAt", Value: -1}})

	var log domain.TrainingLog
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, findOptions).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *mongoTrainingLogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingLogIndexes creates necessary indexes. Call during startup.
func EnsureTrainingLogIndexes(ctx context.Context, db *mongo.Database) {
	_, _ = db.Collection(trainingLogCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "workoutDate", Value: -1}},
		Options: options.Index(),
	})
}
