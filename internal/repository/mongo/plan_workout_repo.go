package mongo

import (
	"context"
	"errors"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planWorkoutCollectionName = "weekly_plan_workouts"

// mongoPlanWorkoutRepository implements repository.PlanWorkoutRepository
type mongoPlanWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanWorkoutRepository creates a new PlanWorkout repository.
func NewMongoPlanWorkoutRepository(db *mongo.Database) repository.PlanWorkoutRepository {
	return &mongoPlanWorkoutRepository{
		collection: db.Collection(planWorkoutCollectionName),
	}
}

func (r *mongoPlanWorkoutRepository) Create(ctx context.Context, workout *domain.PlanWorkout) (primitive.ObjectID, error) {
	if workout.PlanID == primitive.NilObjectID || workout.WorkoutName == "" {
		return primitive.NilObjectID, errors.New("workout requires planId and workoutName")
	}
	workout.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

func (r *mongoPlanWorkoutRepository) CreateMany(ctx context.Context, workouts []domain.PlanWorkout) error {
	if len(workouts) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(workouts))
	for i := range workouts {
		if workouts[i].PlanID == primitive.NilObjectID || workouts[i].WorkoutName == "" {
			return errors.New("workout requires planId and workoutName")
		}
		workouts[i].ID = primitive.NewObjectID()
		docs = append(docs, workouts[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *mongoPlanWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanWorkout, error) {
	var workout domain.PlanWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *mongoPlanWorkoutRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlanWorkout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "dayIndex", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.PlanWorkout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *mongoPlanWorkoutRepository) Update(ctx context.Context, workout *domain.PlanWorkout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}

	update := bson.M{"$set": bson.M{
		"dayIndex":    workout.DayIndex,
		"workoutName": workout.WorkoutName,
		"sets":        workout.Sets,
		"reps":        workout.Reps,
		"weight":      workout.Weight,
		"duration":    workout.Duration,
		"completed":   workout.Completed,
		"notes":       workout.Notes,
		"muscleGroup": workout.MuscleGroup,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workout.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoPlanWorkoutRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

func (r *mongoPlanWorkoutRepository) DeleteByPlanAndDay(ctx context.Context, planID primitive.ObjectID, dayIndex int) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID, "dayIndex": dayIndex})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsurePlanWorkoutIndexes creates necessary indexes. Call during startup.
func EnsurePlanWorkoutIndexes(ctx context.Context, db *mongo.Database) {
	_, _ = db.Collection(planWorkoutCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "dayIndex", Value: 1}},
		Options: options.Index(),
	})
}
