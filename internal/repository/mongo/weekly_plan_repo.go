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

const weeklyPlanCollectionName = "weekly_plans"

// mongoWeeklyPlanRepository implements repository.WeeklyPlanRepository
type mongoWeeklyPlanRepository struct {
	collection *mongo.Collection
	workouts   *mongo.Collection
}

// NewMongoWeeklyPlanRepository creates a new WeeklyPlan repository. It also
// holds the workouts collection so plan deletion can cascade.
func NewMongoWeeklyPlanRepository(db *mongo.Database) repository.WeeklyPlanRepository {
	return &mongoWeeklyPlanRepository{
		collection: db.Collection(weeklyPlanCollectionName),
		workouts:   db.Collection(planWorkoutCollectionName),
	}
}

func (r *mongoWeeklyPlanRepository) Create(ctx context.Context, plan *domain.WeeklyPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires userId")
	}
	if plan.StartDate.IsZero() || plan.EndDate.IsZero() {
		return primitive.NilObjectID, errors.New("plan requires startDate and endDate")
	}
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

func (r *mongoWeeklyPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyPlan, error) {
	var plan domain.WeeklyPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindByDate returns the first plan containing the given date. Reads use
// first-match semantics; write paths check for an existing covering plan
// before inserting, which keeps the one-plan-per-week invariant in practice.
func (r *mongoWeeklyPlanRepository) FindByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WeeklyPlan, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	filter := bson.M{
		"userId":    userID,
		"startDate": bson.M{"$lte": day},
		"endDate":   bson.M{"$gte": day},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "startDate", Value: -1}})

	var plan domain.WeeklyPlan
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mongoWeeklyPlanRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WeeklyPlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.WeeklyPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Delete removes the plan and all of its workouts. The workouts go first so
// a failure never leaves orphaned children behind a deleted parent.
func (r *mongoWeeklyPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.workouts.DeleteMany(ctx, bson.M{"planId": id}); err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWeeklyPlanIndexes creates necessary indexes. Call during startup.
func EnsureWeeklyPlanIndexes(ctx context.Context, db *mongo.Database) {
	_, _ = db.Collection(weeklyPlanCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startDate", Value: -1}},
		Options: options.Index(),
	})
}
