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

const calendarCollectionName = "calendar_events"

// mongoCalendarEventRepository implements repository.CalendarEventRepository
type mongoCalendarEventRepository struct {
	collection *mongo.Collection
}

// NewMongoCalendarEventRepository creates a new CalendarEvent repository.
func NewMongoCalendarEventRepository(db *mongo.Database) repository.CalendarEventRepository {
	return &mongoCalendarEventRepository{
		collection: db.Collection(calendarCollectionName),
	}
}

func (r *mongoCalendarEventRepository) Create(ctx context.Context, event *domain.CalendarEvent) (primitive.ObjectID, error) {
	if event.UserID == primitive.NilObjectID || event.Title == "" {
		return primitive.NilObjectID, errors.New("event requires userId and title")
	}
	event.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted event ID")
	}
	return insertedID, nil
}

func (r *mongoCalendarEventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CalendarEvent, error) {
	var event domain.CalendarEvent
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *mongoCalendarEventRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.CalendarEvent, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *mongoCalendarEventRepository) GetByUserAndRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.CalendarEvent, error) {
	filter := bson.M{
		"userId":    userID,
		"startTime": bson.M{"$gte": start, "$lte": end},
	}
	return r.find(ctx, filter)
}

func (r *mongoCalendarEventRepository) find(ctx context.Context, filter bson.M) ([]domain.CalendarEvent, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []domain.CalendarEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *mongoCalendarEventRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	if event.ID == primitive.NilObjectID {
		return errors.New("event ID is required for update")
	}

	update := bson.M{"$set": bson.M{
		"title":       event.Title,
		"description": event.Description,
		"location":    event.Location,
		"startTime":   event.StartTime,
		"endTime":     event.EndTime,
		"updatedAt":   time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": event.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCalendarEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCalendarIndexes creates necessary indexes. Call during startup.
func EnsureCalendarIndexes(ctx context.Context, db *mongo.Database) {
	_, _ = db.Collection(calendarCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startTime", Value: 1}},
		Options: options.Index(),
	})
}
