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

const (
	conversationCollectionName = "conversations"
	messageCollectionName      = "messages"
)

// mongoConversationRepository implements repository.ConversationRepository
type mongoConversationRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoConversationRepository creates a new Conversation repository.
func NewMongoConversationRepository(db *mongo.Database) repository.ConversationRepository {
	return &mongoConversationRepository{
		conversations: db.Collection(conversationCollectionName),
		messages:      db.Collection(messageCollectionName),
	}
}

func (r *mongoConversationRepository) Create(ctx context.Context, conv *domain.Conversation) (primitive.ObjectID, error) {
	if conv.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("conversation requires userId")
	}
	conv.ID = primitive.NewObjectID()
	conv.CreatedAt = time.Now().UTC()

	result, err := r.conversations.InsertOne(ctx, conv)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted conversation ID")
	}
	return insertedID, nil
}

func (r *mongoConversationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"_id": id}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *mongoConversationRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.conversations.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []domain.Conversation
	if err = cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *mongoConversationRepository) AddMessage(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	if msg.ConversationID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("message requires conversationId")
	}
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()

	result, err := r.messages.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted message ID")
	}
	return insertedID, nil
}

func (r *mongoConversationRepository) GetMessages(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"conversationId": conversationID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []domain.Message
	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// EnsureConversationIndexes creates necessary indexes. Call during startup.
func EnsureConversationIndexes(ctx context.Context, db *mongo.Database) {
	_, _ = db.Collection(conversationCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index(),
	})
	_, _ = db.Collection(messageCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index(),
	})
}
