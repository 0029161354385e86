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

const equipmentCollectionName = "gym_equipment"

// mongoEquipmentRepository implements repository.EquipmentRepository
type mongoEquipmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEquipmentRepository creates a new Equipment repository.
func NewMongoEquipmentRepository(db *mongo.Database) repository.EquipmentRepository {
	return &mongoEquipmentRepository{
		collection: db.Collection(equipmentCollectionName),
	}
}

func (r *mongoEquipmentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *mongoEquipmentRepository) CreateMany(ctx context.Context, items []domain.Equipment) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	for i := range items {
		items[i].ID = primitive.NewObjectID()
		docs = append(docs, items[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *mongoEquipmentRepository) GetAll(ctx context.Context) ([]domain.Equipment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.Equipment
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoEquipmentRepository) GetByName(ctx context.Context, name string) (*domain.Equipment, error) {
	var item domain.Equipment
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Search matches the keyword case-insensitively against name or description.
func (r *mongoEquipmentRepository) Search(ctx context.Context, keyword string) ([]domain.Equipment, error) {
	pattern := primitive.Regex{Pattern: regexQuoteMeta(keyword), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.Equipment
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoEquipmentRepository) GetByMuscle(ctx context.Context, muscle string) ([]domain.Equipment, error) {
	pattern := primitive.Regex{Pattern: regexQuoteMeta(muscle), Options: "i"}
	cursor, err := r.collection.Find(ctx, bson.M{"primaryMuscles": pattern})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.Equipment
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// regexQuoteMeta escapes regex metacharacters so user input is matched
// literally inside a $regex filter.
func regexQuoteMeta(s string) string {
	special := `\.+*?()|[]{}^$`
	out := make([]rune, 0, len(s))
	for _, r := range s {
		for _, sp := range special {
			if r == sp {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, r)
	}
	return string(out)
}

// EnsureEquipmentIndexes creates necessary indexes. Call during startup.
func EnsureEquipmentIndexes(ctx context.Context, db *mongo.Database) {
	_, _ = db.Collection(equipmentCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}
