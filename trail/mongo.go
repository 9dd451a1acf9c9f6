package trail

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"technician-tracker/models"
)

const collectionName = "trail_points"

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

// EnsureIndexes creates the index trail queries filter and sort on.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "service_id", Value: 1},
			{Key: "session_started_at", Value: 1},
			{Key: "session_id", Value: 1},
			{Key: "tick", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create trail index: %w", err)
	}
	return nil
}

func (r *MongoRepository) Append(ctx context.Context, p *models.TrailPoint) error {
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

func (r *MongoRepository) FindByService(ctx context.Context, serviceID string) ([]*models.TrailPoint, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "session_started_at", Value: 1},
		{Key: "session_id", Value: 1},
		{Key: "tick", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"service_id": serviceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var points []*models.TrailPoint
	if err = cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}
