package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"technician-tracker/config"
)

// ConnectMongo connects and pings MongoDB, returning the configured database.
func ConnectMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("MongoDB URI not provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err = pingOrDisconnect(ctx, client); err != nil {
		return nil, err
	}

	log.Printf("Connected to MongoDB database: %s", cfg.Database)
	return client.Database(cfg.Database), nil
}

// pingOrDisconnect releases client when the server cannot be reached.
func pingOrDisconnect(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return nil
}
