package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"propertyhub-api/pkg/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// InitDB establishes the document store connection and verifies it with a ping
func InitDB(ctx context.Context, cfg *config.Config) error {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	var err error
	client, err = mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db = client.Database(cfg.Mongo.Database)
	return nil
}

// Disconnect closes the client connection
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// GetDB returns the database instance
func GetDB() *mongo.Database {
	return db
}

// GetCollection returns a handle to the named collection
func GetCollection(name string) *mongo.Collection {
	return db.Collection(name)
}
