package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// NewMongoClient connects to MongoDB and verifies the connection with a ping.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo URI cannot be empty")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(10 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Println("Successfully connected to MongoDB.")
	return client, nil
}

// CloseMongoClient disconnects the client.
func CloseMongoClient(ctx context.Context, client *mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting MongoDB client: %v\n", err)
		return
	}
	log.Println("MongoDB client disconnected.")
}
