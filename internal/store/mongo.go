// Package store manages the MongoDB connection shared by all repositories.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes and verifies the MongoDB connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// Store hands out collection handles for a single database.
type Store struct {
	client *mongo.Client
	dbName string
}

// New wraps a connected client.
func New(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, dbName: dbName}
}

// Collection returns a handle for the named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
