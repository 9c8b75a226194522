package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	questionsCollection   = "questions"
	submissionsCollection = "submissions"
)

// Store owns the MongoDB client for the lifetime of the process
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Open connects to MongoDB and verifies the connection
func Open(ctx context.Context, uri, database string, logger *zap.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", database))
	return &Store{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}, nil
}

// Database returns the configured database handle
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping checks that the server is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	s.logger.Info("Disconnected from MongoDB")
	return nil
}
