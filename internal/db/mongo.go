package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoService owns the MongoDB client for the lifetime of the process.
type MongoService struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoService(ctx context.Context, uri, database string) (*MongoService, error) {
	if uri == "" || database == "" {
		return nil, fmt.Errorf("missing mongo uri or database name")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not ping mongo: %w", err)
	}

	return &MongoService{Client: client, Database: client.Database(database)}, nil
}

func (s *MongoService) Health(ctx context.Context) map[string]string {
	if err := s.Client.Ping(ctx, readpref.Primary()); err != nil {
		return map[string]string{
			"status": "down",
			"error":  fmt.Sprintf("mongo down: %v", err),
		}
	}
	return map[string]string{
		"status":  "up",
		"message": "It's healthy",
	}
}

func (s *MongoService) Close() error {
	log.Info().Msg("Closing mongo connection")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Client.Disconnect(ctx)
}
