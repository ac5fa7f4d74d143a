package database

import (
	"context"
	"fmt"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// NewMongoDB connects to the cloud MongoDB deployment. mongo.Connect does
// not wait for the server, so this succeeds while offline.
func NewMongoDB(cfg *config.MongoConfig, log *zap.Logger) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URL).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	log.Info("MongoDB remote configured", zap.String("database", cfg.Database))
	return client.Database(cfg.Database), nil
}

// CloseMongoDB disconnects the client behind db
func CloseMongoDB(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
