package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/LangBridge/internal/config"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens a MongoDB client, verifies it with a ping and returns the configured database.
func ConnectDB(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("langbridge").
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logrus.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
	return client.Database(cfg.MongoDB), nil
}

// EnsureIndexes creates the indexes the repositories rely on. Existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	collections := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
			{
				Keys:    bson.D{{Key: "is_onboarded", Value: 1}, {Key: "learning_language", Value: 1}},
				Options: options.Index().SetName("ix_onboarded_learning"),
			},
			{
				Keys:    bson.D{{Key: "is_onboarded", Value: 1}, {Key: "native_language", Value: 1}},
				Options: options.Index().SetName("ix_onboarded_native"),
			},
		},
		"friend_requests": {
			{
				// one request per unordered pair of users
				Keys:    bson.D{{Key: "pair_key", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_pair"),
			},
			{
				Keys:    bson.D{{Key: "recipient", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("ix_recipient_status"),
			},
			{
				Keys:    bson.D{{Key: "sender", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("ix_sender_status"),
			},
		},
		"notifications": {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("ix_user_created"),
			},
		},
	}

	for name, indexes := range collections {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}

	logrus.Info("MongoDB indexes ensured")
	return nil
}

// Pinger checks MongoDB reachability for health probes.
type Pinger struct {
	DB *mongo.Database
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.DB.Client().Ping(ctx, nil)
}
