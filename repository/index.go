package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes every read path depends on. Safe to
// run on every startup; Mongo ignores already-existing indexes.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	questIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "questId", Value: 1},
			},
			Options: options.Index().
				SetName("user_quest").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("quests_by_user"),
		},
	}
	if _, err := db.Collection("quests").Indexes().CreateMany(ctx, questIndexes); err != nil {
		return fmt.Errorf("creating quest indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("user_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("user_email").SetUnique(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("creating user indexes: %w", err)
	}

	if _, err := db.Collection("gifts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "childUserId", Value: 1}},
		Options: options.Index().SetName("gift_by_child").SetUnique(true),
	}); err != nil {
		return fmt.Errorf("creating gift index: %w", err)
	}

	if _, err := db.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("messages_by_user"),
	}); err != nil {
		return fmt.Errorf("creating message index: %w", err)
	}

	return nil
}
