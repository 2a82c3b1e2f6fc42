package repository

import (
	"context"

	"github.com/Effortree/backend/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatsRepo struct {
	MongoCollection *mongo.Collection
}

func GetChatsRepo(db *mongo.Database) *ChatsRepo {
	return &ChatsRepo{MongoCollection: db.Collection("messages")}
}

// AppendMessage stores one side of a tutor exchange.
func (r *ChatsRepo) AppendMessage(ctx context.Context, msg *model.ChatMessage) error {
	_, err := r.MongoCollection.InsertOne(ctx, msg)
	return err
}

// RecentMessages returns up to limit messages for a user, oldest
// first, so they can be replayed as conversation history.
func (r *ChatsRepo) RecentMessages(ctx context.Context, userID int, limit int) ([]*model.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.ChatMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	// Cursor yields newest first; reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
