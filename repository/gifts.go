package repository

import (
	"context"
	"errors"

	"github.com/Effortree/backend/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrGiftNotFound = errors.New("gift not found")

type GiftsRepo struct {
	MongoCollection *mongo.Collection
}

func GetGiftsRepo(db *mongo.Database) *GiftsRepo {
	return &GiftsRepo{MongoCollection: db.Collection("gifts")}
}

// UpsertGift saves or replaces the single gift for a child.
func (r *GiftsRepo) UpsertGift(ctx context.Context, gift *model.Gift) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"childUserId": gift.ChildUserID},
		bson.M{"$set": bson.M{
			"message":    gift.Message,
			"imageUrl":   gift.ImageURL,
			"updated_at": gift.UpdatedAt,
		}},
		opts,
	)
	return err
}

// FindGift returns the gift stored for a child, or ErrGiftNotFound.
func (r *GiftsRepo) FindGift(ctx context.Context, childUserID int) (*model.Gift, error) {
	var gift model.Gift
	err := r.MongoCollection.FindOne(ctx, bson.M{"childUserId": childUserID}).Decode(&gift)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrGiftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

// DeleteGift removes a child's gift.
func (r *GiftsRepo) DeleteGift(ctx context.Context, childUserID int) error {
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"childUserId": childUserID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrGiftNotFound
	}
	return nil
}
