package repository

import (
	"context"
	"errors"

	"github.com/Effortree/backend/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
)

type UsersRepo struct {
	MongoCollection *mongo.Collection
}

func GetUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{MongoCollection: db.Collection("users")}
}

// CreateUser inserts a new user, rejecting duplicate emails.
func (r *UsersRepo) CreateUser(ctx context.Context, user *model.User) error {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	_, err = r.MongoCollection.InsertOne(ctx, user)
	return err
}

// FindUser looks up a user by id. Returns ErrUserNotFound when absent.
func (r *UsersRepo) FindUser(ctx context.Context, userID int) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserFields patches profile fields (nickname, role) on a user.
func (r *UsersRepo) UpdateUserFields(ctx context.Context, userID int, fields bson.M) (*model.User, error) {
	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindUser(ctx, userID)
}

// DeleteUser removes a user document.
func (r *UsersRepo) DeleteUser(ctx context.Context, userID int) error {
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
