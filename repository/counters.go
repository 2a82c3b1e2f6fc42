package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CountersRepo hands out monotonically increasing integer ids, one
// counter document per sequence name. The increment is a single
// FindOneAndUpdate so concurrent callers never see the same value.
type CountersRepo struct {
	MongoCollection *mongo.Collection
}

func GetCountersRepo(db *mongo.Database) *CountersRepo {
	return &CountersRepo{MongoCollection: db.Collection("counters")}
}

// Next returns the next value of the named sequence, creating the
// counter at 1 on first use.
func (r *CountersRepo) Next(ctx context.Context, name string) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
