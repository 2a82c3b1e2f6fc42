package repository

import (
	"context"
	"errors"

	"github.com/Effortree/backend/model"
	"github.com/Effortree/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrQuestNotFound is returned when no quest matches a user/quest pair.
var ErrQuestNotFound = errors.New("quest not found")

type QuestsRepo struct {
	MongoCollection *mongo.Collection
}

func GetQuestsRepo(db *mongo.Database) *QuestsRepo {
	return &QuestsRepo{MongoCollection: db.Collection("quests")}
}

// FindQuestsByUser retrieves every quest owned by userID. This is the
// read path the analytics engine runs on.
func (r *QuestsRepo) FindQuestsByUser(ctx context.Context, userID int) ([]*model.Quest, error) {
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quests []*model.Quest
	if err = cursor.All(ctx, &quests); err != nil {
		return nil, err
	}
	return quests, nil
}

// CreateQuest inserts a new quest document.
func (r *QuestsRepo) CreateQuest(ctx context.Context, quest *model.Quest) error {
	_, err := r.MongoCollection.InsertOne(ctx, quest)
	return err
}

// UpdateQuestFields patches the given fields on a user's quest.
func (r *QuestsRepo) UpdateQuestFields(ctx context.Context, userID, questID int, fields bson.M) error {
	fields["updated_at"] = utils.FormatDate(utils.Today())

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"userId": userID, "questId": questID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrQuestNotFound
	}
	return nil
}

// UpdateQuestStatus moves a quest to another kanban state and bumps
// updated_at, which the done-classification reads.
func (r *QuestsRepo) UpdateQuestStatus(ctx context.Context, userID, questID int, status model.QuestStatus) error {
	return r.UpdateQuestFields(ctx, userID, questID, bson.M{"status": status})
}

// AppendSpentLog appends one time-log entry to a quest's spent_logs.
// Entries are append-only; corrections are new entries with negative
// minutes.
func (r *QuestsRepo) AppendSpentLog(ctx context.Context, userID, questID int, entry model.TimeLogEntry) error {
	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"userId": userID, "questId": questID},
		bson.M{"$push": bson.M{"spent_logs": entry}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrQuestNotFound
	}
	return nil
}

// DeleteQuest removes a user's quest and returns the ids that remain.
func (r *QuestsRepo) DeleteQuest(ctx context.Context, userID, questID int) ([]int, error) {
	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"userId": userID, "questId": questID})
	if err != nil {
		return nil, err
	}
	if result.DeletedCount == 0 {
		return nil, ErrQuestNotFound
	}

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	remaining := []int{}
	for cursor.Next(ctx) {
		var q model.Quest
		if err := cursor.Decode(&q); err != nil {
			return nil, err
		}
		remaining = append(remaining, q.QuestID)
	}
	return remaining, cursor.Err()
}

// DeleteQuestsByUser removes every quest a user owns. Used by the user
// delete cascade.
func (r *QuestsRepo) DeleteQuestsByUser(ctx context.Context, userID int) error {
	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
