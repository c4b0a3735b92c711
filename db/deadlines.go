package db

import (
	"context"

	"approvehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LatestDeadline returns the deadline record currently in effect, or nil when
// none has been set yet.
func LatestDeadline(ctx context.Context) (*models.SubmissionDeadline, error) {
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})

	var deadline models.SubmissionDeadline
	err := MongoDatabase.Collection("deadlines").FindOne(ctx, bson.M{}, opts).Decode(&deadline)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deadline, nil
}

// InsertDeadline records a new deadline; it supersedes any earlier record.
func InsertDeadline(ctx context.Context, deadline *models.SubmissionDeadline) error {
	_, err := MongoDatabase.Collection("deadlines").InsertOne(ctx, deadline)
	return err
}
