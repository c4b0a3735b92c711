package db

import (
	"context"

	"approvehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindUserByEmail looks a user up by email, soft-deleted accounts included.
func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := MongoDatabase.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID fetches a single user by object id.
func FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := MongoDatabase.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUsers returns all users matching the filter in _id order.
func FindUsers(ctx context.Context, filter bson.M) ([]models.User, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := MongoDatabase.Collection("users").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AssignedStudents returns the verified, non-deleted students supervised by the teacher.
func AssignedStudents(ctx context.Context, teacherID primitive.ObjectID) ([]models.User, error) {
	return FindUsers(ctx, bson.M{
		"role":            models.RoleStudent,
		"assignedTeacher": teacherID,
		"isVerified":      true,
		"isDeleted":       false,
	})
}
