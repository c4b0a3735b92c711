package db

import (
	"context"

	"approvehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindSubmissions returns submissions matching the filter, sorted by _id
// ascending so duplicate checks iterate candidates in a stable order.
func FindSubmissions(ctx context.Context, filter bson.M) ([]models.ProjectSubmission, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := MongoDatabase.Collection("submissions").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []models.ProjectSubmission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// FindSubmissionByID fetches a single submission.
func FindSubmissionByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectSubmission, error) {
	var submission models.ProjectSubmission
	err := MongoDatabase.Collection("submissions").FindOne(ctx, bson.M{"_id": id}).Decode(&submission)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ActiveSubmissionForStudent returns the student's Pending or Approved
// submission, if one exists. A student may only have one project in flight.
func ActiveSubmissionForStudent(ctx context.Context, studentID primitive.ObjectID) (*models.ProjectSubmission, error) {
	var submission models.ProjectSubmission
	err := MongoDatabase.Collection("submissions").FindOne(ctx, bson.M{
		"studentId": studentID,
		"status":    bson.M{"$in": []string{models.StatusPending, models.StatusApproved}},
	}).Decode(&submission)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// InsertSubmission saves a new submission.
func InsertSubmission(ctx context.Context, submission *models.ProjectSubmission) error {
	result, err := MongoDatabase.Collection("submissions").InsertOne(ctx, submission)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		submission.ID = oid
	}
	return nil
}

// SubmissionSource is the Mongo-backed candidate source consumed by the
// duplicate service.
type SubmissionSource struct{}

func NewSubmissionSource() *SubmissionSource {
	return &SubmissionSource{}
}

func (s *SubmissionSource) ApprovedSubmissions(ctx context.Context) ([]models.ProjectSubmission, error) {
	return FindSubmissions(ctx, bson.M{"status": models.StatusApproved})
}

func (s *SubmissionSource) PendingForStudents(ctx context.Context, studentIDs []primitive.ObjectID) ([]models.ProjectSubmission, error) {
	return FindSubmissions(ctx, bson.M{
		"status":    models.StatusPending,
		"studentId": bson.M{"$in": studentIDs},
	})
}

func (s *SubmissionSource) AllSubmissions(ctx context.Context) ([]models.ProjectSubmission, error) {
	return FindSubmissions(ctx, bson.M{})
}

// GuideName resolves the full name of the teacher currently assigned to the
// student. Returns "" when the student has no guide on record.
func (s *SubmissionSource) GuideName(ctx context.Context, studentID primitive.ObjectID) (string, error) {
	student, err := FindUserByID(ctx, studentID)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if student.AssignedTeacher == nil {
		return "", nil
	}
	teacher, err := FindUserByID(ctx, *student.AssignedTeacher)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return teacher.FullName, nil
}
