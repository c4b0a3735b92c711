package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionDeadline holds the student submission deadline and the teacher
// review deadline. The most recently created record is the one in effect.
type SubmissionDeadline struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Deadline        time.Time          `bson:"deadline" json:"deadline"`
	TeacherDeadline *time.Time         `bson:"teacherDeadline,omitempty" json:"teacherDeadline,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
