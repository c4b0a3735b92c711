package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// ProjectSubmission is one project proposal from a student. StudentName and
// ReviewedByName are denormalized so dashboards and similarity warnings do not
// need a user lookup per row.
type ProjectSubmission struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StudentID      primitive.ObjectID `bson:"studentId" json:"studentId"`
	StudentName    string             `bson:"studentName" json:"studentName"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	TechnologyUsed string             `bson:"technologyUsed" json:"technologyUsed"`
	TeamMembers    string             `bson:"teamMembers,omitempty" json:"teamMembers,omitempty"`

	Status   string `bson:"status" json:"status"`
	Feedback string `bson:"feedback,omitempty" json:"feedback,omitempty"`

	ReviewedBy     *primitive.ObjectID `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedByName string              `bson:"reviewedByName,omitempty" json:"reviewedByName,omitempty"`
	ReviewedAt     *time.Time          `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
