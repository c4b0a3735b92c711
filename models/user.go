package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User covers all three roles. Student and teacher extras are optional and
// depend on Role. Accounts start unverified; an admin verifies them before the
// first login succeeds.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName string             `bson:"fullName" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Role     string             `bson:"role" json:"role"`
	Password string             `bson:"password" json:"-"`

	// Student-specific
	StudentID string `bson:"studentId,omitempty" json:"studentId,omitempty"`
	Course    string `bson:"course,omitempty" json:"course,omitempty"`
	Interest  string `bson:"interest,omitempty" json:"interest,omitempty"`

	// Teacher-specific
	Dept        string `bson:"dept,omitempty" json:"dept,omitempty"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`

	IsVerified bool       `bson:"isVerified" json:"isVerified"`
	VerifiedAt *time.Time `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`

	// Guide assigned to a student by the admin.
	AssignedTeacher *primitive.ObjectID `bson:"assignedTeacher,omitempty" json:"assignedTeacher,omitempty"`

	// Soft delete: deleted accounts keep their records but cannot log in.
	IsDeleted bool       `bson:"isDeleted" json:"isDeleted"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
