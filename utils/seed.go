package utils

import (
	"context"
	"log"
	"time"

	"approvehub/db"
	"approvehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PopulateTestUsers seeds a demo admin, teacher and students plus one approved
// submission so the duplicate checks have something to compare against. Skips
// seeding when any user already exists.
func PopulateTestUsers() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection("users")
	count, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := HashPassword("password123")
	if err != nil {
		log.Printf("Seed password hashing failed: %v", err)
		return
	}

	now := time.Now()
	teacherID := primitive.NewObjectID()
	studentID := primitive.NewObjectID()

	seedUsers := []interface{}{
		models.User{
			ID:         primitive.NewObjectID(),
			FullName:   "Admin User",
			Email:      "admin@example.com",
			Role:       models.RoleAdmin,
			Password:   hash,
			IsVerified: true,
			CreatedAt:  now,
		},
		models.User{
			ID:          teacherID,
			FullName:    "Priya Sharma",
			Email:       "priya@example.com",
			Role:        models.RoleTeacher,
			Password:    hash,
			Dept:        "Computer Science",
			Designation: "Assistant Professor",
			IsVerified:  true,
			CreatedAt:   now,
		},
		models.User{
			ID:              studentID,
			FullName:        "Rahul Verma",
			Email:           "rahul@example.com",
			Role:            models.RoleStudent,
			Password:        hash,
			StudentID:       "CS-2021-042",
			Course:          "B.Tech CSE",
			IsVerified:      true,
			AssignedTeacher: &teacherID,
			CreatedAt:       now,
		},
	}
	if _, err := users.InsertMany(ctx, seedUsers); err != nil {
		log.Printf("Seeding users failed: %v", err)
		return
	}

	reviewed := now
	submission := models.ProjectSubmission{
		StudentID:      studentID,
		StudentName:    "Rahul Verma",
		Title:          "Face Recognition System",
		Description:    "AI based attendance system using face recognition",
		TechnologyUsed: "Python",
		Status:         models.StatusApproved,
		ReviewedBy:     &teacherID,
		ReviewedByName: "Priya Sharma",
		ReviewedAt:     &reviewed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.InsertSubmission(ctx, &submission); err != nil {
		log.Printf("Seeding submission failed: %v", err)
		return
	}

	log.Println("Seeded demo users and one approved submission")
}
