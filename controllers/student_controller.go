package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"approvehub/db"
	"approvehub/middlewares"
	"approvehub/models"
	"approvehub/services"
	"approvehub/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// guideStatus resolves the student's assigned teacher and whether that teacher
// has since been soft-deleted.
func guideStatus(ctx context.Context, student *models.User) (name string, removed bool) {
	if student.AssignedTeacher == nil {
		return "", false
	}
	teacher, err := db.FindUserByID(ctx, *student.AssignedTeacher)
	if err != nil {
		return "", false
	}
	return teacher.FullName, teacher.IsDeleted
}

// StudentDashboard returns the student's submissions, deadline countdown and
// guide status.
func StudentDashboard(ctx *gin.Context) {
	student := middlewares.CurrentUser(ctx)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	submissions, err := db.FindSubmissions(dbCtx, bson.M{"studentId": student.ID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	var deadlineInfo *services.DeadlineStatus
	deadline, err := db.LatestDeadline(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deadline"})
		return
	}
	if deadline != nil {
		status := services.SubmissionDeadlineStatus(deadline.Deadline, time.Now())
		deadlineInfo = &status
	}

	guideName, guideRemoved := guideStatus(dbCtx, student)

	ctx.JSON(http.StatusOK, gin.H{
		"student":      student,
		"submissions":  submissions,
		"deadlineInfo": deadlineInfo,
		"guideName":    guideName,
		"guideRemoved": guideRemoved,
	})
}

// SubmitProject runs the full gauntlet before saving a new submission:
// guide present, deadline open, no project already in flight, and the fused
// semantic+lexical duplicate check against approved projects.
func SubmitProject(ctx *gin.Context) {
	student := middlewares.CurrentUser(ctx)

	var request structs.SubmitProjectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	guideName, guideRemoved := guideStatus(dbCtx, student)
	if guideRemoved {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("Your assigned guide %s has been removed. You cannot submit.", guideName),
		})
		return
	}

	deadline, err := db.LatestDeadline(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deadline"})
		return
	}
	if deadline != nil && services.SubmissionDeadlineStatus(deadline.Deadline, time.Now()).Passed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "The project submission deadline has passed"})
		return
	}

	existing, err := db.ActiveSubmissionForStudent(dbCtx, student.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if existing != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "You already have a project under review"})
		return
	}

	// Fail closed: if the similarity pipeline errors out, the submission is
	// refused rather than admitted unchecked.
	verdict, err := services.GetDuplicateService().CheckNewSubmission(
		dbCtx, request.Title, request.Description, request.TechnologyUsed)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Duplicate check unavailable", "message": err.Error()})
		return
	}
	if verdict.IsDuplicate {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "This project is too similar to an already approved one",
			"verdict": verdict,
		})
		return
	}

	now := time.Now()
	submission := models.ProjectSubmission{
		StudentID:      student.ID,
		StudentName:    student.FullName,
		Title:          request.Title,
		Description:    request.Description,
		TechnologyUsed: request.TechnologyUsed,
		TeamMembers:    request.TeamMembers,
		Status:         models.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.InsertSubmission(dbCtx, &submission); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Project submitted successfully! Awaiting teacher approval.",
		"submission": submission,
		"verdict":    verdict,
	})
}

// SubmitProjectIdea is the lightweight entry point guarded only by the
// token-sort lexical gate; no embeddings involved.
func SubmitProjectIdea(ctx *gin.Context) {
	student := middlewares.CurrentUser(ctx)

	var request structs.SubmitIdeaRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deadline, err := db.LatestDeadline(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deadline"})
		return
	}
	if deadline != nil && services.SubmissionDeadlineStatus(deadline.Deadline, time.Now()).Passed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "The project submission deadline has passed"})
		return
	}

	existing, err := db.ActiveSubmissionForStudent(dbCtx, student.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if existing != nil {
		message := "You already have a project under review. Please wait for the teacher's decision."
		if existing.Status == models.StatusApproved {
			message = "Your project has already been approved."
		}
		ctx.JSON(http.StatusConflict, gin.H{"error": message})
		return
	}

	verdict, err := services.GetDuplicateService().CheckIdeaTitles(dbCtx, request.Title, request.Description)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Duplicate check unavailable", "message": err.Error()})
		return
	}
	if verdict.IsDuplicate {
		ctx.JSON(http.StatusConflict, gin.H{"error": verdict.Detail, "verdict": verdict})
		return
	}

	now := time.Now()
	submission := models.ProjectSubmission{
		StudentID:   student.ID,
		StudentName: student.FullName,
		Title:       request.Title,
		Description: request.Description,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.InsertSubmission(dbCtx, &submission); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save idea"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Project idea submitted successfully! Awaiting teacher review.",
		"submission": submission,
	})
}

// EditProject updates a pending or rejected submission owned by the caller.
func EditProject(ctx *gin.Context) {
	student := middlewares.CurrentUser(ctx)

	projectID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	var request structs.SubmitProjectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	submission, err := db.FindSubmissionByID(dbCtx, projectID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if submission.StudentID != student.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access"})
		return
	}
	if submission.Status == models.StatusApproved {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot edit an approved project"})
		return
	}

	_, err = db.GetCollection("submissions").UpdateOne(dbCtx, bson.M{"_id": projectID}, bson.M{"$set": bson.M{
		"title":          request.Title,
		"description":    request.Description,
		"technologyUsed": request.TechnologyUsed,
		"teamMembers":    request.TeamMembers,
		"updatedAt":      time.Now(),
	}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project updated successfully"})
}

// DeleteProject removes a non-approved submission owned by the caller.
func DeleteProject(ctx *gin.Context) {
	student := middlewares.CurrentUser(ctx)

	projectID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	submission, err := db.FindSubmissionByID(dbCtx, projectID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if submission.StudentID != student.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access"})
		return
	}
	if submission.Status == models.StatusApproved {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete an approved project"})
		return
	}

	if _, err := db.GetCollection("submissions").DeleteOne(dbCtx, bson.M{"_id": projectID}); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// ProjectStatus reports the status of the student's most recent submission,
// meant for dashboard polling.
func ProjectStatus(ctx *gin.Context) {
	student := middlewares.CurrentUser(ctx)

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	submissions, err := db.FindSubmissions(dbCtx, bson.M{"studentId": student.ID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if len(submissions) == 0 {
		ctx.JSON(http.StatusOK, gin.H{"status": "None"})
		return
	}

	latest := submissions[0]
	for _, s := range submissions[1:] {
		if s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": latest.Status})
}
