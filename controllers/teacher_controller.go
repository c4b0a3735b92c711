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

// TeacherDashboard returns the teacher's assigned students, their submissions,
// both deadline countdowns and the duplicate warnings from the all-pairs scan.
func TeacherDashboard(ctx *gin.Context) {
	teacher := middlewares.CurrentUser(ctx)

	dbCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	students, err := db.AssignedStudents(dbCtx, teacher.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load students"})
		return
	}

	studentIDs := make([]primitive.ObjectID, 0, len(students))
	for _, s := range students {
		studentIDs = append(studentIDs, s.ID)
	}

	var submissions []models.ProjectSubmission
	if len(studentIDs) > 0 {
		submissions, err = db.FindSubmissions(dbCtx, bson.M{"studentId": bson.M{"$in": studentIDs}})
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
			return
		}
	}

	var studentDeadlineInfo, reviewInfo *services.DeadlineStatus
	deadline, err := db.LatestDeadline(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deadline"})
		return
	}
	if deadline != nil {
		status := services.SubmissionDeadlineStatus(deadline.Deadline, time.Now())
		studentDeadlineInfo = &status
		if deadline.TeacherDeadline != nil {
			review := services.ReviewDeadlineStatus(*deadline.TeacherDeadline, time.Now())
			reviewInfo = &review
		}
	}

	warnings := map[string][]services.SimilarityWarning{}
	if len(studentIDs) > 0 {
		warnings, err = services.GetDuplicateService().ScanPendingForTeacher(dbCtx, studentIDs)
		if err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Similarity scan unavailable", "message": err.Error()})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"fullName":            teacher.FullName,
		"assignedStudents":    students,
		"submittedProjects":   submissions,
		"studentDeadlineInfo": studentDeadlineInfo,
		"reviewInfo":          reviewInfo,
		"duplicateWarnings":   warnings,
	})
}

// reviewGate rejects review actions once the teacher deadline has passed and
// verifies the teacher supervises the submission's student. Returns the
// submission on success, nil after writing the error response otherwise.
func reviewGate(ctx *gin.Context, dbCtx context.Context, teacher *models.User, projectID primitive.ObjectID) *models.ProjectSubmission {
	deadline, err := db.LatestDeadline(dbCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deadline"})
		return nil
	}
	if deadline != nil && deadline.TeacherDeadline != nil &&
		services.ReviewDeadlineStatus(*deadline.TeacherDeadline, time.Now()).Passed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Review deadline has passed. You can no longer review projects."})
		return nil
	}

	submission, err := db.FindSubmissionByID(dbCtx, projectID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil
	}

	student, err := db.FindUserByID(dbCtx, submission.StudentID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load student"})
		return nil
	}
	if student.AssignedTeacher == nil || *student.AssignedTeacher != teacher.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not assigned as the guide for this student"})
		return nil
	}
	return submission
}

// ApproveProject marks the submission Approved, records the reviewer and
// auto-rejects the student's other pending submissions.
func ApproveProject(ctx *gin.Context) {
	teacher := middlewares.CurrentUser(ctx)

	projectID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	submission := reviewGate(ctx, dbCtx, teacher, projectID)
	if submission == nil {
		return
	}

	now := time.Now()
	_, err = db.GetCollection("submissions").UpdateOne(dbCtx, bson.M{"_id": projectID}, bson.M{"$set": bson.M{
		"status":         models.StatusApproved,
		"reviewedBy":     teacher.ID,
		"reviewedByName": teacher.FullName,
		"reviewedAt":     now,
		"updatedAt":      now,
	}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve project"})
		return
	}

	// One approved project per student: reject the rest of their pending queue.
	_, err = db.GetCollection("submissions").UpdateMany(dbCtx,
		bson.M{"studentId": submission.StudentID, "status": models.StatusPending, "_id": bson.M{"$ne": projectID}},
		bson.M{"$set": bson.M{"status": models.StatusRejected, "updatedAt": now}},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject remaining submissions"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Project '%s' has been approved successfully!", submission.Title)})
}

// RejectProject marks the submission Rejected and records the reviewer.
func RejectProject(ctx *gin.Context) {
	teacher := middlewares.CurrentUser(ctx)

	projectID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	submission := reviewGate(ctx, dbCtx, teacher, projectID)
	if submission == nil {
		return
	}

	now := time.Now()
	_, err = db.GetCollection("submissions").UpdateOne(dbCtx, bson.M{"_id": projectID}, bson.M{"$set": bson.M{
		"status":         models.StatusRejected,
		"reviewedBy":     teacher.ID,
		"reviewedByName": teacher.FullName,
		"reviewedAt":     now,
		"updatedAt":      now,
	}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Project '%s' has been rejected.", submission.Title)})
}

// SubmitFeedback records review feedback together with an approve or reject
// decision.
func SubmitFeedback(ctx *gin.Context) {
	teacher := middlewares.CurrentUser(ctx)

	var request structs.FeedbackRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	projectID, err := primitive.ObjectIDFromHex(request.ProjectID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	submission := reviewGate(ctx, dbCtx, teacher, projectID)
	if submission == nil {
		return
	}

	status := models.StatusApproved
	if request.Action == "reject" {
		status = models.StatusRejected
	}

	now := time.Now()
	_, err = db.GetCollection("submissions").UpdateOne(dbCtx, bson.M{"_id": projectID}, bson.M{"$set": bson.M{
		"status":         status,
		"feedback":       request.Feedback,
		"reviewedBy":     teacher.ID,
		"reviewedByName": teacher.FullName,
		"reviewedAt":     now,
		"updatedAt":      now,
	}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Project '%s' %s.", submission.Title, status)})
}
