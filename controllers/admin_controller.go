package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"approvehub/db"
	"approvehub/models"
	"approvehub/services"
	"approvehub/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminDashboard returns pending and verified users, soft-deleted accounts and
// approved projects grouped by the teacher who approved them.
func AdminDashboard(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pendingTeachers, err := db.FindUsers(dbCtx, bson.M{"role": models.RoleTeacher, "isVerified": false, "isDeleted": false})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	pendingStudents, err := db.FindUsers(dbCtx, bson.M{"role": models.RoleStudent, "isVerified": false, "isDeleted": false})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	verifiedTeachers, err := db.FindUsers(dbCtx, bson.M{"role": models.RoleTeacher, "isVerified": true, "isDeleted": false})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	verifiedStudents, err := db.FindUsers(dbCtx, bson.M{"role": models.RoleStudent, "isVerified": true, "isDeleted": false})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	deletedUsers, err := db.FindUsers(dbCtx, bson.M{"isDeleted": true})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	approved, err := db.FindSubmissions(dbCtx, bson.M{"status": models.StatusApproved})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}
	projectsByTeacher := make(map[string][]models.ProjectSubmission)
	for _, p := range approved {
		key := p.ReviewedByName
		if key == "" {
			key = "N/A"
		}
		projectsByTeacher[key] = append(projectsByTeacher[key], p)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"pendingTeachers":   pendingTeachers,
		"pendingStudents":   pendingStudents,
		"verifiedTeachers":  verifiedTeachers,
		"verifiedStudents":  verifiedStudents,
		"deletedUsers":      deletedUsers,
		"projectsByTeacher": projectsByTeacher,
	})
}

// VerifyUser approves a pending registration.
func VerifyUser(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.FindUserByID(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	_, err = db.GetCollection("users").UpdateOne(dbCtx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"isVerified": true, "verifiedAt": now}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s has been approved successfully.", user.FullName)})
}

// RejectUser removes a pending registration outright.
func RejectUser(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.FindUserByID(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if _, err := db.GetCollection("users").DeleteOne(dbCtx, bson.M{"_id": userID}); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s has been rejected and removed.", user.FullName)})
}

// AssignTeacher assigns, reassigns or removes a student's guide. An empty
// teacherId removes the current guide.
func AssignTeacher(ctx *gin.Context) {
	studentID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student id"})
		return
	}

	var request structs.AssignTeacherRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	student, err := db.FindUserByID(dbCtx, studentID)
	if err != nil || student.Role != models.RoleStudent || student.IsDeleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if request.TeacherID == "" {
		_, err = db.GetCollection("users").UpdateOne(dbCtx, bson.M{"_id": studentID},
			bson.M{"$unset": bson.M{"assignedTeacher": ""}})
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove guide"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Guide removed from %s", student.FullName)})
		return
	}

	teacherID, err := primitive.ObjectIDFromHex(request.TeacherID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher id"})
		return
	}
	teacher, err := db.FindUserByID(dbCtx, teacherID)
	if err != nil || teacher.Role != models.RoleTeacher || teacher.IsDeleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}

	_, err = db.GetCollection("users").UpdateOne(dbCtx, bson.M{"_id": studentID},
		bson.M{"$set": bson.M{"assignedTeacher": teacherID}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign guide"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Guide assigned: %s -> %s", teacher.FullName, student.FullName)})
}

// ManageUsers lists verified students and teachers.
func ManageUsers(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	students, err := db.FindUsers(dbCtx, bson.M{"role": models.RoleStudent, "isVerified": true, "isDeleted": false})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	teachers, err := db.FindUsers(dbCtx, bson.M{"role": models.RoleTeacher, "isVerified": true, "isDeleted": false})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"approvedStudents": students, "approvedTeachers": teachers})
}

// SoftDeleteUser deactivates an account. Deleting a teacher unassigns all of
// their students first.
func SoftDeleteUser(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.FindUserByID(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.IsDeleted {
		ctx.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("%s is already deleted.", user.FullName)})
		return
	}

	if user.Role == models.RoleTeacher {
		_, err = db.GetCollection("users").UpdateMany(dbCtx,
			bson.M{"assignedTeacher": userID},
			bson.M{"$unset": bson.M{"assignedTeacher": ""}})
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign students"})
			return
		}
	}

	now := time.Now()
	_, err = db.GetCollection("users").UpdateOne(dbCtx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": now}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s has been soft-deleted successfully.", user.FullName)})
}

// RestoreUser reactivates a soft-deleted account.
func RestoreUser(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.FindUserByID(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	_, err = db.GetCollection("users").UpdateOne(dbCtx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"isDeleted": false}, "$unset": bson.M{"deletedAt": ""}})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore user"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s has been restored successfully.", user.FullName)})
}

// SetDeadline records new student and teacher deadlines; the latest record is
// the one in effect.
func SetDeadline(ctx *gin.Context) {
	var request structs.SetDeadlineRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	studentDeadline, err := time.Parse("2006-01-02", request.Deadline)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline date, expected YYYY-MM-DD"})
		return
	}

	deadline := models.SubmissionDeadline{
		Deadline:  studentDeadline,
		CreatedAt: time.Now(),
	}
	if request.TeacherDeadline != "" {
		teacherDeadline, err := time.Parse("2006-01-02", request.TeacherDeadline)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher deadline date, expected YYYY-MM-DD"})
			return
		}
		deadline.TeacherDeadline = &teacherDeadline
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.InsertDeadline(dbCtx, &deadline); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save deadline"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Student and teacher deadlines updated successfully!",
		"deadline": deadline,
		"status":   services.SubmissionDeadlineStatus(deadline.Deadline, time.Now()),
	})
}
