package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"approvehub/config"
	"approvehub/db"
	"approvehub/middlewares"
	"approvehub/models"
	"approvehub/structs"
	"approvehub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var cfg *config.Config

// InitControllers hands the loaded config to the handler layer.
func InitControllers(c *config.Config) {
	cfg = c
}

// Register creates a new account. Admins are verified immediately; students
// and teachers wait for manual admin verification.
func Register(ctx *gin.Context) {
	var request structs.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if request.Password != request.ConfirmPassword {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.FindUserByEmail(dbCtx, email); err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	} else if err != mongo.ErrNoDocuments {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		FullName:   request.FullName,
		Email:      email,
		Role:       request.Role,
		Password:   hash,
		IsVerified: request.Role == models.RoleAdmin,
		CreatedAt:  time.Now(),
	}
	switch request.Role {
	case models.RoleStudent:
		user.StudentID = request.StudentID
		user.Course = request.Course
		user.Interest = request.Interest
	case models.RoleTeacher:
		user.Dept = request.Dept
		user.Designation = request.Designation
	}

	if _, err := db.GetCollection("users").InsertOne(dbCtx, user); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register", "message": err.Error()})
		return
	}

	message := "Registration successful! Please wait for admin verification."
	if user.IsVerified {
		message = "Admin registered successfully! You can log in now."
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

// Login checks credentials, role and account state, then issues a JWT.
func Login(ctx *gin.Context) {
	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.FindUserByEmail(dbCtx, email)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "No account found with this email"})
		return
	}

	if user.IsDeleted {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "This account has been deactivated by the admin"})
		return
	}
	if user.Role != strings.ToLower(request.Role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("You are registered as a %s, not %s", user.Role, request.Role)})
		return
	}
	if !utils.CheckPassword(user.Password, request.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		return
	}
	if !user.IsVerified {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Your account is awaiting admin approval"})
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role, cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome back, %s!", user.FullName),
		"token":   token,
		"role":    user.Role,
		"user":    user,
	})
}

// GetProfile returns the authenticated account.
func GetProfile(ctx *gin.Context) {
	user := middlewares.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile edits the caller's own profile fields and optionally the password.
func UpdateProfile(ctx *gin.Context) {
	user := middlewares.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request structs.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	update := bson.M{}
	if request.FullName != "" {
		update["fullName"] = request.FullName
	}
	if request.Course != "" {
		update["course"] = request.Course
	}
	if request.Interest != "" {
		update["interest"] = request.Interest
	}
	if request.Dept != "" {
		update["dept"] = request.Dept
	}
	if request.Designation != "" {
		update["designation"] = request.Designation
	}
	if request.Password != "" {
		hash, err := utils.HashPassword(request.Password)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		update["password"] = hash
	}
	if len(update) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.GetCollection("users").UpdateOne(dbCtx, bson.M{"_id": user.ID}, bson.M{"$set": update})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
