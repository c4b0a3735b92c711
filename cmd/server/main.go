package main

import (
	"log"
	"strconv"

	"approvehub/config"
	"approvehub/controllers"
	"approvehub/db"
	"approvehub/middlewares"
	"approvehub/models"
	"approvehub/routes"
	"approvehub/services"
	"approvehub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	controllers.InitControllers(cfg)
	services.InitDuplicateService(cfg)

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if err := middlewares.InitCasbin(cfg); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	// Seed demo accounts and one approved submission
	utils.PopulateTestUsers()

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/register", routes.RegisterRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware(cfg))
	{
		auth.GET("/user/profile", routes.GetProfileRouteHandler)
		auth.PUT("/user/profile", routes.UpdateProfileRouteHandler)

		student := auth.Group("/student")
		student.Use(middlewares.RequireRole(models.RoleStudent))
		{
			student.GET("/dashboard", routes.StudentDashboardRouteHandler)
			student.POST("/projects", routes.SubmitProjectRouteHandler)
			student.POST("/ideas", routes.SubmitProjectIdeaRouteHandler)
			student.PUT("/projects/:id", routes.EditProjectRouteHandler)
			student.DELETE("/projects/:id", routes.DeleteProjectRouteHandler)
			student.GET("/projects/status", routes.ProjectStatusRouteHandler)
		}

		teacher := auth.Group("/teacher")
		teacher.Use(middlewares.RequireRole(models.RoleTeacher))
		{
			teacher.GET("/dashboard", routes.TeacherDashboardRouteHandler)
			teacher.POST("/projects/:id/approve", routes.ApproveProjectRouteHandler)
			teacher.POST("/projects/:id/reject", routes.RejectProjectRouteHandler)
			teacher.POST("/projects/feedback", routes.SubmitFeedbackRouteHandler)
		}

		admin := auth.Group("/admin")
		admin.Use(middlewares.RequireRole(models.RoleAdmin))
		{
			admin.GET("/dashboard", routes.AdminDashboardRouteHandler)
			admin.GET("/users", routes.ManageUsersRouteHandler)
			admin.POST("/users/:id/verify", middlewares.RBACMiddleware("user", "verify"), routes.VerifyUserRouteHandler)
			admin.POST("/users/:id/reject", middlewares.RBACMiddleware("user", "verify"), routes.RejectUserRouteHandler)
			admin.POST("/users/:id/assign", middlewares.RBACMiddleware("user", "assign"), routes.AssignTeacherRouteHandler)
			admin.DELETE("/users/:id", middlewares.RBACMiddleware("user", "delete"), routes.SoftDeleteUserRouteHandler)
			admin.POST("/users/:id/restore", middlewares.RBACMiddleware("user", "restore"), routes.RestoreUserRouteHandler)
			admin.POST("/deadline", middlewares.RBACMiddleware("deadline", "write"), routes.SetDeadlineRouteHandler)
		}
	}

	return router
}
