package routes

import (
	"approvehub/controllers"

	"github.com/gin-gonic/gin"
)

func StudentDashboardRouteHandler(ctx *gin.Context) {
	controllers.StudentDashboard(ctx)
}

func SubmitProjectRouteHandler(ctx *gin.Context) {
	controllers.SubmitProject(ctx)
}

func SubmitProjectIdeaRouteHandler(ctx *gin.Context) {
	controllers.SubmitProjectIdea(ctx)
}

func EditProjectRouteHandler(ctx *gin.Context) {
	controllers.EditProject(ctx)
}

func DeleteProjectRouteHandler(ctx *gin.Context) {
	controllers.DeleteProject(ctx)
}

func ProjectStatusRouteHandler(ctx *gin.Context) {
	controllers.ProjectStatus(ctx)
}
