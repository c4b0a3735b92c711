package routes

import (
	"approvehub/controllers"

	"github.com/gin-gonic/gin"
)

func TeacherDashboardRouteHandler(ctx *gin.Context) {
	controllers.TeacherDashboard(ctx)
}

func ApproveProjectRouteHandler(ctx *gin.Context) {
	controllers.ApproveProject(ctx)
}

func RejectProjectRouteHandler(ctx *gin.Context) {
	controllers.RejectProject(ctx)
}

func SubmitFeedbackRouteHandler(ctx *gin.Context) {
	controllers.SubmitFeedback(ctx)
}
