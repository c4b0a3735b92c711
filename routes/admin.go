package routes

import (
	"approvehub/controllers"

	"github.com/gin-gonic/gin"
)

func AdminDashboardRouteHandler(ctx *gin.Context) {
	controllers.AdminDashboard(ctx)
}

func VerifyUserRouteHandler(ctx *gin.Context) {
	controllers.VerifyUser(ctx)
}

func RejectUserRouteHandler(ctx *gin.Context) {
	controllers.RejectUser(ctx)
}

func AssignTeacherRouteHandler(ctx *gin.Context) {
	controllers.AssignTeacher(ctx)
}

func ManageUsersRouteHandler(ctx *gin.Context) {
	controllers.ManageUsers(ctx)
}

func SoftDeleteUserRouteHandler(ctx *gin.Context) {
	controllers.SoftDeleteUser(ctx)
}

func RestoreUserRouteHandler(ctx *gin.Context) {
	controllers.RestoreUser(ctx)
}

func SetDeadlineRouteHandler(ctx *gin.Context) {
	controllers.SetDeadline(ctx)
}
