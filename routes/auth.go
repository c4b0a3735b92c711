package routes

import (
	"approvehub/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRouteHandler(ctx *gin.Context) {
	controllers.Register(ctx)
}

func LoginRouteHandler(ctx *gin.Context) {
	controllers.Login(ctx)
}

func GetProfileRouteHandler(ctx *gin.Context) {
	controllers.GetProfile(ctx)
}

func UpdateProfileRouteHandler(ctx *gin.Context) {
	controllers.UpdateProfile(ctx)
}
