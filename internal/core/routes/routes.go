package routes

import (
	"github.com/it407/it-assets/internal/core/container"
	"github.com/it407/it-assets/internal/middleware"
	"github.com/it407/it-assets/pkg/security"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware(container.TokenIssuer))

	container.UserHandler.RegisterRoutes(protectedRoutes)
	container.EmployeeHandler.RegisterRoutes(protectedRoutes)
	container.AssetHandler.RegisterRoutes(protectedRoutes)
	container.AssetAssignments.RegisterRoutes(protectedRoutes, "/assets")
	container.SoftwareHandler.RegisterRoutes(protectedRoutes)
	container.SoftwareAssignments.RegisterRoutes(protectedRoutes, "/software")
	container.CredentialHandler.RegisterRoutes(protectedRoutes)
	container.DashboardHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
