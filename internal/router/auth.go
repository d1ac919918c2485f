package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/signup", r.authHandler.Signup)
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/refresh", r.authHandler.RefreshToken)

		// Email confirmation flows carry their own token
		auth.GET("/confirm/:token", r.authHandler.ConfirmEmail)
		auth.POST("/request-confirm", r.authHandler.RequestConfirmEmail)
	}
}
