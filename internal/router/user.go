package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		// All user routes require a valid access token
		users.Use(r.authMw.RequireAuth())
		{
			// Current authenticated user
			users.GET("/me", r.userHandler.Me)

			// Replace the current user's avatar
			users.PATCH("/avatar", r.userHandler.UpdateAvatar)
		}
	}
}
