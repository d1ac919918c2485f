package router

import "github.com/gin-gonic/gin"

func (r *Router) contactRoutes(version *gin.RouterGroup) {
	contacts := version.Group("/contacts")
	{
		// All contact routes require a valid access token
		contacts.Use(r.authMw.RequireAuth())
		{
			// List contacts with pagination and field filters
			contacts.GET("", r.contactHandler.GetAll)

			// Contacts with a birthday in the next seven days
			contacts.GET("/birthdays", r.contactHandler.UpcomingBirthdays)

			// Get contact by ID
			contacts.GET("/:id", r.contactHandler.GetByID)

			// Create new contact
			contacts.POST("", r.contactHandler.Create)

			// Update contact information
			contacts.PUT("/:id", r.contactHandler.Update)

			// Delete contact
			contacts.DELETE("/:id", r.contactHandler.Delete)
		}
	}
}
