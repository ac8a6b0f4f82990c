package routes

import (
	"archway_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the versioned HTTP API.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProjectHandler.RegisterRoutes(api)
		appHandlers.ArticleHandler.RegisterRoutes(api)
		appHandlers.BlogHandler.RegisterRoutes(api)
		appHandlers.ContactHandler.RegisterRoutes(api)
	}
}
