package routes

import (
	"collabra_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.DocumentHandler.RegisterRoutes(api)
		appHandlers.StatusHandler.RegisterRoutes(api)
	}
}
