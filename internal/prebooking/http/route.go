package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(api *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	api.GET("/pre-booking/:id", h.Resolve)
	api.POST("/complete-booking/:id", h.Complete)

	admin := api.Group("/admin")
	admin.Use(authMiddleware)
	{
		admin.POST("/create-booking-link", h.CreateLink)
	}
}
