package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(api *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	api.POST("/bookings", h.Submit)

	admin := api.Group("/admin")
	admin.Use(authMiddleware)
	{
		admin.GET("/bookings", h.List)
		admin.PUT("/bookings/:id", h.UpdateStatus)
		admin.GET("/stats", h.Stats)
		admin.POST("/book-room", h.StaffBook)
	}
}
