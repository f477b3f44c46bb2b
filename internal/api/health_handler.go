package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashokahotel/hotel-booking-backend/internal/db"
)

// HealthHandler reports process liveness and the last observed store state.
type HealthHandler struct {
	health db.Health
}

func NewHealthHandler(health db.Health) *HealthHandler {
	return &HealthHandler{health: health}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	store := "Disconnected"
	if h.health.Healthy() {
		store = "Connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "OK",
		"store":  store,
	})
}
