package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/apperror"
)

// Every endpoint answers with a {"success": bool, ...} envelope.

// OK sends a success envelope merged with the given fields.
func OK(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error sends a failure envelope.
// AppErrors determine the status code; anything else is a 500 with a generic
// message so internal details never leak to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"success": false, "error": appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
}
