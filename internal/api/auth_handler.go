package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ashokahotel/hotel-booking-backend/internal/auth"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/response"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler issues admin session tokens.
type AuthHandler struct {
	credentials auth.CredentialVerifier
	jwtManager  *auth.JWTManager
}

func NewAuthHandler(credentials auth.CredentialVerifier, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		jwtManager:  jwtManager,
	}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, auth.ErrInvalidCredentials)
		return
	}

	if err := h.credentials.Verify(body.Username, body.Password); err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateToken(body.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"token": token})
}
