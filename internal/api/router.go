package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ashokahotel/hotel-booking-backend/internal/auth"
	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
	bookingHttp "github.com/ashokahotel/hotel-booking-backend/internal/booking/http"
	"github.com/ashokahotel/hotel-booking-backend/internal/db"
	"github.com/ashokahotel/hotel-booking-backend/internal/prebooking"
	prebookingHttp "github.com/ashokahotel/hotel-booking-backend/internal/prebooking/http"
)

// Config holds the dependencies needed to assemble the router.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	ReceiptDir        string
	BookingService    booking.Service
	PreBookingService prebooking.Service
	Credentials       auth.CredentialVerifier
	JWTManager        *auth.JWTManager
	Health            db.Health
}

// NewRouter initializes the HTTP router engine: global middleware (logging,
// panic recovery, CORS), the auth gate for admin routes, and the module routes.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Recovery keeps the process serving after an unexpected panic.
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsCfg.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	authHandler := NewAuthHandler(cfg.Credentials, cfg.JWTManager)
	healthHandler := NewHealthHandler(cfg.Health)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	prebookingHandler := prebookingHttp.NewHandler(cfg.PreBookingService)

	api := r.Group("/api")
	{
		api.POST("/admin/login", authHandler.Login)
		api.GET("/health", healthHandler.Check)

		bookingHttp.RegisterRoutes(api, bookingHandler, authMiddleware)
		prebookingHttp.RegisterRoutes(api, prebookingHandler, authMiddleware)
	}

	// Receipts are served straight from local storage.
	if cfg.ReceiptDir != "" {
		r.Static("/files/receipts", cfg.ReceiptDir)
	}

	return r
}
