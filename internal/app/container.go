package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ashokahotel/hotel-booking-backend/internal/api"
	"github.com/ashokahotel/hotel-booking-backend/internal/auth"
	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
	"github.com/ashokahotel/hotel-booking-backend/internal/config"
	"github.com/ashokahotel/hotel-booking-backend/internal/db"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/idgen"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/storage"
	"github.com/ashokahotel/hotel-booking-backend/internal/prebooking"
	"github.com/ashokahotel/hotel-booking-backend/internal/receipt"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	Cfg *config.Config

	// DBPool may be nil, in which case the service runs on the in-process
	// fallback stores only.
	DBPool *pgxpool.Pool

	Logger *logrus.Logger

	// ReceiptStore overrides the local receipt store when set (tests).
	ReceiptStore receipt.Store
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	Monitor    *db.Monitor // nil when running memory-only
	JWTManager *auth.JWTManager

	BookingService    booking.Service
	PreBookingService prebooking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	jwtManager := auth.NewJWTManager(cfg.Cfg.JWTSecret, cfg.Cfg.JWTTTL)
	credentials := auth.NewStaticCredentials(cfg.Cfg.AdminUsername, cfg.Cfg.AdminPassword, cfg.Cfg.AdminPasswordBcrypt)
	ids := idgen.New()

	// Receipt store
	receiptStore := cfg.ReceiptStore
	if receiptStore == nil {
		localStorage, err := storage.NewLocalStorage(cfg.Cfg.ReceiptDir)
		if err != nil {
			return nil, fmt.Errorf("failed to init receipt storage: %w", err)
		}
		receiptStore = receipt.NewLocalStore(localStorage, cfg.Cfg.PublicBaseURL, cfg.Cfg.ReceiptMaxBytes, cfg.Logger)
	}

	// Persistence: durable store with memory failover, or memory-only when no
	// database is configured. The fallback lists are entity-kind-scoped.
	bookingFallback := booking.NewMemoryRepository()
	prebookingFallback := prebooking.NewMemoryRepository(bookingFallback)

	var (
		monitor        *db.Monitor
		health         db.Health = db.Static(false)
		bookingRepo    booking.Repository
		prebookingRepo prebooking.Repository
	)

	if cfg.DBPool != nil {
		monitor = db.NewMonitor(cfg.DBPool, cfg.Cfg.HealthProbeInterval, cfg.Logger)
		health = monitor
		bookingRepo = booking.NewFailover(booking.NewPgxRepository(cfg.DBPool), bookingFallback, monitor, cfg.Cfg.DegradedReads, cfg.Logger)
		prebookingRepo = prebooking.NewFailover(prebooking.NewPgxRepository(cfg.DBPool), prebookingFallback, monitor, cfg.Cfg.DegradedReads, cfg.Logger)
	} else {
		bookingRepo = bookingFallback
		prebookingRepo = prebookingFallback
	}

	// Booking module
	bookingService := booking.NewService(bookingRepo, receiptStore, ids, cfg.Logger)

	// Pre-booking module
	prebookingService := prebooking.NewService(prebookingRepo, bookingService, ids, cfg.Cfg.PublicBaseURL, cfg.Logger)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:      cfg.Cfg.IsProduction,
		ProdOrigins:       cfg.Cfg.ProdOrigins,
		ReceiptDir:        cfg.Cfg.ReceiptDir,
		BookingService:    bookingService,
		PreBookingService: prebookingService,
		Credentials:       credentials,
		JWTManager:        jwtManager,
		Health:            health,
	})

	return &Container{
		Router:            router,
		Monitor:           monitor,
		JWTManager:        jwtManager,
		BookingService:    bookingService,
		PreBookingService: prebookingService,
	}, nil
}
