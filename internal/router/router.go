package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/virtualhotel/hotel-backend/internal/config"
	"github.com/virtualhotel/hotel-backend/internal/database"
	"github.com/virtualhotel/hotel-backend/internal/handlers"
	"github.com/virtualhotel/hotel-backend/internal/middleware"
	"github.com/virtualhotel/hotel-backend/internal/services"
	"github.com/virtualhotel/hotel-backend/pkg/validator"
)

// Services are the application services shared by the HTTP API and the
// background jobs. Build them once and hand the same set to both.
type Services struct {
	Rooms    *services.RoomService
	Guests   *services.GuestService
	Bookings *services.BookingService
}

// NewServices wires repositories and services over db
func NewServices(cfg *config.Config, logger *logrus.Logger, db *database.PostgresDB) (*Services, error) {
	location, err := cfg.Hotel.Location()
	if err != nil {
		return nil, err
	}

	// Repositories
	roomRepo := database.NewRoomRepository(db.DB)
	guestRepo := database.NewGuestRepository(db.DB)
	bookingRepo := database.NewBookingRepository(db.DB)

	return &Services{
		Rooms:    services.NewRoomService(roomRepo, logger),
		Guests:   services.NewGuestService(guestRepo, logger),
		Bookings: services.NewBookingService(bookingRepo, location, logger),
	}, nil
}

// New mounts handlers for svc onto a gin engine.
// cache and jobs may be nil, in which case responses are not cached and
// the health endpoint reports no job status.
func New(cfg *config.Config, logger *logrus.Logger, db *database.PostgresDB, svc *Services, cache *middleware.ResponseCache, jobs handlers.JobStatusProvider) (*gin.Engine, error) {
	if err := validator.RegisterGinValidators(); err != nil {
		return nil, err
	}

	showDetails := !cfg.Server.IsProduction()

	// Handlers
	resp := handlers.NewResponder(logger, showDetails)
	roomHandler := handlers.NewRoomHandler(svc.Rooms, resp)
	guestHandler := handlers.NewGuestHandler(svc.Guests, resp)
	bookingHandler := handlers.NewBookingHandler(svc.Bookings, resp)
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.APIPrefix, jobs, showDetails)

	router := gin.New()
	router.Use(middleware.Recovery(logger, showDetails))
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, middleware.CacheHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", healthHandler.Index)
	router.NoRoute(healthHandler.NoRoute)

	api := router.Group(cfg.Server.APIPrefix)
	api.GET("/health", healthHandler.Health)

	// Cached group: reads may be served from Redis, successful writes invalidate
	v1 := api.Group("")
	if cache != nil {
		v1.Use(cache.Middleware())
	}

	rooms := v1.Group("/rooms")
	{
		rooms.GET("", roomHandler.GetAll)
		rooms.GET("/available", roomHandler.GetAvailable)
		rooms.GET("/statistics", roomHandler.GetStatistics)
		rooms.GET("/status/:status", roomHandler.GetByStatus)
		rooms.GET("/floor/:floor", roomHandler.GetByFloor)
		rooms.GET("/:id", roomHandler.GetByID)
		rooms.POST("", roomHandler.Create)
		rooms.PUT("/:id", roomHandler.Update)
		rooms.DELETE("/:id", roomHandler.Delete)
	}

	guests := v1.Group("/guests")
	{
		guests.GET("", guestHandler.GetAll)
		guests.GET("/search", guestHandler.Search)
		guests.GET("/statistics", guestHandler.GetStatistics)
		guests.GET("/:id", guestHandler.GetByID)
		guests.GET("/:id/bookings", guestHandler.GetWithBookings)
		guests.POST("", guestHandler.Create)
		guests.PUT("/:id", guestHandler.Update)
		guests.DELETE("/:id", guestHandler.Delete)
	}

	bookings := v1.Group("/bookings")
	{
		bookings.GET("", bookingHandler.GetAll)
		bookings.GET("/today/check-ins", bookingHandler.GetTodayCheckIns)
		bookings.GET("/today/check-outs", bookingHandler.GetTodayCheckOuts)
		bookings.GET("/statistics", bookingHandler.GetStatistics)
		bookings.GET("/status/:status", bookingHandler.GetByStatus)
		bookings.GET("/guest/:guestId", bookingHandler.GetByGuest)
		bookings.GET("/room/:roomId", bookingHandler.GetByRoom)
		bookings.GET("/:id", bookingHandler.GetByID)
		bookings.GET("/:id/details", bookingHandler.GetDetails)
		bookings.POST("", bookingHandler.Create)
		bookings.PUT("/:id", bookingHandler.Update)
		bookings.DELETE("/:id", bookingHandler.Delete)
	}

	return router, nil
}
