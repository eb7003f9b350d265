package web

import (
	"context"

	"carbook/internal/config"
	"carbook/internal/domain"
	"carbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server holds the HTTP layer dependencies and owns the route table.
type Server struct {
	cfg      *config.Config
	bookings *service.BookingService
	cars     *service.CarService
	users    *service.UserService
	sessions domain.SessionRepository
	logger   *zerolog.Logger

	healthCheck func(ctx context.Context) error
}

func NewServer(
	cfg *config.Config,
	bookings *service.BookingService,
	cars *service.CarService,
	users *service.UserService,
	sessions domain.SessionRepository,
	healthCheck func(ctx context.Context) error,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cfg:         cfg,
		bookings:    bookings,
		cars:        cars,
		users:       users,
		sessions:    sessions,
		logger:      logger,
		healthCheck: healthCheck,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	if s.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.sessionMiddleware())

	r.LoadHTMLGlob(s.cfg.Server.TemplatesGlob)

	// Public catalog
	r.GET("/", s.handleCarList)
	r.GET("/cars", s.handleCarList)
	r.GET("/cars/:id", s.handleCarShow)

	// Auth
	r.GET("/login", s.handleLoginForm)
	r.POST("/login", s.loginRateLimiter(), s.handleLogin)
	r.GET("/register", s.handleRegisterForm)
	r.POST("/register", s.handleRegister)
	r.POST("/logout", s.handleLogout)

	// Authenticated booking flow
	booking := r.Group("/booking", s.requireUser())
	{
		booking.GET("/new/:carID", s.handleBookingForm)
		booking.POST("/new/:carID", s.handleBookingCreate)
		booking.GET("/my-bookings", s.handleMyBookings)
	}

	// Admin surface
	admin := r.Group("/", s.requireUser(), s.requireAdmin())
	{
		admin.GET("/booking/admin/bookings", s.handleAdminBookings)
		admin.POST("/booking/admin/booking/:id/delete", s.handleBookingDelete)
		admin.GET("/booking/admin/bookings/export", s.handleBookingsExport)

		admin.GET("/admin/cars/new", s.handleCarNewForm)
		admin.POST("/admin/cars/new", s.handleCarCreate)
		admin.GET("/admin/cars/:id/edit", s.handleCarEditForm)
		admin.POST("/admin/cars/:id/edit", s.handleCarUpdate)
	}

	r.GET("/healthz", s.handleHealthz)

	return r
}
