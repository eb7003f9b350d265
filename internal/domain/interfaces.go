package domain

import (
	"context"
	"time"

	"carbook/internal/models"
)

// Store is the persistence surface consumed by the services.
type Store interface {
	CreateCar(ctx context.Context, car *models.Car) error
	UpdateCar(ctx context.Context, car *models.Car) error
	GetCar(ctx context.Context, id int64) (*models.Car, error)
	ListCars(ctx context.Context) ([]*models.Car, error)
	SetCarAvailability(ctx context.Context, id int64, available bool) error

	CreateBookingTx(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]*models.Booking, error)
	ListAllBookings(ctx context.Context) ([]*models.Booking, error)
	DeleteBookingTx(ctx context.Context, id int64) (*models.Booking, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// SessionRepository holds browser sessions keyed by opaque session ID.
type SessionRepository interface {
	GetSession(ctx context.Context, id string) (*models.Session, error)
	SetSession(ctx context.Context, session *models.Session) error
	ClearSession(ctx context.Context, id string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
