package service

import (
	"context"
	"errors"
	"time"

	"carbook/internal/database"
	"carbook/internal/domain"
	"carbook/internal/events"
	"carbook/internal/metrics"
	"carbook/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Quote computes the rental duration and total price for a car and date
// range: duration floors to one day, total is duration times the day rate.
func (s *BookingService) Quote(car *models.Car, start, end time.Time) (int64, models.Money) {
	days := models.DurationDays(start, end)
	return days, car.PricePerDay.MulDays(days)
}

// CreateBooking runs the availability gate and persists the booking
// atomically: on success exactly one new booking exists and the car is
// unavailable; on rejection nothing changes.
func (s *BookingService) CreateBooking(ctx context.Context, userID, carID int64, start, end time.Time) (*models.Booking, error) {
	car, err := s.store.GetCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	if !car.IsAvailable {
		metrics.IncBookingRejected()
		return nil, database.ErrCarUnavailable
	}

	days, total := s.Quote(car, start, end)

	booking := &models.Booking{
		UserID:     userID,
		CarID:      car.ID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: total,
		Status:     models.StatusConfirmed,
		CarLabel:   car.Label(),
	}

	// The flag is re-checked inside the transaction; the pre-check above
	// only gives the caller a friendlier early rejection.
	if err := s.store.CreateBookingTx(ctx, booking); err != nil {
		if errors.Is(err, database.ErrCarUnavailable) {
			metrics.IncBookingRejected()
		}
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("car_id", car.ID).
		Int64("user_id", userID).
		Int64("days", days).
		Str("total_price", total.String()).
		Msg("booking created")

	s.publishEvent(events.EventBookingCreated, booking, "user")

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]*models.Booking, error) {
	return s.store.ListUserBookings(ctx, userID)
}

func (s *BookingService) ListAllBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.store.ListAllBookings(ctx)
}

// DeleteBooking removes the booking and frees the car again.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.store.DeleteBookingTx(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingDeleted()
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("car_id", booking.CarID).
		Msg("booking deleted")

	s.publishEvent(events.EventBookingDeleted, booking, "admin")

	return booking, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, changedBy string) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		UserName:   booking.UserName,
		CarID:      booking.CarID,
		CarLabel:   booking.CarLabel,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		ChangedBy:  changedBy,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
