package service

import (
	"context"
	"fmt"
	"time"

	"carbook/internal/domain"
	"carbook/internal/events"
	"carbook/internal/models"

	"github.com/rs/zerolog"
)

type CarService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewCarService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *CarService {
	return &CarService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

func validateCar(car *models.Car) error {
	if car.Make == "" || car.Model == "" {
		return fmt.Errorf("make and model are required")
	}
	if car.Year < 1900 || car.Year > int64(time.Now().Year())+1 {
		return fmt.Errorf("invalid year: %d", car.Year)
	}
	if car.PricePerDay < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (s *CarService) CreateCar(ctx context.Context, car *models.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}

	if err := s.store.CreateCar(ctx, car); err != nil {
		return err
	}

	s.logger.Info().Int64("car_id", car.ID).Str("car", car.Label()).Msg("car created")
	if s.eventBus != nil {
		_ = s.eventBus.PublishJSON(events.EventCarCreated, car)
	}
	return nil
}

func (s *CarService) UpdateCar(ctx context.Context, car *models.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}

	if err := s.store.UpdateCar(ctx, car); err != nil {
		return err
	}

	s.logger.Info().Int64("car_id", car.ID).Str("car", car.Label()).Msg("car updated")
	if s.eventBus != nil {
		_ = s.eventBus.PublishJSON(events.EventCarUpdated, car)
	}
	return nil
}

func (s *CarService) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	return s.store.GetCar(ctx, id)
}

func (s *CarService) ListCars(ctx context.Context) ([]*models.Car, error) {
	return s.store.ListCars(ctx)
}
