package service

import (
	"context"
	"io"
	"testing"

	"carbook/internal/events"
	"carbook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCarService(t *testing.T) {
	store := new(mockStore)
	bus := new(mockEventBus)
	logger := zerolog.New(io.Discard)
	svc := NewCarService(store, bus, &logger)
	ctx := context.Background()

	t.Run("CreateCar", func(t *testing.T) {
		car := &models.Car{Make: "Honda", Model: "Civic", Year: 2020, PricePerDay: 4500, IsAvailable: true}
		store.On("CreateCar", ctx, car).Return(nil).Once()
		bus.On("PublishJSON", events.EventCarCreated, car).Return(nil).Once()

		err := svc.CreateCar(ctx, car)
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("CreateCarValidation", func(t *testing.T) {
		err := svc.CreateCar(ctx, &models.Car{Model: "Civic", Year: 2020})
		assert.Error(t, err)

		err = svc.CreateCar(ctx, &models.Car{Make: "Honda", Model: "Civic", Year: 1850})
		assert.Error(t, err)

		err = svc.CreateCar(ctx, &models.Car{Make: "Honda", Model: "Civic", Year: 2020, PricePerDay: -100})
		assert.ErrorIs(t, err, ErrInvalidPrice)

		store.AssertNotCalled(t, "CreateCar", ctx, mock.MatchedBy(func(c *models.Car) bool {
			return c.Make == "" || c.PricePerDay < 0
		}))
	})

	t.Run("UpdateCar", func(t *testing.T) {
		car := &models.Car{ID: 1, Make: "Honda", Model: "Civic", Year: 2020, PricePerDay: 4800}
		store.On("UpdateCar", ctx, car).Return(nil).Once()
		bus.On("PublishJSON", events.EventCarUpdated, car).Return(nil).Once()

		err := svc.UpdateCar(ctx, car)
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("ListCars", func(t *testing.T) {
		list := []*models.Car{{ID: 1}, {ID: 2}}
		store.On("ListCars", ctx).Return(list, nil).Once()

		got, err := svc.ListCars(ctx)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
