package export

import (
	"bytes"
	"io"
	"testing"
	"time"

	"carbook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBookingsXLSX(t *testing.T) {
	logger := zerolog.New(io.Discard)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	bookings := []*models.Booking{
		{
			ID:         1,
			UserName:   "Bob",
			CarLabel:   "Toyota Corolla",
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 2),
			TotalPrice: 10000,
			Status:     models.StatusConfirmed,
			CreatedAt:  start,
		},
	}

	data, err := BookingsXLSX(bookings, &logger)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	customer, err := f.GetCellValue("Bookings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", customer)

	total, err := f.GetCellValue("Bookings", "F2")
	require.NoError(t, err)
	assert.Equal(t, "100.00", total)
}

func TestBookingsXLSXEmpty(t *testing.T) {
	logger := zerolog.New(io.Discard)

	data, err := BookingsXLSX(nil, &logger)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
