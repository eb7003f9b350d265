package export

import (
	"bytes"
	"fmt"

	"carbook/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

// BookingsXLSX renders the admin booking list as an Excel workbook and
// returns the serialized file, ready to stream as a download.
func BookingsXLSX(bookings []*models.Booking, logger *zerolog.Logger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Customer", "Car", "Start Date", "End Date", "Total Price", "Status", "Created At"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(bookingsSheet, cell, header)
		_ = f.SetCellStyle(bookingsSheet, cell, cell, headerStyle)
	}

	for i, booking := range bookings {
		row := i + 2
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("A%d", row), booking.ID)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("B%d", row), booking.UserName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("C%d", row), booking.CarLabel)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("D%d", row), booking.StartDate.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("E%d", row), booking.EndDate.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("F%d", row), booking.TotalPrice.String())
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("G%d", row), booking.Status)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("H%d", row), booking.CreatedAt.Format("02.01.2006 15:04"))
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 8)
	_ = f.SetColWidth(bookingsSheet, "B", "C", 25)
	_ = f.SetColWidth(bookingsSheet, "D", "E", 18)
	_ = f.SetColWidth(bookingsSheet, "F", "G", 14)
	_ = f.SetColWidth(bookingsSheet, "H", "H", 18)

	_ = f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing file: %v", err)
	}

	logger.Info().Int("bookings", len(bookings)).Msg("bookings export generated")
	return buf.Bytes(), nil
}

// FileName builds the download name with the generation timestamp.
func FileName(ts string) string {
	return fmt.Sprintf("bookings_export_%s.xlsx", ts)
}
