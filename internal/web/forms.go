package web

import (
	"errors"
	"strings"
	"time"

	"carbook/internal/models"

	"github.com/gin-gonic/gin"
)

var (
	errDatesRequired = errors.New("start and end dates are required")
	errBadDate       = errors.New("dates must be valid datetime-local values")
)

// bookingForm carries the parsed booking request dates.
type bookingForm struct {
	StartDate time.Time
	EndDate   time.Time
}

func parseBookingForm(c *gin.Context) (*bookingForm, error) {
	startRaw := strings.TrimSpace(c.PostForm("start_date"))
	endRaw := strings.TrimSpace(c.PostForm("end_date"))
	if startRaw == "" || endRaw == "" {
		return nil, errDatesRequired
	}

	start, err := time.ParseInLocation(models.DateInputFormat, startRaw, time.Local)
	if err != nil {
		return nil, errBadDate
	}
	end, err := time.ParseInLocation(models.DateInputFormat, endRaw, time.Local)
	if err != nil {
		return nil, errBadDate
	}

	return &bookingForm{StartDate: start, EndDate: end}, nil
}

// carForm mirrors the car editing surface: text make/model, integer year,
// money price, optional image URL, availability checkbox.
type carForm struct {
	Make        string `form:"make"`
	Model       string `form:"model"`
	Year        int64  `form:"year"`
	PricePerDay string `form:"price_per_day"`
	Image       string `form:"image"`
	IsAvailable bool   `form:"is_available"`
}

func parseCarForm(c *gin.Context) (*models.Car, error) {
	var form carForm
	if err := c.ShouldBind(&form); err != nil {
		return nil, err
	}

	price, err := models.ParseMoney(strings.TrimSpace(form.PricePerDay))
	if err != nil {
		return nil, err
	}

	return &models.Car{
		Make:        strings.TrimSpace(form.Make),
		Model:       strings.TrimSpace(form.Model),
		Year:        form.Year,
		PricePerDay: price,
		Image:       strings.TrimSpace(form.Image),
		IsAvailable: form.IsAvailable,
	}, nil
}

type credentialsForm struct {
	Email    string
	Name     string
	Password string
}

func parseCredentialsForm(c *gin.Context) credentialsForm {
	return credentialsForm{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Name:     strings.TrimSpace(c.PostForm("name")),
		Password: c.PostForm("password"),
	}
}
