package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"carbook/internal/database"
	"carbook/internal/export"
	"carbook/internal/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleBookingForm(c *gin.Context) {
	carID, err := strconv.ParseInt(c.Param("carID"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	car, err := s.cars.GetCar(c.Request.Context(), carID)
	if errors.Is(err, database.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("car_id", carID).Msg("get car error")
		s.render(c, http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not load the car."})
		return
	}

	if !car.IsAvailable {
		s.addFlash(c, models.FlashWarning, fmt.Sprintf("%s is not available right now.", car.Label()))
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/cars/%d", car.ID))
		return
	}

	s.render(c, http.StatusOK, "booking_new.html", gin.H{"Car": car})
}

func (s *Server) handleBookingCreate(c *gin.Context) {
	carID, err := strconv.ParseInt(c.Param("carID"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	form, err := parseBookingForm(c)
	if err != nil {
		s.addFlash(c, models.FlashDanger, err.Error())
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/booking/new/%d", carID))
		return
	}

	sess := s.currentSession(c)
	booking, err := s.bookings.CreateBooking(c.Request.Context(), sess.UserID, carID, form.StartDate, form.EndDate)
	switch {
	case errors.Is(err, database.ErrCarUnavailable):
		s.addFlash(c, models.FlashWarning, "This car is no longer available.")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/cars/%d", carID))
		return
	case errors.Is(err, database.ErrNotFound):
		c.Status(http.StatusNotFound)
		return
	case err != nil:
		s.logger.Error().Err(err).Int64("car_id", carID).Msg("create booking error")
		s.addFlash(c, models.FlashDanger, "Could not create the booking, please try again.")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/cars/%d", carID))
		return
	}

	s.addFlash(c, models.FlashSuccess,
		fmt.Sprintf("Booking confirmed: %s for %s.", booking.CarLabel, booking.TotalPrice))
	c.Redirect(http.StatusSeeOther, "/booking/my-bookings")
}

func (s *Server) handleMyBookings(c *gin.Context) {
	sess := s.currentSession(c)

	bookings, err := s.bookings.ListUserBookings(c.Request.Context(), sess.UserID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", sess.UserID).Msg("list user bookings error")
		s.render(c, http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not load your bookings."})
		return
	}

	s.render(c, http.StatusOK, "my_bookings.html", gin.H{"Bookings": bookings})
}

func (s *Server) handleAdminBookings(c *gin.Context) {
	bookings, err := s.bookings.ListAllBookings(c.Request.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list all bookings error")
		s.render(c, http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not load bookings."})
		return
	}

	// Per-row delete tokens for the action forms.
	sess := s.currentSession(c)
	tokens := make(map[int64]string, len(bookings))
	for _, booking := range bookings {
		tokens[booking.ID] = csrfToken(sess, deleteTokenID(booking.ID))
	}

	s.render(c, http.StatusOK, "admin_bookings.html", gin.H{
		"Bookings":     bookings,
		"DeleteTokens": tokens,
	})
}

func (s *Server) handleBookingDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	sess := s.currentSession(c)
	if !verifyCSRFToken(sess, deleteTokenID(id), c.PostForm("_token")) {
		s.addFlash(c, models.FlashWarning, "Invalid form token, the booking was not removed.")
		c.Redirect(http.StatusSeeOther, "/booking/admin/bookings")
		return
	}

	booking, err := s.bookings.DeleteBooking(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.addFlash(c, models.FlashWarning, "Booking not found.")
		c.Redirect(http.StatusSeeOther, "/booking/admin/bookings")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("delete booking error")
		s.addFlash(c, models.FlashDanger, "Could not remove the booking.")
		c.Redirect(http.StatusSeeOther, "/booking/admin/bookings")
		return
	}

	s.addFlash(c, models.FlashSuccess, fmt.Sprintf("Booking for %s removed.", booking.CarLabel))
	c.Redirect(http.StatusSeeOther, "/booking/admin/bookings")
}

func (s *Server) handleBookingsExport(c *gin.Context) {
	bookings, err := s.bookings.ListAllBookings(c.Request.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list all bookings error")
		c.Status(http.StatusInternalServerError)
		return
	}

	data, err := export.BookingsXLSX(bookings, s.logger)
	if err != nil {
		s.logger.Error().Err(err).Msg("bookings export error")
		c.Status(http.StatusInternalServerError)
		return
	}

	fileName := export.FileName(time.Now().Format("2006-01-02_15-04-05"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
