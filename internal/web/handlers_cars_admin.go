package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"carbook/internal/database"
	"carbook/internal/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCarNewForm(c *gin.Context) {
	s.render(c, http.StatusOK, "car_form.html", gin.H{
		"Title":  "Add car",
		"Action": "/admin/cars/new",
	})
}

func (s *Server) handleCarCreate(c *gin.Context) {
	car, err := parseCarForm(c)
	if err != nil {
		s.addFlash(c, models.FlashDanger, "Invalid car data: "+err.Error())
		c.Redirect(http.StatusSeeOther, "/admin/cars/new")
		return
	}

	if err := s.cars.CreateCar(c.Request.Context(), car); err != nil {
		s.addFlash(c, models.FlashDanger, "Could not save the car: "+err.Error())
		c.Redirect(http.StatusSeeOther, "/admin/cars/new")
		return
	}

	s.addFlash(c, models.FlashSuccess, fmt.Sprintf("%s added to the catalog.", car.Label()))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/cars/%d", car.ID))
}

func (s *Server) handleCarEditForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	car, err := s.cars.GetCar(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("car_id", id).Msg("get car error")
		s.render(c, http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not load the car."})
		return
	}

	s.render(c, http.StatusOK, "car_form.html", gin.H{
		"Title":  "Edit " + car.Label(),
		"Action": fmt.Sprintf("/admin/cars/%d/edit", car.ID),
		"Car":    car,
	})
}

func (s *Server) handleCarUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	car, err := parseCarForm(c)
	if err != nil {
		s.addFlash(c, models.FlashDanger, "Invalid car data: "+err.Error())
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/cars/%d/edit", id))
		return
	}
	car.ID = id

	if err := s.cars.UpdateCar(c.Request.Context(), car); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		s.addFlash(c, models.FlashDanger, "Could not save the car: "+err.Error())
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/cars/%d/edit", id))
		return
	}

	s.addFlash(c, models.FlashSuccess, fmt.Sprintf("%s updated.", car.Label()))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/cars/%d", id))
}
