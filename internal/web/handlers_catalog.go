package web

import (
	"errors"
	"net/http"
	"strconv"

	"carbook/internal/database"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCarList(c *gin.Context) {
	cars, err := s.cars.ListCars(c.Request.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list cars error")
		s.render(c, http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not load the catalog."})
		return
	}

	s.render(c, http.StatusOK, "cars_list.html", gin.H{"Cars": cars})
}

func (s *Server) handleCarShow(c *gin.Context) {
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

	s.render(c, http.StatusOK, "car_show.html", gin.H{"Car": car})
}
