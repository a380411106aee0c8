package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hotelhub/booking-service/internal/models"
	"github.com/hotelhub/booking-service/internal/repository"
	"github.com/hotelhub/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type AvailabilityHandler struct {
	svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(e *echo.Echo) {
	rooms := e.Group("/api/v1/rooms")
	rooms.GET("", h.SearchRooms)
	rooms.GET("/availability/areas", h.CountByArea)
}

// SearchRooms lists non-damaged rooms matching the filter. With check_in and
// check_out query params it also excludes rooms with overlapping bookings.
func (h *AvailabilityHandler) SearchRooms(c echo.Context) error {
	filter, err := parseRoomFilter(c)
	if err != nil {
		return err
	}

	stay, err := parseOptionalStay(c)
	if err != nil {
		return err
	}

	var views []repository.RoomView
	if stay != nil {
		views, err = h.svc.Search(c.Request().Context(), filter, *stay)
	} else {
		views, err = h.svc.ListRooms(c.Request().Context(), filter)
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if views == nil {
		views = []repository.RoomView{}
	}
	return c.JSON(http.StatusOK, views)
}

// CountByArea returns the number of free rooms per city/province/country for
// a required date range.
func (h *AvailabilityHandler) CountByArea(c echo.Context) error {
	stay, err := parseOptionalStay(c)
	if err != nil {
		return err
	}
	if stay == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_in and check_out are required")
	}

	counts, err := h.svc.CountByArea(c.Request().Context(), *stay)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if counts == nil {
		counts = []repository.AreaCount{}
	}
	return c.JSON(http.StatusOK, counts)
}

func parseRoomFilter(c echo.Context) (repository.RoomFilter, error) {
	var filter repository.RoomFilter

	if v := c.QueryParam("capacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid capacity filter")
		}
		filter.Capacity = &n
	}
	if v := c.QueryParam("min_category"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid min_category filter")
		}
		filter.MinCategory = &n
	}
	if v := c.QueryParam("city"); v != "" {
		filter.City = &v
	}
	if v := c.QueryParam("chain"); v != "" {
		filter.ChainName = &v
	}
	if v := c.QueryParam("rooms_in_hotel"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid rooms_in_hotel filter")
		}
		filter.RoomCount = &n
	}
	if v := c.QueryParam("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid max_price filter")
		}
		filter.MaxPrice = &f
	}
	return filter, nil
}

// parseOptionalStay reads check_in/check_out query params. Both absent means
// no date constraint; one without the other is an error.
func parseOptionalStay(c echo.Context) (*models.StayRange, error) {
	inStr := c.QueryParam("check_in")
	outStr := c.QueryParam("check_out")
	if inStr == "" && outStr == "" {
		return nil, nil
	}
	if inStr == "" || outStr == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "check_in and check_out must be provided together")
	}

	checkIn, err := time.Parse(dateLayout, inStr)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid check_in date")
	}
	checkOut, err := time.Parse(dateLayout, outStr)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid check_out date")
	}

	stay := models.NewStayRange(checkIn, checkOut)
	return &stay, nil
}
