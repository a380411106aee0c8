package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hotelhub/booking-service/internal/dto"
	"github.com/hotelhub/booking-service/internal/middleware"
	"github.com/hotelhub/booking-service/internal/models"
	"github.com/hotelhub/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/rooms/:id/bookings", h.CreateBooking)
	e.GET("/api/v1/rooms/:id/bookings", h.ListRoomBookings)

	bookings := e.Group("/api/v1/bookings")
	bookings.GET("", h.ListCustomerBookings)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/checkin", h.CheckIn)
	bookings.POST("/:id/payment", h.MarkPaid)
	bookings.DELETE("/:id", h.CancelBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	roomID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}

	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid check_in date")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid check_out date")
	}

	// Employee attribution comes from the identity headers, not the body
	employeeID := middleware.PrincipalFrom(c).EmployeeID

	booking, err := h.svc.Admit(c.Request().Context(), roomID, req.CustomerID, employeeID,
		models.NewStayRange(checkIn, checkOut))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRange):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRoomNotFound),
			errors.Is(err, service.ErrCustomerNotFound),
			errors.Is(err, service.ErrEmployeeNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRoomUnavailable):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrStayConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListRoomBookings(c echo.Context) error {
	roomID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	bookings, err := h.svc.ListByRoom(c.Request().Context(), roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) ListCustomerBookings(c echo.Context) error {
	v := c.QueryParam("customer_id")
	customerID, err := strconv.ParseUint(v, 10, 64)
	if err != nil || customerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}

	bookings, err := h.svc.ListByCustomer(c.Request().Context(), uint(customerID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) CheckIn(c echo.Context) error {
	return h.transition(c, h.svc.CheckIn)
}

func (h *BookingHandler) MarkPaid(c echo.Context) error {
	return h.transition(c, h.svc.MarkPaid)
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) transition(c echo.Context, fn func(ctx context.Context, id uint) (*models.Booking, error)) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := fn(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func toBookingResponses(bookings []models.Booking) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return resp
}
