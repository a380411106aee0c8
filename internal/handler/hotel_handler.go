package handler

import (
	"errors"
	"net/http"

	"github.com/hotelhub/booking-service/internal/repository"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HotelHandler exposes the read-only chain/hotel/room views used by the
// presentation layer. Chain, hotel and employee mutations live outside this
// service.
type HotelHandler struct {
	hotelRepo repository.HotelRepository
	roomRepo  repository.RoomRepository
}

func NewHotelHandler(hotelRepo repository.HotelRepository, roomRepo repository.RoomRepository) *HotelHandler {
	return &HotelHandler{hotelRepo: hotelRepo, roomRepo: roomRepo}
}

func (h *HotelHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/chains", h.ListChains)
	e.GET("/api/v1/chains/:id/hotels", h.ListChainHotels)
	e.GET("/api/v1/hotels/:id/rooms", h.ListHotelRooms)
}

func (h *HotelHandler) ListChains(c echo.Context) error {
	chains, err := h.hotelRepo.ListChains(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if chains == nil {
		chains = []repository.ChainView{}
	}
	return c.JSON(http.StatusOK, chains)
}

func (h *HotelHandler) ListChainHotels(c echo.Context) error {
	chainID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chain id")
	}

	ctx := c.Request().Context()
	if _, err := h.hotelRepo.FindChainByID(ctx, chainID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chain not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	hotels, err := h.hotelRepo.ListHotelsByChain(ctx, chainID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, hotels)
}

func (h *HotelHandler) ListHotelRooms(c echo.Context) error {
	hotelID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hotel id")
	}

	ctx := c.Request().Context()
	if _, err := h.hotelRepo.FindHotelByID(ctx, hotelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "hotel not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rooms, err := h.roomRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rooms)
}
