package main

import (
	"log"

	"github.com/hotelhub/booking-service/config"
	"github.com/hotelhub/booking-service/internal/handler"
	"github.com/hotelhub/booking-service/internal/middleware"
	"github.com/hotelhub/booking-service/internal/repository"
	"github.com/hotelhub/booking-service/internal/service"
	"github.com/hotelhub/booking-service/pkg/cache"
	"github.com/hotelhub/booking-service/pkg/database"
	"github.com/hotelhub/booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	rdb := cache.NewRedisClient(cfg.RedisAddr)

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	hotelRepo := repository.NewHotelRepository(db)

	// Services
	availabilitySvc := service.NewAvailabilityService(roomRepo, rdb, cfg.CacheTTL)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, customerRepo, employeeRepo,
		publisher, availabilitySvc.InvalidateAreaCounts)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(middleware.Identity())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "hotel-booking-service"})
	})

	handler.NewAvailabilityHandler(availabilitySvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewHotelHandler(hotelRepo, roomRepo).RegisterRoutes(e)

	log.Printf("Hotel Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
