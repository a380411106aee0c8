package database

import (
	"log"

	"github.com/hotelhub/booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.HotelChain{},
		&models.Hotel{},
		&models.Room{},
		&models.Amenity{},
		&models.Customer{},
		&models.Employee{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Room numbers repeat across hotels but not within one
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_room_number_per_hotel
		ON rooms (hotel_id, room_number)
	`)

	// Hotel star rating stays in [1,5]
	db.Exec(`
		DO $$ BEGIN
			ALTER TABLE hotels ADD CONSTRAINT chk_hotel_category CHECK (category BETWEEN 1 AND 5);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$
	`)

	// DB-level backstop for admission: no two bookings on one room may hold
	// overlapping half-open stay ranges, regardless of what the application
	// layer does. btree_gist supplies the = operator class for room_id.
	db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist")
	db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT excl_bookings_room_stay
				EXCLUDE USING gist (room_id WITH =, tstzrange(check_in, check_out) WITH &&);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$
	`)

	return db
}
