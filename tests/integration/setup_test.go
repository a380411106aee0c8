//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/hotelhub/booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "hotelhub_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	dropTables()

	if err := testDB.AutoMigrate(
		&models.HotelChain{},
		&models.Hotel{},
		&models.Room{},
		&models.Amenity{},
		&models.Customer{},
		&models.Employee{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_room_number_per_hotel
		ON rooms (hotel_id, room_number)
	`)

	testDB.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist")
	testDB.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT excl_bookings_room_stay
				EXCLUDE USING gist (room_id WITH =, tstzrange(check_in, check_out) WITH &&);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$
	`)

	code := m.Run()

	dropTables()

	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS amenities")
	testDB.Exec("DROP TABLE IF EXISTS rooms")
	testDB.Exec("DROP TABLE IF EXISTS hotels")
	testDB.Exec("DROP TABLE IF EXISTS hotel_chains")
	testDB.Exec("DROP TABLE IF EXISTS customers")
	testDB.Exec("DROP TABLE IF EXISTS employees")
}

func cleanTables() {
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM amenities")
	testDB.Exec("DELETE FROM rooms")
	testDB.Exec("DELETE FROM hotels")
	testDB.Exec("DELETE FROM hotel_chains")
	testDB.Exec("DELETE FROM customers")
	testDB.Exec("DELETE FROM employees")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
