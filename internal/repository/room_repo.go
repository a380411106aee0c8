package repository

import (
	"context"

	"github.com/hotelhub/booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomFilter narrows an inventory listing. Nil fields impose no constraint.
type RoomFilter struct {
	Capacity    *int     // exact guest capacity
	MinCategory *int     // hotel star rating lower bound
	City        *string  // case-insensitive substring on hotel city
	ChainName   *string  // case-insensitive substring on chain name
	RoomCount   *int     // exact number of rooms in the owning hotel
	MaxPrice    *float64 // price upper bound
}

// RoomView is a room joined with the hotel and chain attributes needed for
// search results.
type RoomView struct {
	RoomID         uint    `json:"room_id"`
	RoomNumber     int     `json:"room_number"`
	Capacity       int     `json:"capacity"`
	Price          float64 `json:"price"`
	SeaView        bool    `json:"sea_view"`
	MountainView   bool    `json:"mountain_view"`
	Extendable     bool    `json:"extendable"`
	HotelID        uint    `json:"hotel_id"`
	Category       int     `json:"category"`
	StreetNumber   int     `json:"street_number"`
	StreetName     string  `json:"street_name"`
	City           string  `json:"city"`
	Province       string  `json:"province"`
	Country        string  `json:"country"`
	Zip            string  `json:"zip"`
	ChainID        uint    `json:"chain_id"`
	ChainName      string  `json:"chain_name"`
	HotelRoomCount int     `json:"hotel_room_count"`
}

// AreaCount is the number of free rooms in one city/province/country group.
type AreaCount struct {
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Rooms    int64  `json:"rooms"`
}

type RoomRepository interface {
	// ListViews returns non-damaged rooms matching the filter, ordered by
	// chain name then room number. When stay is non-nil, rooms with any
	// overlapping booking are excluded (half-open interval rule).
	ListViews(ctx context.Context, filter RoomFilter, stay *models.StayRange) ([]RoomView, error)
	// CountFreeByArea groups free non-damaged rooms for the stay by
	// city/province/country, ordered country, province, city.
	CountFreeByArea(ctx context.Context, stay models.StayRange) ([]AreaCount, error)
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	ListByHotel(ctx context.Context, hotelID uint) ([]models.Room, error)
	GetDB() *gorm.DB
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetDB() *gorm.DB {
	return r.db
}

// noOverlap excludes rooms that have a booking overlapping the stay:
// existing.check_in < stay.check_out AND stay.check_in < existing.check_out.
const noOverlap = `NOT EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.room_id = rooms.id
	  AND b.check_in < ? AND ? < b.check_out
)`

func (r *roomRepository) baseViewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("rooms").
		Select(`rooms.id AS room_id, rooms.room_number, rooms.capacity, rooms.price,
			rooms.sea_view, rooms.mountain_view, rooms.extendable,
			hotels.id AS hotel_id, hotels.category, hotels.street_number, hotels.street_name,
			hotels.city, hotels.province, hotels.country, hotels.zip,
			hotel_chains.id AS chain_id, hotel_chains.name AS chain_name,
			(SELECT COUNT(*) FROM rooms r2 WHERE r2.hotel_id = hotels.id) AS hotel_room_count`).
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Joins("JOIN hotel_chains ON hotel_chains.id = hotels.chain_id").
		Where("rooms.damaged = ?", false)
}

func applyFilter(q *gorm.DB, filter RoomFilter) *gorm.DB {
	if filter.Capacity != nil {
		q = q.Where("rooms.capacity = ?", *filter.Capacity)
	}
	if filter.MinCategory != nil {
		q = q.Where("hotels.category >= ?", *filter.MinCategory)
	}
	if filter.City != nil {
		q = q.Where("hotels.city ILIKE ?", "%"+*filter.City+"%")
	}
	if filter.ChainName != nil {
		q = q.Where("hotel_chains.name ILIKE ?", "%"+*filter.ChainName+"%")
	}
	if filter.RoomCount != nil {
		q = q.Where("(SELECT COUNT(*) FROM rooms r3 WHERE r3.hotel_id = hotels.id) = ?", *filter.RoomCount)
	}
	if filter.MaxPrice != nil {
		q = q.Where("rooms.price <= ?", *filter.MaxPrice)
	}
	return q
}

func (r *roomRepository) ListViews(ctx context.Context, filter RoomFilter, stay *models.StayRange) ([]RoomView, error) {
	q := applyFilter(r.baseViewQuery(ctx), filter)
	if stay != nil {
		q = q.Where(noOverlap, stay.CheckOut, stay.CheckIn)
	}

	var views []RoomView
	if err := q.Order("hotel_chains.name ASC, rooms.room_number ASC").Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *roomRepository) CountFreeByArea(ctx context.Context, stay models.StayRange) ([]AreaCount, error) {
	var counts []AreaCount
	err := r.db.WithContext(ctx).
		Table("rooms").
		Select("hotels.city, hotels.province, hotels.country, COUNT(rooms.id) AS rooms").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("rooms.damaged = ?", false).
		Where(noOverlap, stay.CheckOut, stay.CheckIn).
		Group("hotels.city, hotels.province, hotels.country").
		Order("hotels.country ASC, hotels.province ASC, hotels.city ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given
// transaction. Admission holds this lock across its conflict check and
// insert so that concurrent admits on the same room serialize.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) ListByHotel(ctx context.Context, hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Preload("Amenities").
		Where("hotel_id = ?", hotelID).
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
