package models

import "time"

// Room number is unique within its hotel (composite unique index in
// pkg/database). Damaged rooms stay in the inventory but are never offered
// by availability search.
type Room struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HotelID      uint      `gorm:"not null;index" json:"hotel_id"`
	RoomNumber   int       `gorm:"not null" json:"room_number"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	Price        float64   `gorm:"not null" json:"price"`
	SeaView      bool      `gorm:"not null;default:false" json:"sea_view"`
	MountainView bool      `gorm:"not null;default:false" json:"mountain_view"`
	Damaged      bool      `gorm:"not null;default:false" json:"damaged"`
	Extendable   bool      `gorm:"not null;default:false" json:"extendable"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Hotel     *Hotel    `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Amenities []Amenity `gorm:"foreignKey:RoomID" json:"amenities,omitempty"`
}
