package models

import "time"

// Hotel belongs to a chain. Category is a star rating in [1,5], enforced by
// a CHECK constraint created in pkg/database.
type Hotel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ChainID      uint      `gorm:"not null;index" json:"chain_id"`
	Category     int       `gorm:"not null" json:"category"`
	Email        string    `json:"email"`
	StreetNumber int       `json:"street_number"`
	StreetName   string    `json:"street_name"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	Country      string    `json:"country"`
	Zip          string    `json:"zip"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Chain *HotelChain `gorm:"foreignKey:ChainID" json:"chain,omitempty"`
	Rooms []Room      `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}
