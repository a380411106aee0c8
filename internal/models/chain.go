package models

import "time"

type HotelChain struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Email        string    `json:"email"`
	StreetNumber int       `json:"street_number"`
	StreetName   string    `json:"street_name"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	Country      string    `json:"country"`
	Zip          string    `json:"zip"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Hotels []Hotel `gorm:"foreignKey:ChainID" json:"hotels,omitempty"`
}
