package models

type Amenity struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RoomID      uint   `gorm:"not null;index" json:"room_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
}
