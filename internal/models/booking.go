package models

import "time"

// Booking is one ledger entry: a room held for a customer over a half-open
// stay range. EmployeeID records who created the booking and is nil for
// customer self-service bookings. CheckedIn and Paid only ever transition
// false -> true; a booking leaves the ledger only through administrative
// cancellation.
type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomID     uint      `gorm:"not null;index:idx_bookings_room_stay,priority:1" json:"room_id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	EmployeeID *uint     `json:"employee_id,omitempty"`
	ReservedAt time.Time `gorm:"not null" json:"reserved_at"`
	CheckIn    time.Time `gorm:"not null;index:idx_bookings_room_stay,priority:2" json:"check_in"`
	CheckOut   time.Time `gorm:"not null;index:idx_bookings_room_stay,priority:3" json:"check_out"`
	CheckedIn  bool      `gorm:"not null;default:false" json:"checked_in"`
	Paid       bool      `gorm:"not null;default:false" json:"paid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Room     *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// Stay returns the booking's occupied range.
func (b *Booking) Stay() StayRange {
	return StayRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}
