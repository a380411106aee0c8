package models

import "time"

// StayRange is a half-open date interval [CheckIn, CheckOut): the check-in
// day is occupied, the check-out day is free for the next guest.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) StayRange {
	return StayRange{CheckIn: checkIn, CheckOut: checkOut}
}

// Valid reports whether the range is non-empty and not inverted.
func (s StayRange) Valid() bool {
	return s.CheckIn.Before(s.CheckOut)
}

// Overlaps reports whether two half-open ranges intersect. Ranges that only
// touch at an endpoint do not overlap.
func (s StayRange) Overlaps(o StayRange) bool {
	return s.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(s.CheckOut)
}

// Nights returns the number of nights covered by the range.
func (s StayRange) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}
