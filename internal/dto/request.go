package dto

type CreateBookingRequest struct {
	CustomerID uint   `json:"customer_id"`
	CheckIn    string `json:"check_in"`  // YYYY-MM-DD
	CheckOut   string `json:"check_out"` // YYYY-MM-DD
}
