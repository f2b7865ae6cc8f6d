package entities

import "time"

type ReservationResponse struct {
	ID            string    `json:"id"`
	PropertyID    string    `json:"property_id"`
	PropertyTitle string    `json:"property_title"`
	CheckInDate   time.Time `json:"check_in_date"`
	Nights        int       `json:"nights"`
	PricePerNight float64   `json:"price_per_night"`
	TotalPrice    float64   `json:"total_price"`
	GuestName     string    `json:"guest_name"`
	GuestEmail    string    `json:"guest_email"`
	GuestPhone    string    `json:"guest_phone"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationsList struct {
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
	Reservations []ReservationResponse `json:"reservations"`
}

type ReservationEmailData struct {
	GuestName      string
	BookingID      string
	PropertyTitle  string
	CheckInDate    string
	Nights         int
	TotalFormatted string
	CurrentYear    int
	Status         string
}
