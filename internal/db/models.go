package db

import (
	"database/sql"
	"time"
)

const (
	StatusPending         = "pending"
	StatusAwaitingPayment = "awaiting_payment"
	StatusConfirmed       = "confirmed"
	StatusCompleted       = "completed"
	StatusExpired         = "expired"
)

type Booking struct {
	ID            string
	UserID        sql.NullString
	PropertyID    string
	PropertyTitle string
	CheckInDate   time.Time
	Nights        int
	PricePerNight float64
	TotalPrice    float64
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	GuestCPF      string
	Status        string
	PixTxID       sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Property struct {
	ID            string
	Title         string
	City          string
	PricePerNight float64
	ImageURL      string
	MaxGuests     int
	Rating        float64
}
