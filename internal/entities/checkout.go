package entities

import "time"

// Resultados possíveis de um checkout. "payment_failed" sempre carrega o
// booking_id: a reserva existe e só o pagamento precisa ser refeito.
const (
	CheckoutOK            = "ok"
	CheckoutBookingFailed = "booking_failed"
	CheckoutPaymentFailed = "payment_failed"
)

type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
}

type CheckoutRequest struct {
	UserID        string    `json:"user_id,omitempty"`
	PropertyID    string    `json:"property_id"`
	PropertyTitle string    `json:"property_title"`
	CheckInDate   time.Time `json:"check_in_date"`
	Nights        int       `json:"nights"`
	PricePerNight float64   `json:"price_per_night"`
	Guest         Guest     `json:"guest"`
}

type CheckoutResult struct {
	Kind        string  `json:"kind"`
	BookingID   string  `json:"booking_id,omitempty"`
	QRCode      string  `json:"qr_code,omitempty"`
	CopyPaste   string  `json:"copy_paste,omitempty"`
	Message     string  `json:"message,omitempty"`
	Nights      int     `json:"nights,omitempty"`
	TotalPrice  float64 `json:"total_price,omitempty"`
	AmountCents int64   `json:"amount_cents,omitempty"`
}
