package api

// Checkout
type CheckoutGuest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
}

type CheckoutRequest struct {
	UserID        string        `json:"user_id,omitempty"`
	PropertyID    string        `json:"property_id"`
	PropertyTitle string        `json:"property_title"`
	CheckInDate   string        `json:"check_in_date"` // yyyy-MM-dd
	Nights        int           `json:"nights"`
	PricePerNight float64       `json:"price_per_night"`
	Guest         CheckoutGuest `json:"guest"`
}

// Webhook do gateway PIX
type PixWebhookPayload struct {
	Event     string `json:"event"`
	BookingID string `json:"bookingId"`
	TxID      string `json:"txid"`
}
