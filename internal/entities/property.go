package entities

type PropertyResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	City          string  `json:"city"`
	PricePerNight float64 `json:"price_per_night"`
	ImageURL      string  `json:"image_url"`
	MaxGuests     int     `json:"max_guests"`
	Rating        float64 `json:"rating"`
}

type PropertyFilters struct {
	City     string
	MinPrice float64
	MaxPrice float64
	Guests   int
}
