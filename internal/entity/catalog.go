package entity

type Service struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	PriceINR        int      `json:"price_inr,omitempty"`
	Price           string   `json:"price"`
	Keywords        []string `json:"-"`
}

type Event struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Price           string `json:"price"`
	BookingRequired bool   `json:"booking_required"`
}

type ContactInfo struct {
	Phone   string            `json:"phone"`
	Email   string            `json:"email"`
	Address string            `json:"address"`
	Website string            `json:"website"`
	Hours   string            `json:"hours"`
	Social  map[string]string `json:"social"`
}
