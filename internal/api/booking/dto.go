package booking

import "jusbook/internal/entity"

type SlotFilter struct {
	Date          string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Service       string `query:"service" validate:"omitempty,max=64"`
	IncludeBooked bool   `query:"include_booked"`
	Limit         int    `query:"limit" validate:"omitempty,min=1,max=200"`
}

type BookingFilter struct {
	Contact string               `query:"contact" validate:"omitempty,max=32"`
	Date    string               `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Status  entity.BookingStatus `query:"status" validate:"omitempty,oneof=confirmed cancelled"`
}

type BookRequest struct {
	SlotID       string `json:"slot_id" validate:"required,max=32"`
	CustomerName string `json:"customer_name" validate:"required,min=3,max=100"`
	Contact      string `json:"contact" validate:"required,max=32"`
	ServiceHint  string `json:"service,omitempty" validate:"omitempty,max=64"`
}

type CancelResponse struct {
	Message string         `json:"message"`
	Booking entity.Booking `json:"booking"`
}

type SlotListResponse struct {
	Date  string        `json:"date,omitempty"`
	Count int           `json:"count"`
	Slots []entity.Slot `json:"slots"`
}

type BookingListResponse struct {
	Count    int              `json:"count"`
	Bookings []entity.Booking `json:"bookings"`
}

type ServiceListResponse struct {
	Count    int              `json:"count"`
	Services []entity.Service `json:"services"`
}

type EventListResponse struct {
	Count  int            `json:"count"`
	Events []entity.Event `json:"events"`
}

type Statistics struct {
	TotalSlots        int     `json:"total_slots"`
	AvailableSlots    int     `json:"available_slots"`
	BookedSlots       int     `json:"booked_slots"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	OccupancyRate     float64 `json:"occupancy_rate"`
	Services          int     `json:"services"`
	UpcomingEvents    int     `json:"upcoming_events"`
}
