package entity

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID           string        `json:"booking_id"`
	SlotID       string        `json:"slot_id"`
	CustomerName string        `json:"customer_name"`
	Contact      string        `json:"contact"`
	ServiceID    string        `json:"service_id"`
	Service      string        `json:"service"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	CancelledAt  *time.Time    `json:"cancelled_at,omitempty"`
}

func (b Booking) IsActive() bool {
	return b.Status == BookingStatusConfirmed
}
