package entity

import (
	"fmt"
	"time"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

type Slot struct {
	ID              string     `json:"slot_id"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	StartsAt        time.Time  `json:"starts_at"`
	ServiceID       string     `json:"service_id"`
	Service         string     `json:"service"`
	DurationMinutes int        `json:"duration_minutes"`
	Price           string     `json:"price"`
	Status          SlotStatus `json:"status"`
	BookingID       string     `json:"booking_id,omitempty"`
}

func (s Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

func (s Slot) Label() string {
	return fmt.Sprintf("%s - %s on %s at %s", s.ID, s.Service, s.StartsAt.Format("Mon, 02 Jan"), s.Time)
}
