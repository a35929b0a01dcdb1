package bookingRepository

import (
	"context"
	"strings"
	"time"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"
	contextPkg "jusbook/pkg/context"

	"github.com/sirupsen/logrus"
)

// CreateBooking marks the slot booked and stores b in one critical section.
// Service, date and time are copied from the slot.
func (r *bookingRepository) CreateBooking(ctx context.Context, b entity.Booking) (entity.Booking, error) {
	requestID := contextPkg.GetRequestID(ctx)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	slot, ok := r.store.slots[strings.ToUpper(b.SlotID)]
	if !ok {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slot_id":    b.SlotID,
		}).Warn("CreateBooking slot not found")
		return entity.Booking{}, booking.ErrSlotNotFound
	}

	if !slot.IsAvailable() {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slot_id":    b.SlotID,
			"booking_id": slot.BookingID,
		}).Warn("CreateBooking slot already booked")
		return entity.Booking{}, booking.ErrSlotUnavailable
	}

	if _, exists := r.store.bookings[b.ID]; exists {
		return entity.Booking{}, booking.ErrDuplicateBookingID
	}

	b.SlotID = slot.ID
	b.ServiceID = slot.ServiceID
	b.Service = slot.Service
	b.Date = slot.Date
	b.Time = slot.Time
	b.Status = entity.BookingStatusConfirmed

	slot.Status = entity.SlotStatusBooked
	slot.BookingID = b.ID
	r.store.slots[slot.ID] = slot
	r.store.bookings[b.ID] = b
	r.store.bookingOrder = append(r.store.bookingOrder, b.ID)

	return b, nil
}

// CancelBooking marks the booking cancelled and releases its slot.
func (r *bookingRepository) CancelBooking(ctx context.Context, id string, at time.Time) (entity.Booking, error) {
	requestID := contextPkg.GetRequestID(ctx)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[strings.ToUpper(id)]
	if !ok {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"booking_id": id,
		}).Warn("CancelBooking booking not found")
		return entity.Booking{}, booking.ErrBookingNotFound
	}

	if b.Status == entity.BookingStatusCancelled {
		return b, booking.ErrAlreadyCancelled
	}

	b.Status = entity.BookingStatusCancelled
	b.CancelledAt = &at
	r.store.bookings[b.ID] = b

	if slot, ok := r.store.slots[b.SlotID]; ok && slot.BookingID == b.ID {
		slot.Status = entity.SlotStatusAvailable
		slot.BookingID = ""
		r.store.slots[slot.ID] = slot
	}

	return b, nil
}

func (r *bookingRepository) GetBookingByID(ctx context.Context, id string) (entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[strings.ToUpper(id)]
	if !ok {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"booking_id": id,
		}).Warn("GetBookingByID booking not found")
		return entity.Booking{}, booking.ErrBookingNotFound
	}

	return b, nil
}

func (r *bookingRepository) ListBookings(ctx context.Context, filter booking.BookingFilter) ([]entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	bookings := make([]entity.Booking, 0)
	for _, id := range r.store.bookingOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b := r.store.bookings[id]
		if filter.Contact != "" && b.Contact != filter.Contact {
			continue
		}
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}
