package bookingService

import (
	"context"
	"errors"
	"strings"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"
	contextPkg "jusbook/pkg/context"
	"jusbook/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// Book validates req and commits the booking. The slot check and the write
// happen atomically in the repository; a colliding booking id is retried.
func (s *bookingService) Book(ctx context.Context, req booking.BookRequest) (entity.Booking, error) {
	requestID := contextPkg.GetRequestID(ctx)

	slotID := strings.ToUpper(strings.TrimSpace(req.SlotID))
	if slotID == "" {
		return entity.Booking{}, booking.ErrSlotNotFound
	}

	name := strings.Join(strings.Fields(req.CustomerName), " ")
	if len(strings.Fields(name)) < 2 {
		return entity.Booking{}, booking.ErrInvalidCustomerName
	}

	contact, ok := nlp.NormalizePhone(req.Contact)
	if !ok {
		return entity.Booking{}, booking.ErrInvalidContact
	}

	client := s.bookingRepo.NewClient()

	for attempt := 1; attempt <= s.maxIDAttempts; attempt++ {
		bookingID, err := s.utils.NewBookingID()
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate booking id")
			return entity.Booking{}, booking.ErrCreateBooking
		}

		created, err := client.Bookings.CreateBooking(ctx, entity.Booking{
			ID:           bookingID,
			SlotID:       slotID,
			CustomerName: name,
			Contact:      contact,
			CreatedAt:    s.now(),
		})
		if errors.Is(err, booking.ErrDuplicateBookingID) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"booking_id": bookingID,
				"attempt":    attempt,
			}).Warn("Booking id collision, retrying")
			continue
		}
		if err != nil {
			return entity.Booking{}, err
		}

		fields := logrus.Fields{
			"request_id": requestID,
			"booking_id": created.ID,
			"slot_id":    created.SlotID,
			"service":    created.ServiceID,
		}
		if sessionID := contextPkg.GetSessionID(ctx); sessionID != "" {
			fields["session_id"] = sessionID
		}
		s.log.WithFields(fields).Info("Booking confirmed")

		return created, nil
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"slot_id":    slotID,
	}).Error("Exhausted booking id attempts")
	return entity.Booking{}, booking.ErrCreateBooking
}

func (s *bookingService) Cancel(ctx context.Context, bookingID string) (entity.Booking, error) {
	client := s.bookingRepo.NewClient()

	cancelled, err := client.Bookings.CancelBooking(ctx, strings.TrimSpace(bookingID), s.now())
	if err != nil {
		return cancelled, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"booking_id": cancelled.ID,
		"slot_id":    cancelled.SlotID,
	}).Info("Booking cancelled")

	return cancelled, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (entity.Booking, error) {
	return s.bookingRepo.NewClient().Bookings.GetBookingByID(ctx, strings.TrimSpace(bookingID))
}

func (s *bookingService) ListBookings(ctx context.Context, filter booking.BookingFilter) ([]entity.Booking, error) {
	if filter.Contact != "" {
		contact, ok := nlp.NormalizePhone(filter.Contact)
		if !ok {
			return nil, booking.ErrInvalidContact
		}
		filter.Contact = contact
	}

	return s.bookingRepo.NewClient().Bookings.ListBookings(ctx, filter)
}

func (s *bookingService) GetStatistics(ctx context.Context) (booking.Statistics, error) {
	client := s.bookingRepo.NewClient()

	total, available, err := client.Slots.CountSlots(ctx)
	if err != nil {
		return booking.Statistics{}, err
	}

	bookings, err := client.Bookings.ListBookings(ctx, booking.BookingFilter{})
	if err != nil {
		return booking.Statistics{}, err
	}

	services, err := client.Catalog.GetServices(ctx)
	if err != nil {
		return booking.Statistics{}, err
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		return booking.Statistics{}, err
	}

	stats := booking.Statistics{
		TotalSlots:     total,
		AvailableSlots: available,
		BookedSlots:    total - available,
		Services:       len(services),
		UpcomingEvents: len(events),
	}
	for _, b := range bookings {
		if b.IsActive() {
			stats.ConfirmedBookings++
		} else {
			stats.CancelledBookings++
		}
	}
	if total > 0 {
		stats.OccupancyRate = float64(int(float64(stats.BookedSlots)/float64(total)*1000+0.5)) / 10
	}

	return stats, nil
}
