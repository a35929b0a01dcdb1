package chatService

import (
	"context"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"
	"jusbook/pkg/nlp"
)

func (s *chatService) replyServices(ctx context.Context, t *turn) error {
	services, err := s.bookingService.ListServices(ctx)
	if err != nil {
		return err
	}
	t.resp.Reply = renderServices(services)
	return nil
}

func (s *chatService) replyContact(ctx context.Context, t *turn) error {
	contact, err := s.bookingService.GetContactInfo(ctx)
	if err != nil {
		return err
	}
	t.resp.Reply = renderContact(contact)
	return nil
}

// replySlots lists open slots, narrowed by a date or service named in the message.
func (s *chatService) replySlots(ctx context.Context, t *turn) error {
	filter := booking.SlotFilter{Limit: s.config.MaxListedSlots}

	if date, ok := t.analysis.Entities.First(nlp.EntityDate); ok {
		filter.Date = resolveDate(date.Value, s.now())
	}
	serviceName := ""
	if service, ok := s.bookingService.MatchService(ctx, t.analysis.Raw); ok {
		filter.Service = service.ID
		serviceName = service.Name
	}

	slots, err := s.bookingService.ListSlots(ctx, filter)
	if err != nil {
		return err
	}

	total := len(slots)
	if len(slots) == filter.Limit {
		unlimited := filter
		unlimited.Limit = 0
		all, err := s.bookingService.ListSlots(ctx, unlimited)
		if err != nil {
			return err
		}
		total = len(all)
	}

	t.resp.Slots = slots
	t.resp.Reply = renderSlots(slots, total, filter.Date, serviceName)
	return nil
}

// replyEvents lists upcoming events, plus the caller's bookings once a
// booking in this session has told us their contact.
func (s *chatService) replyEvents(ctx context.Context, t *turn) error {
	events, err := s.bookingService.ListEvents(ctx)
	if err != nil {
		return err
	}

	var bookings []entity.Booking
	if t.session.LastContact != "" {
		bookings, err = s.bookingService.ListBookings(ctx, booking.BookingFilter{
			Contact: t.session.LastContact,
			Status:  entity.BookingStatusConfirmed,
		})
		if err != nil {
			return err
		}
		if len(bookings) > s.config.MaxListedBookings {
			bookings = bookings[len(bookings)-s.config.MaxListedBookings:]
		}
	}

	t.resp.Reply = renderEvents(events, bookings)
	return nil
}
