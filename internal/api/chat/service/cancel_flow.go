package chatService

import (
	"context"
	"errors"

	"jusbook/internal/api/booking"
	"jusbook/pkg/nlp"
	"jusbook/pkg/response"
)

// startCancel cancels right away when the message names a booking id,
// otherwise waits for one.
func (s *chatService) startCancel(ctx context.Context, t *turn) error {
	t.resp.Intent = nlp.IntentCancelBooking.String()

	if id, ok := t.analysis.Entities.First(nlp.EntityBookingID); ok {
		return s.executeCancel(ctx, t, id.Value)
	}

	t.session.Pending = newPendingFlow(nlp.IntentCancelBooking, nil, s.now)
	t.resp.Reply = renderCancelPrompt(t.session.LastBookingID)
	return nil
}

func (s *chatService) executeCancel(ctx context.Context, t *turn, bookingID string) error {
	t.resp.Intent = nlp.IntentCancelBooking.String()
	t.session.ClearPending()

	cancelled, err := s.bookingService.Cancel(ctx, bookingID)
	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		t.resp.ErrorCode = response.KindOf(err)
		t.resp.Reply = renderBookingNotFound(bookingID)
		return nil
	case errors.Is(err, booking.ErrAlreadyCancelled):
		t.resp.ErrorCode = response.KindOf(err)
		t.resp.Reply = renderAlreadyCancelled(bookingID)
		return nil
	case err != nil:
		return err
	}

	if t.session.LastBookingID == cancelled.ID {
		t.session.LastBookingID = ""
	}

	t.resp.Booking = &cancelled
	t.resp.Reply = renderBookingCancelled(cancelled)
	return nil
}
