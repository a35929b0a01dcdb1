package chatService

import (
	"context"
	"errors"
	"time"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"
	"jusbook/pkg/nlp"
	"jusbook/pkg/response"

	"github.com/sirupsen/logrus"
)

// startBooking begins a booking from IDLE. Without a valid, free slot id the
// session stays idle and the user gets the open slots instead.
func (s *chatService) startBooking(ctx context.Context, t *turn) error {
	t.resp.Intent = nlp.IntentBookSlot.String()

	slotEntity, ok := t.analysis.Entities.First(nlp.EntitySlotID)
	if !ok {
		return s.replyPickSlot(ctx, t)
	}

	slot, err := s.bookingService.GetSlot(ctx, slotEntity.Value)
	if errors.Is(err, booking.ErrSlotNotFound) {
		return s.replySlotProblem(ctx, t, slotEntity.Value, err)
	}
	if err != nil {
		return err
	}
	if !slot.IsAvailable() {
		return s.replySlotProblem(ctx, t, slot.ID, booking.ErrSlotUnavailable)
	}

	flow := newPendingFlow(nlp.IntentBookSlot, map[string]string{
		entity.FieldSlotID:  slot.ID,
		entity.FieldService: slot.Service,
	}, s.now)
	for field, value := range collectFields(flow, t.analysis.Entities) {
		flow.Collected[field] = value
	}
	flow.Missing = missingFields(flow)
	t.session.Pending = flow

	if len(flow.Missing) == 0 {
		return s.finalizeBooking(ctx, t)
	}

	s.promptMissing(t, &slot)
	return nil
}

// finalizeBooking commits the pending booking. Slot races and validation
// failures are answered in the conversation; anything else is returned.
func (s *chatService) finalizeBooking(ctx context.Context, t *turn) error {
	flow := t.session.Pending
	slotID := flow.Collected[entity.FieldSlotID]

	created, err := s.bookingService.Book(ctx, booking.BookRequest{
		SlotID:       slotID,
		CustomerName: flow.Collected[entity.FieldCustomerName],
		Contact:      flow.Collected[entity.FieldContact],
		ServiceHint:  flow.Collected[entity.FieldService],
	})

	switch {
	case errors.Is(err, booking.ErrSlotUnavailable), errors.Is(err, booking.ErrSlotNotFound):
		t.session.ClearPending()
		return s.replySlotProblem(ctx, t, slotID, err)
	case errors.Is(err, booking.ErrInvalidCustomerName):
		delete(flow.Collected, entity.FieldCustomerName)
		flow.Missing = missingFields(flow)
		t.resp.ErrorCode = response.KindOf(err)
		t.resp.Reply = renderPrompt(flow, nil)
		return nil
	case errors.Is(err, booking.ErrInvalidContact):
		delete(flow.Collected, entity.FieldContact)
		flow.Missing = missingFields(flow)
		t.resp.ErrorCode = response.KindOf(err)
		t.resp.Reply = renderPrompt(flow, nil)
		return nil
	case err != nil:
		return err
	}

	t.session.ClearPending()
	t.session.LastBookingID = created.ID
	t.session.LastContact = created.Contact
	t.session.LastCustomerName = created.CustomerName

	t.resp.Intent = nlp.IntentBookSlot.String()
	t.resp.Booking = &created
	t.resp.Reply = renderBookingConfirmed(created)

	s.log.WithFields(logrus.Fields{
		"session_id": t.session.Key,
		"booking_id": created.ID,
		"slot_id":    created.SlotID,
	}).Info("Booking completed through chat")

	return nil
}

func (s *chatService) replyPickSlot(ctx context.Context, t *turn) error {
	filter := booking.SlotFilter{Limit: s.config.MaxListedSlots}
	if service, ok := s.bookingService.MatchService(ctx, t.analysis.Raw); ok {
		filter.Service = service.ID
	}

	slots, err := s.bookingService.ListSlots(ctx, filter)
	if err != nil {
		return err
	}

	t.resp.Slots = slots
	t.resp.Reply = renderPickSlot(slots)
	return nil
}

func (s *chatService) replySlotProblem(ctx context.Context, t *turn, slotID string, cause error) error {
	slots, err := s.bookingService.ListSlots(ctx, booking.SlotFilter{Limit: s.config.MaxListedSlots})
	if err != nil {
		return err
	}

	t.resp.ErrorCode = response.KindOf(cause)
	t.resp.Slots = slots
	t.resp.Reply = renderSlotProblem(slotID, cause, slots)
	return nil
}

func resolveDate(value string, now time.Time) string {
	switch value {
	case "today":
		return now.Format(time.DateOnly)
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(time.DateOnly)
	default:
		return value
	}
}
