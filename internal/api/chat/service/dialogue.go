package chatService

import (
	"context"
	"time"

	"jusbook/internal/entity"
	"jusbook/pkg/nlp"

	"github.com/sirupsen/logrus"
)

var requiredFields = map[nlp.Intent][]string{
	nlp.IntentBookSlot:      {entity.FieldSlotID, entity.FieldCustomerName, entity.FieldContact},
	nlp.IntentCancelBooking: {entity.FieldBookingID},
}

// Intents that may abandon a pending flow when the message fills none of its fields.
var overrideIntents = map[nlp.Intent]bool{
	nlp.IntentGreeting:      true,
	nlp.IntentHelp:          true,
	nlp.IntentCancelBooking: true,
}

// dispatch handles a message while no flow is pending.
func (s *chatService) dispatch(ctx context.Context, t *turn) error {
	switch t.result.Intent {
	case nlp.IntentGreeting:
		t.resp.Reply = renderGreeting(t.session.LastCustomerName)
	case nlp.IntentHelp:
		t.resp.Reply = renderHelp()
	case nlp.IntentListServices:
		return s.replyServices(ctx, t)
	case nlp.IntentContactInfo:
		return s.replyContact(ctx, t)
	case nlp.IntentListSlots:
		return s.replySlots(ctx, t)
	case nlp.IntentListEvents:
		return s.replyEvents(ctx, t)
	case nlp.IntentBookSlot:
		return s.startBooking(ctx, t)
	case nlp.IntentCancelBooking:
		return s.startCancel(ctx, t)
	default:
		t.resp.Reply = renderFallback(t.analysis)
	}
	return nil
}

// continueFlow feeds a message into the pending flow.
func (s *chatService) continueFlow(ctx context.Context, t *turn) error {
	flow := t.session.Pending
	found := collectFields(flow, t.analysis.Entities)

	if overrideIntents[t.result.Intent] && len(found) == 0 {
		s.log.WithFields(logrus.Fields{
			"session_id":     t.session.Key,
			"pending_intent": flow.Intent,
			"intent":         t.result.Intent,
		}).Info("Pending flow abandoned")

		t.session.ClearPending()

		// "cancel" mid-booking stops the booking; it never cancels an older one.
		if flow.Intent == nlp.IntentBookSlot && t.result.Intent == nlp.IntentCancelBooking &&
			!t.analysis.Entities.Has(nlp.EntityBookingID) {
			t.resp.Intent = nlp.IntentCancelBooking.String()
			t.resp.Reply = renderBookingAborted()
			return nil
		}
		return s.dispatch(ctx, t)
	}

	if flow.Intent == nlp.IntentBookSlot {
		if slot, ok := t.analysis.Entities.First(nlp.EntitySlotID); ok && slot.Value != flow.Collected[entity.FieldSlotID] {
			t.session.ClearPending()
			return s.startBooking(ctx, t)
		}
	}

	t.resp.Intent = flow.Intent.String()
	for field, value := range found {
		flow.Collected[field] = value
	}
	flow.Missing = missingFields(flow)

	if len(flow.Missing) == 0 {
		return s.completeFlow(ctx, t)
	}

	flow.Prompts++
	s.promptMissing(t, nil)
	return nil
}

func (s *chatService) completeFlow(ctx context.Context, t *turn) error {
	switch t.session.Pending.Intent {
	case nlp.IntentBookSlot:
		return s.finalizeBooking(ctx, t)
	case nlp.IntentCancelBooking:
		return s.executeCancel(ctx, t, t.session.Pending.Collected[entity.FieldBookingID])
	default:
		t.session.ClearPending()
		return s.dispatch(ctx, t)
	}
}

// promptMissing asks for whatever the pending flow still needs. A phone-like
// value that failed validation gets a targeted re-prompt.
func (s *chatService) promptMissing(t *turn, slot *entity.Slot) {
	flow := t.session.Pending

	if invalid, ok := t.analysis.Entities.InvalidOf(nlp.EntityPhone); ok && contains(flow.Missing, entity.FieldContact) {
		t.resp.ErrorCode = "INVALID_ENTITY_FORMAT"
		t.resp.Reply = renderInvalidContact(invalid.Raw, flow)
		return
	}

	t.resp.Reply = renderPrompt(flow, slot)
}

func newPendingFlow(intent nlp.Intent, collected map[string]string, now func() time.Time) *entity.PendingFlow {
	if collected == nil {
		collected = make(map[string]string)
	}
	flow := &entity.PendingFlow{
		Intent:    intent,
		Collected: collected,
		StartedAt: now(),
	}
	flow.Missing = missingFields(flow)
	return flow
}

func missingFields(flow *entity.PendingFlow) []string {
	var missing []string
	for _, field := range requiredFields[flow.Intent] {
		if flow.Collected[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// collectFields extracts values for the flow's missing fields only.
func collectFields(flow *entity.PendingFlow, entities nlp.Entities) map[string]string {
	found := make(map[string]string)
	for _, field := range flow.Missing {
		var kind nlp.EntityKind
		switch field {
		case entity.FieldSlotID:
			kind = nlp.EntitySlotID
		case entity.FieldCustomerName:
			kind = nlp.EntityPersonName
		case entity.FieldContact:
			kind = nlp.EntityPhone
		case entity.FieldBookingID:
			kind = nlp.EntityBookingID
		default:
			continue
		}
		if e, ok := entities.First(kind); ok {
			found[field] = e.Value
		}
	}
	return found
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
