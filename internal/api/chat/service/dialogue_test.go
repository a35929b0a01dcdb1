package chatService

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	bookingRepository "jusbook/internal/api/booking/repository"
	bookingService "jusbook/internal/api/booking/service"
	"jusbook/internal/api/chat"
	chatRepository "jusbook/internal/api/chat/repository"
	"jusbook/internal/entity"
	"jusbook/pkg/nlp"
	"jusbook/pkg/utils"

	"github.com/sirupsen/logrus"
)

var testNow = time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)

type harness struct {
	svc      *chatService
	bookings bookingService.IBookingService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	services := bookingRepository.DefaultServices()
	seed := bookingRepository.Seed{
		Services: services,
		Slots: []entity.Slot{
			{ID: "SL0921", Date: "2026-09-21", Time: "10:00 AM", StartsAt: testNow.Add(22 * time.Hour), ServiceID: "haircut", Service: "Haircut & Styling", DurationMinutes: 45, Price: "₹500", Status: entity.SlotStatusAvailable},
			{ID: "SL0922", Date: "2026-09-22", Time: "11:00 AM", StartsAt: testNow.Add(47 * time.Hour), ServiceID: "facial", Service: "Facial Treatment", DurationMinutes: 60, Price: "₹800", Status: entity.SlotStatusAvailable},
		},
		Events:  bookingRepository.DefaultEvents(time.Now()),
		Contact: bookingRepository.DefaultContact(),
	}

	u := utils.New()
	bookings := bookingService.NewBookingService(logger, bookingRepository.New(logger, seed), u)
	store := chatRepository.NewMemoryStore(logger, chatRepository.StoreConfig{Now: func() time.Time { return testNow }})

	svc := NewChatService(logger, store, bookings, nlp.NewProcessor(), u, nil).(*chatService)
	svc.now = func() time.Time { return testNow }

	return &harness{svc: svc, bookings: bookings}
}

func (h *harness) say(t *testing.T, sessionID, message string) *chat.ChatResponse {
	t.Helper()

	resp, err := h.svc.ProcessMessage(context.Background(), chat.ChatRequest{Message: &message, SessionID: sessionID})
	if err != nil {
		t.Fatalf("ProcessMessage(%q) error = %v", message, err)
	}
	return resp
}

func TestGreetingStaysIdle(t *testing.T) {
	h := newHarness(t)

	resp := h.say(t, "s1", "Hi")
	if resp.Intent != "greeting" || resp.State != string(entity.DialogueStateIdle) {
		t.Fatalf("got intent=%s state=%s", resp.Intent, resp.State)
	}
	if !strings.Contains(resp.Reply, "Welcome") {
		t.Errorf("reply = %q", resp.Reply)
	}
	if resp.SessionID != "s1" {
		t.Errorf("SessionID = %q", resp.SessionID)
	}
}

func TestGeneratesSessionID(t *testing.T) {
	h := newHarness(t)

	resp := h.say(t, "", "hello")
	if resp.SessionID == "" {
		t.Fatal("expected a generated session id")
	}

	session, err := h.svc.GetSession(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if session.TurnCount != 1 {
		t.Errorf("TurnCount = %d, want 1", session.TurnCount)
	}
}

func TestBookingConversation(t *testing.T) {
	h := newHarness(t)

	resp := h.say(t, "s1", "Book slot SL0921")
	if resp.State != string(entity.DialogueStateAwaitingFields) || resp.PendingIntent != "book_slot" {
		t.Fatalf("got state=%s pending=%s", resp.State, resp.PendingIntent)
	}
	if strings.Join(resp.MissingFields, ",") != "customer_name,contact" {
		t.Errorf("MissingFields = %v", resp.MissingFields)
	}

	resp = h.say(t, "s1", "Alice Johnson, 9988776655")
	if resp.State != string(entity.DialogueStateIdle) {
		t.Fatalf("state = %s, reply = %q", resp.State, resp.Reply)
	}
	if resp.Booking == nil {
		t.Fatal("expected a booking")
	}
	if resp.Booking.SlotID != "SL0921" || resp.Booking.CustomerName != "Alice Johnson" || resp.Booking.Contact != "9988776655" {
		t.Errorf("booking = %+v", resp.Booking)
	}
	if !strings.Contains(resp.Reply, resp.Booking.ID) {
		t.Errorf("reply %q does not mention %s", resp.Reply, resp.Booking.ID)
	}

	slot, err := h.bookings.GetSlot(context.Background(), "SL0921")
	if err != nil {
		t.Fatalf("GetSlot() error = %v", err)
	}
	if slot.IsAvailable() {
		t.Error("slot should be booked")
	}

	session, _ := h.svc.GetSession(context.Background(), "s1")
	if session.LastBookingID != resp.Booking.ID {
		t.Errorf("LastBookingID = %q", session.LastBookingID)
	}
}

func TestBookingFieldsInEitherOrder(t *testing.T) {
	h := newHarness(t)

	h.say(t, "s1", "book slot SL0922")

	resp := h.say(t, "s1", "9988776655")
	if strings.Join(resp.MissingFields, ",") != "customer_name" {
		t.Fatalf("MissingFields = %v", resp.MissingFields)
	}
	if resp.Intent != "book_slot" {
		t.Errorf("Intent = %s", resp.Intent)
	}

	resp = h.say(t, "s1", "Bob Smith")
	if resp.Booking == nil || resp.Booking.CustomerName != "Bob Smith" {
		t.Fatalf("booking = %+v, reply = %q", resp.Booking, resp.Reply)
	}
}

func TestBookingInSingleMessage(t *testing.T) {
	h := newHarness(t)

	resp := h.say(t, "s1", "Book slot SL0922 for Alice Johnson, 9988776655")
	if resp.Booking == nil {
		t.Fatalf("expected a booking, reply = %q", resp.Reply)
	}
	if resp.State != string(entity.DialogueStateIdle) {
		t.Errorf("state = %s", resp.State)
	}
}

func TestOverrideAbandonsPendingFlow(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantIntent string
	}{
		{name: "help", message: "help", wantIntent: "help"},
		{name: "greeting", message: "hello", wantIntent: "greeting"},
		{name: "cancel", message: "cancel", wantIntent: "cancel_booking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.say(t, "s1", "Book slot SL0921")

			resp := h.say(t, "s1", tt.message)
			if resp.Intent != tt.wantIntent {
				t.Errorf("Intent = %s, want %s", resp.Intent, tt.wantIntent)
			}
			if resp.State != string(entity.DialogueStateIdle) {
				t.Errorf("state = %s, want idle", resp.State)
			}

			slot, _ := h.bookings.GetSlot(context.Background(), "SL0921")
			if !slot.IsAvailable() {
				t.Error("slot must stay available")
			}
		})
	}
}

func TestCancelMidBookingKeepsEarlierBooking(t *testing.T) {
	h := newHarness(t)

	first := h.say(t, "s1", "Book slot SL0921 for Alice Johnson, 9988776655")
	if first.Booking == nil {
		t.Fatalf("expected a booking, reply = %q", first.Reply)
	}

	h.say(t, "s1", "book slot SL0922")
	resp := h.say(t, "s1", "cancel")
	if resp.Booking != nil {
		t.Errorf("no booking should be touched, got %+v", resp.Booking)
	}

	got, err := h.bookings.GetBooking(context.Background(), first.Booking.ID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if !got.IsActive() {
		t.Error("earlier booking was cancelled")
	}
}

func TestMalformedPhoneReprompts(t *testing.T) {
	h := newHarness(t)
	h.say(t, "s1", "Book slot SL0921")

	resp := h.say(t, "s1", "Alice Johnson, 1234567")
	if resp.ErrorCode != "INVALID_ENTITY_FORMAT" {
		t.Fatalf("ErrorCode = %q, reply = %q", resp.ErrorCode, resp.Reply)
	}
	if strings.Join(resp.MissingFields, ",") != "contact" {
		t.Errorf("MissingFields = %v", resp.MissingFields)
	}

	resp = h.say(t, "s1", "9988776655")
	if resp.Booking == nil || resp.Booking.CustomerName != "Alice Johnson" {
		t.Fatalf("booking = %+v, reply = %q", resp.Booking, resp.Reply)
	}
}

func TestUnknownAndBookedSlots(t *testing.T) {
	h := newHarness(t)

	resp := h.say(t, "s1", "Book slot SL9999")
	if resp.ErrorCode != "SLOT_NOT_FOUND" || resp.State != string(entity.DialogueStateIdle) {
		t.Fatalf("got error=%q state=%s", resp.ErrorCode, resp.State)
	}
	if len(resp.Slots) != 2 {
		t.Errorf("expected alternatives, got %d", len(resp.Slots))
	}

	h.say(t, "s2", "Book slot SL0921 for Alice Johnson, 9988776655")

	resp = h.say(t, "s1", "SL0921")
	if resp.ErrorCode != "SLOT_UNAVAILABLE" {
		t.Fatalf("ErrorCode = %q", resp.ErrorCode)
	}
}

func TestBookWithoutSlotListsSlots(t *testing.T) {
	h := newHarness(t)

	resp := h.say(t, "s1", "I want to book an appointment")
	if resp.State != string(entity.DialogueStateIdle) {
		t.Errorf("state = %s", resp.State)
	}
	if len(resp.Slots) == 0 {
		t.Error("expected open slots in the reply")
	}
}

func TestCancelFlows(t *testing.T) {
	h := newHarness(t)

	booked := h.say(t, "s1", "Book slot SL0921 for Alice Johnson, 9988776655").Booking
	if booked == nil {
		t.Fatal("expected a booking")
	}

	resp := h.say(t, "s1", "I want to cancel my booking")
	if resp.State != string(entity.DialogueStateAwaitingFields) || resp.PendingIntent != "cancel_booking" {
		t.Fatalf("got state=%s pending=%s", resp.State, resp.PendingIntent)
	}
	if !strings.Contains(resp.Reply, booked.ID) {
		t.Errorf("prompt %q should suggest %s", resp.Reply, booked.ID)
	}

	resp = h.say(t, "s1", booked.ID)
	if resp.Booking == nil || resp.Booking.Status != entity.BookingStatusCancelled {
		t.Fatalf("booking = %+v, reply = %q", resp.Booking, resp.Reply)
	}
	if resp.State != string(entity.DialogueStateIdle) {
		t.Errorf("state = %s", resp.State)
	}

	resp = h.say(t, "s1", "cancel "+booked.ID)
	if resp.ErrorCode != "ALREADY_CANCELLED" {
		t.Errorf("ErrorCode = %q", resp.ErrorCode)
	}

	resp = h.say(t, "s1", "cancel BK0000000X")
	if resp.ErrorCode != "BOOKING_NOT_FOUND" {
		t.Errorf("ErrorCode = %q", resp.ErrorCode)
	}

	slot, _ := h.bookings.GetSlot(context.Background(), "SL0921")
	if !slot.IsAvailable() {
		t.Error("cancelled slot should be released")
	}
}

func TestInformationalIntents(t *testing.T) {
	tests := []struct {
		message    string
		wantIntent string
		wantReply  string
	}{
		{message: "what services do you offer", wantIntent: "list_services", wantReply: "Haircut & Styling"},
		{message: "contact information", wantIntent: "contact_info", wantReply: "contact@jusbook.com"},
		{message: "show available slots", wantIntent: "list_slots", wantReply: "SL0921"},
		{message: "upcoming events", wantIntent: "list_events", wantReply: "Skincare Workshop"},
	}

	h := newHarness(t)
	for _, tt := range tests {
		t.Run(tt.wantIntent, func(t *testing.T) {
			resp := h.say(t, "s1", tt.message)
			if resp.Intent != tt.wantIntent {
				t.Fatalf("Intent = %s, want %s", resp.Intent, tt.wantIntent)
			}
			if !strings.Contains(resp.Reply, tt.wantReply) {
				t.Errorf("reply %q missing %q", resp.Reply, tt.wantReply)
			}
		})
	}
}

func TestSlotsFilteredByDate(t *testing.T) {
	h := newHarness(t)

	resp := h.say(t, "s1", "slots tomorrow")
	if len(resp.Slots) != 1 || resp.Slots[0].ID != "SL0921" {
		t.Fatalf("slots = %+v", resp.Slots)
	}
}

func TestEventsIncludeOwnBookings(t *testing.T) {
	h := newHarness(t)

	booked := h.say(t, "s1", "Book slot SL0921 for Alice Johnson, 9988776655").Booking
	if booked == nil {
		t.Fatal("expected a booking")
	}

	resp := h.say(t, "s1", "upcoming events")
	if !strings.Contains(resp.Reply, booked.ID) {
		t.Errorf("reply %q should list %s", resp.Reply, booked.ID)
	}

	other := h.say(t, "s2", "upcoming events")
	if strings.Contains(other.Reply, booked.ID) {
		t.Error("bookings leaked into another session")
	}
}

func TestEmptyMessageFallsBack(t *testing.T) {
	h := newHarness(t)

	resp := h.say(t, "s1", "   ")
	if resp.Intent != "unknown" || resp.Confidence != 0 {
		t.Fatalf("got intent=%s confidence=%v", resp.Intent, resp.Confidence)
	}
	if resp.Reply == "" {
		t.Error("expected a fallback reply")
	}
}

func TestFallbackHints(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "how much does it cost", want: "price list"},
		{text: "where do I find you", want: "address"},
		{text: "blah blah", want: "help"},
	}

	p := nlp.NewProcessor()
	for _, tt := range tests {
		got := renderFallback(p.Analyze(tt.text))
		if !strings.Contains(got, tt.want) {
			t.Errorf("renderFallback(%q) = %q, want it to mention %q", tt.text, got, tt.want)
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t)

	h.say(t, "a", "Book slot SL0921")
	resp := h.say(t, "b", "Alice Johnson, 9988776655")
	if resp.Booking != nil {
		t.Fatal("session b must not complete session a's booking")
	}

	session, err := h.svc.GetSession(context.Background(), "a")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if session.State != string(entity.DialogueStateAwaitingFields) {
		t.Errorf("session a state = %s", session.State)
	}
}

func TestResetSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.say(t, "s1", "Book slot SL0921")
	if err := h.svc.ResetSession(ctx, "s1"); err != nil {
		t.Fatalf("ResetSession() error = %v", err)
	}

	session, err := h.svc.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if session.State != string(entity.DialogueStateIdle) || session.TurnCount != 0 {
		t.Errorf("session = %+v", session)
	}

	if err := h.svc.ResetSession(ctx, " "); err != chat.ErrEmptySessionID {
		t.Errorf("ResetSession(blank) error = %v", err)
	}
}

func TestConcurrentTurnsOnOneSession(t *testing.T) {
	h := newHarness(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := "hello"
			if _, err := h.svc.ProcessMessage(context.Background(), chat.ChatRequest{Message: &msg, SessionID: "shared"}); err != nil {
				t.Errorf("ProcessMessage() error = %v", err)
			}
		}()
	}
	wg.Wait()

	session, _ := h.svc.GetSession(context.Background(), "shared")
	if session.TurnCount != 20 {
		t.Errorf("TurnCount = %d, want 20", session.TurnCount)
	}
	if n := h.svc.locks.size(); n != 0 {
		t.Errorf("locker kept %d entries", n)
	}
}

func TestClassify(t *testing.T) {
	h := newHarness(t)

	resp, err := h.svc.Classify(context.Background(), chat.ClassifyRequest{Message: "cancel BK1A2B3C4D"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if resp.Intent != "cancel_booking" {
		t.Errorf("Intent = %s", resp.Intent)
	}
	if len(resp.Entities) != 1 || resp.Entities[0].Value != "BK1A2B3C4D" {
		t.Errorf("Entities = %+v", resp.Entities)
	}
}

func TestBookingReplyShapes(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "contraction before name", reply: "I'm Alice Johnson, 9988776655"},
		{name: "contraction without comma", reply: "It's Alice Johnson 9988776655"},
		{name: "phone grouped five and five", reply: "Alice Johnson, 99887 76655"},
		{name: "phone with country code", reply: "Alice Johnson, +91 99887 76655"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.say(t, "s1", "Book slot SL0922")

			resp := h.say(t, "s1", tt.reply)
			if resp.Booking == nil {
				t.Fatalf("expected a booking, state=%s missing=%v error=%q reply=%q",
					resp.State, resp.MissingFields, resp.ErrorCode, resp.Reply)
			}
			if resp.Booking.CustomerName != "Alice Johnson" || resp.Booking.Contact != "9988776655" {
				t.Errorf("booking name=%q contact=%q", resp.Booking.CustomerName, resp.Booking.Contact)
			}
		})
	}
}

func TestGreetingRemembersCustomer(t *testing.T) {
	h := newHarness(t)

	if booked := h.say(t, "s1", "Book slot SL0921 for Alice Johnson, 9988776655").Booking; booked == nil {
		t.Fatal("expected a booking")
	}

	resp := h.say(t, "s1", "hello")
	if !strings.Contains(resp.Reply, "Hello again, Alice Johnson") {
		t.Errorf("reply = %q", resp.Reply)
	}

	session, err := h.svc.GetSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if session.CustomerName != "Alice Johnson" {
		t.Errorf("CustomerName = %q", session.CustomerName)
	}

	if other := h.say(t, "s2", "hello"); strings.Contains(other.Reply, "Alice") {
		t.Errorf("greeting leaked a name into another session: %q", other.Reply)
	}
}
