package bookingRepository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"
	"testing"
	"time"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testSeed() Seed {
	start := time.Date(2026, 9, 21, 9, 0, 0, 0, time.UTC)
	return Seed{
		Services: DefaultServices(),
		Slots: []entity.Slot{
			{ID: "SL0921", Date: "2026-09-21", Time: "10:00 AM", StartsAt: start.Add(time.Hour), ServiceID: "haircut", Service: "Haircut & Styling"},
			{ID: "SL0922", Date: "2026-09-22", Time: "11:00 AM", StartsAt: start.Add(26 * time.Hour), ServiceID: "facial", Service: "Facial Treatment"},
		},
		Events:  DefaultEvents(start),
		Contact: DefaultContact(),
	}
}

func TestGenerateSlots(t *testing.T) {
	// 2026-09-20 is a Sunday.
	start := time.Date(2026, 9, 20, 8, 30, 0, 0, time.UTC)
	slots := GenerateSlots(start, 14, DefaultServices())

	if len(slots) != 12*len(defaultSlotTimes) {
		t.Fatalf("len(slots) = %d, want %d", len(slots), 12*len(defaultSlotTimes))
	}

	idPattern := regexp.MustCompile(`^SL\d{6}$`)
	seen := make(map[string]bool)
	for _, slot := range slots {
		if slot.StartsAt.Weekday() == time.Sunday {
			t.Fatalf("slot %s generated on a Sunday", slot.ID)
		}
		if !idPattern.MatchString(slot.ID) {
			t.Errorf("slot id %q does not match SL<MMDD><NN>", slot.ID)
		}
		if seen[slot.ID] {
			t.Errorf("duplicate slot id %s", slot.ID)
		}
		seen[slot.ID] = true
		if slot.Status != entity.SlotStatusAvailable {
			t.Errorf("slot %s status = %s, want available", slot.ID, slot.Status)
		}
	}

	first := slots[0]
	if first.ID != "SL092101" || first.Time != "10:00 AM" || first.StartsAt.Hour() != 10 {
		t.Errorf("first slot = %+v, want SL092101 at 10:00 AM", first)
	}
	if again := GenerateSlots(start, 14, DefaultServices()); again[5].ServiceID != slots[5].ServiceID {
		t.Error("slot generation should be deterministic")
	}
}

func TestCreateAndCancelBooking(t *testing.T) {
	ctx := context.Background()
	client := New(newTestLogger(), testSeed()).NewClient()

	created, err := client.Bookings.CreateBooking(ctx, entity.Booking{
		ID:           "BK00000001",
		SlotID:       "sl0921",
		CustomerName: "Alice Johnson",
		Contact:      "9988776655",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if created.SlotID != "SL0921" || created.Service != "Haircut & Styling" || created.Status != entity.BookingStatusConfirmed {
		t.Errorf("CreateBooking() = %+v", created)
	}

	slot, err := client.Slots.GetSlotByID(ctx, "SL0921")
	if err != nil {
		t.Fatalf("GetSlotByID() error = %v", err)
	}
	if slot.IsAvailable() || slot.BookingID != created.ID {
		t.Errorf("slot after booking = %+v, want booked by %s", slot, created.ID)
	}

	_, err = client.Bookings.CreateBooking(ctx, entity.Booking{ID: "BK00000002", SlotID: "SL0921"})
	if !errors.Is(err, booking.ErrSlotUnavailable) {
		t.Errorf("second CreateBooking() error = %v, want ErrSlotUnavailable", err)
	}

	_, err = client.Bookings.CreateBooking(ctx, entity.Booking{ID: "BK00000001", SlotID: "SL0922"})
	if !errors.Is(err, booking.ErrDuplicateBookingID) {
		t.Errorf("duplicate id error = %v, want ErrDuplicateBookingID", err)
	}

	cancelled, err := client.Bookings.CancelBooking(ctx, "bk00000001", time.Now())
	if err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}
	if cancelled.Status != entity.BookingStatusCancelled || cancelled.CancelledAt == nil {
		t.Errorf("CancelBooking() = %+v", cancelled)
	}

	slot, _ = client.Slots.GetSlotByID(ctx, "SL0921")
	if !slot.IsAvailable() {
		t.Error("slot should be released after cancellation")
	}

	if _, err := client.Bookings.CancelBooking(ctx, "BK00000001", time.Now()); !errors.Is(err, booking.ErrAlreadyCancelled) {
		t.Errorf("second CancelBooking() error = %v, want ErrAlreadyCancelled", err)
	}
	if _, err := client.Bookings.CancelBooking(ctx, "BK404", time.Now()); !errors.Is(err, booking.ErrBookingNotFound) {
		t.Errorf("CancelBooking(unknown) error = %v, want ErrBookingNotFound", err)
	}
}

func TestCreateBookingConcurrent(t *testing.T) {
	ctx := context.Background()
	client := New(newTestLogger(), testSeed()).NewClient()

	const attempts = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := client.Bookings.CreateBooking(ctx, entity.Booking{
				ID:     fmt.Sprintf("BK%08d", i),
				SlotID: "SL0922",
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if !errors.Is(err, booking.ErrSlotUnavailable) {
				t.Errorf("unexpected error %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("%d concurrent bookings succeeded, want exactly 1", succeeded)
	}
}

func TestListSlotsFilters(t *testing.T) {
	ctx := context.Background()
	client := New(newTestLogger(), testSeed()).NewClient()

	tests := []struct {
		name   string
		filter booking.SlotFilter
		want   []string
	}{
		{name: "all", filter: booking.SlotFilter{}, want: []string{"SL0921", "SL0922"}},
		{name: "by date", filter: booking.SlotFilter{Date: "2026-09-22"}, want: []string{"SL0922"}},
		{name: "by service id", filter: booking.SlotFilter{Service: "haircut"}, want: []string{"SL0921"}},
		{name: "by service name", filter: booking.SlotFilter{Service: "Facial"}, want: []string{"SL0922"}},
		{name: "limit", filter: booking.SlotFilter{Limit: 1}, want: []string{"SL0921"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := client.Slots.ListSlots(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListSlots() error = %v", err)
			}
			if len(slots) != len(tt.want) {
				t.Fatalf("ListSlots() returned %d slots, want %d", len(slots), len(tt.want))
			}
			for i, id := range tt.want {
				if slots[i].ID != id {
					t.Errorf("slots[%d] = %s, want %s", i, slots[i].ID, id)
				}
			}
		})
	}
}
