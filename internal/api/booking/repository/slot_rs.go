package bookingRepository

import (
	"context"
	"strings"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"
	contextPkg "jusbook/pkg/context"

	"github.com/sirupsen/logrus"
)

func (r *slotRepository) GetSlotByID(ctx context.Context, id string) (entity.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slot, ok := r.store.slots[strings.ToUpper(id)]
	if !ok {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"slot_id":    id,
		}).Warn("GetSlotByID slot not found")
		return entity.Slot{}, booking.ErrSlotNotFound
	}

	return slot, nil
}

func (r *slotRepository) ListSlots(ctx context.Context, filter booking.SlotFilter) ([]entity.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	service := strings.ToLower(strings.TrimSpace(filter.Service))
	slots := make([]entity.Slot, 0)

	for _, id := range r.store.slotOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slot := r.store.slots[id]
		if !filter.IncludeBooked && !slot.IsAvailable() {
			continue
		}
		if filter.Date != "" && slot.Date != filter.Date {
			continue
		}
		if service != "" && slot.ServiceID != service && !strings.Contains(strings.ToLower(slot.Service), service) {
			continue
		}

		slots = append(slots, slot)
		if filter.Limit > 0 && len(slots) == filter.Limit {
			break
		}
	}

	return slots, nil
}

func (r *slotRepository) CountSlots(ctx context.Context) (int, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	available := 0
	for _, slot := range r.store.slots {
		if slot.IsAvailable() {
			available++
		}
	}

	return len(r.store.slots), available, nil
}
