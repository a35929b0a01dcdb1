package bookingService

import (
	"context"
	"strings"
	"time"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"
	contextPkg "jusbook/pkg/context"

	"github.com/sirupsen/logrus"
)

const serviceSimilarityThreshold = 0.85

func (s *bookingService) ListSlots(ctx context.Context, filter booking.SlotFilter) ([]entity.Slot, error) {
	if filter.Date != "" {
		if _, err := time.Parse(time.DateOnly, filter.Date); err != nil {
			return nil, booking.ErrInvalidDate
		}
	}

	slots, err := s.bookingRepo.NewClient().Slots.ListSlots(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to list slots")
		return nil, err
	}

	return slots, nil
}

func (s *bookingService) GetSlot(ctx context.Context, id string) (entity.Slot, error) {
	return s.bookingRepo.NewClient().Slots.GetSlotByID(ctx, strings.TrimSpace(id))
}

func (s *bookingService) ListServices(ctx context.Context) ([]entity.Service, error) {
	return s.bookingRepo.NewClient().Catalog.GetServices(ctx)
}

// MatchService finds the service named in free text. The longest keyword hit
// wins; otherwise a single word close enough to a service id is accepted.
func (s *bookingService) MatchService(ctx context.Context, text string) (entity.Service, bool) {
	services, err := s.ListServices(ctx)
	if err != nil || strings.TrimSpace(text) == "" {
		return entity.Service{}, false
	}

	padded := " " + s.normalizer.Normalize(text) + " "

	var (
		best    entity.Service
		bestLen int
	)
	for _, service := range services {
		phrases := append([]string{service.ID, service.Name}, service.Keywords...)
		for _, phrase := range phrases {
			normalized := s.normalizer.Normalize(phrase)
			if normalized == "" || !strings.Contains(padded, " "+normalized+" ") {
				continue
			}
			if len(normalized) > bestLen {
				best, bestLen = service, len(normalized)
			}
		}
	}
	if bestLen > 0 {
		return best, true
	}

	for _, word := range strings.Fields(padded) {
		if len(word) < 5 {
			continue
		}
		for _, service := range services {
			if s.normalizer.Similarity(word, service.ID) >= serviceSimilarityThreshold {
				return service, true
			}
		}
	}

	return entity.Service{}, false
}

// ListEvents returns events dated today or later.
func (s *bookingService) ListEvents(ctx context.Context) ([]entity.Event, error) {
	events, err := s.bookingRepo.NewClient().Catalog.GetEvents(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(time.DateOnly)
	upcoming := make([]entity.Event, 0, len(events))
	for _, event := range events {
		if event.Date >= today {
			upcoming = append(upcoming, event)
		}
	}

	return upcoming, nil
}

func (s *bookingService) GetContactInfo(ctx context.Context) (entity.ContactInfo, error) {
	return s.bookingRepo.NewClient().Catalog.GetContactInfo(ctx)
}
