package bookingRepository

import (
	"context"
	"sort"
	"sync"
	"time"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"

	"github.com/sirupsen/logrus"
)

func New(log *logrus.Logger, seed Seed) Repository {
	s := &store{
		slots:    make(map[string]entity.Slot, len(seed.Slots)),
		bookings: make(map[string]entity.Booking),
		services: append([]entity.Service(nil), seed.Services...),
		events:   append([]entity.Event(nil), seed.Events...),
		contact:  seed.Contact,
	}

	for _, slot := range seed.Slots {
		if slot.Status == "" {
			slot.Status = entity.SlotStatusAvailable
		}
		if _, exists := s.slots[slot.ID]; !exists {
			s.slotOrder = append(s.slotOrder, slot.ID)
		}
		s.slots[slot.ID] = slot
	}
	sort.SliceStable(s.slotOrder, func(i, j int) bool {
		return s.slots[s.slotOrder[i]].StartsAt.Before(s.slots[s.slotOrder[j]].StartsAt)
	})

	log.WithFields(logrus.Fields{
		"slots":    len(s.slots),
		"services": len(s.services),
		"events":   len(s.events),
	}).Info("Booking store seeded")

	return &repository{
		store: s,
		log:   log,
	}
}

type repository struct {
	store *store
	log   *logrus.Logger
}

type Repository interface {
	NewClient() Client
}

// store holds all slots and bookings. Every booking mutation runs under the
// write lock so the availability check and the write are one step.
type store struct {
	mu           sync.RWMutex
	slots        map[string]entity.Slot
	slotOrder    []string
	bookings     map[string]entity.Booking
	bookingOrder []string
	services     []entity.Service
	events       []entity.Event
	contact      entity.ContactInfo
}

func (r *repository) NewClient() Client {
	return Client{
		Slots:    &slotRepository{store: r.store, log: r.log},
		Bookings: &bookingRepository{store: r.store, log: r.log},
		Catalog:  &catalogRepository{store: r.store, log: r.log},
	}
}

type Client struct {
	Slots interface {
		GetSlotByID(ctx context.Context, id string) (entity.Slot, error)
		ListSlots(ctx context.Context, filter booking.SlotFilter) ([]entity.Slot, error)
		CountSlots(ctx context.Context) (total int, available int, err error)
	}

	Bookings interface {
		CreateBooking(ctx context.Context, b entity.Booking) (entity.Booking, error)
		CancelBooking(ctx context.Context, id string, at time.Time) (entity.Booking, error)
		GetBookingByID(ctx context.Context, id string) (entity.Booking, error)
		ListBookings(ctx context.Context, filter booking.BookingFilter) ([]entity.Booking, error)
	}

	Catalog interface {
		GetServices(ctx context.Context) ([]entity.Service, error)
		GetServiceByID(ctx context.Context, id string) (entity.Service, error)
		GetEvents(ctx context.Context) ([]entity.Event, error)
		GetContactInfo(ctx context.Context) (entity.ContactInfo, error)
	}
}

type slotRepository struct {
	store *store
	log   *logrus.Logger
}

type bookingRepository struct {
	store *store
	log   *logrus.Logger
}

type catalogRepository struct {
	store *store
	log   *logrus.Logger
}
