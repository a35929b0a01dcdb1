package bookingService

import (
	"context"
	"time"

	"jusbook/internal/api/booking"
	bookingRepository "jusbook/internal/api/booking/repository"
	"jusbook/internal/entity"
	"jusbook/pkg/nlp"
	"jusbook/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IBookingService interface {
	ListSlots(ctx context.Context, filter booking.SlotFilter) ([]entity.Slot, error)
	GetSlot(ctx context.Context, id string) (entity.Slot, error)
	ListServices(ctx context.Context) ([]entity.Service, error)
	MatchService(ctx context.Context, text string) (entity.Service, bool)
	ListEvents(ctx context.Context) ([]entity.Event, error)
	GetContactInfo(ctx context.Context) (entity.ContactInfo, error)

	Book(ctx context.Context, req booking.BookRequest) (entity.Booking, error)
	Cancel(ctx context.Context, bookingID string) (entity.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (entity.Booking, error)
	ListBookings(ctx context.Context, filter booking.BookingFilter) ([]entity.Booking, error)
	GetStatistics(ctx context.Context) (booking.Statistics, error)
}

type bookingService struct {
	log           *logrus.Logger
	bookingRepo   bookingRepository.Repository
	utils         utils.IUtils
	normalizer    *nlp.Normalizer
	now           func() time.Time
	maxIDAttempts int
}

func NewBookingService(
	log *logrus.Logger,
	bookingRepo bookingRepository.Repository,
	utils utils.IUtils,
) IBookingService {
	return &bookingService{
		log:           log,
		bookingRepo:   bookingRepo,
		utils:         utils,
		normalizer:    nlp.NewNormalizer(),
		now:           time.Now,
		maxIDAttempts: 5,
	}
}
