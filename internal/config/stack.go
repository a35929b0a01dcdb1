package config

import (
	"fmt"
	"time"

	bookingRepository "jusbook/internal/api/booking/repository"
	bookingService "jusbook/internal/api/booking/service"
	chatRepository "jusbook/internal/api/chat/repository"
	chatService "jusbook/internal/api/chat/service"
	"jusbook/pkg/nlp"
	"jusbook/pkg/redis"
	"jusbook/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Stack is the wired domain layer shared by the HTTP server and the console.
type Stack struct {
	Processor    nlp.IProcessor
	BookingRepo  bookingRepository.Repository
	Bookings     bookingService.IBookingService
	SessionStore chatRepository.SessionStore
	Chat         chatService.IChatService
}

// NewStack seeds the booking data and picks the session store. redisClient is
// only required when cfg.SessionStore is "redis".
func NewStack(log *logrus.Logger, cfg AppConfig, u utils.IUtils, redisClient redis.IRedis) (*Stack, error) {
	seedDays := cfg.SeedDays
	if seedDays <= 0 {
		seedDays = 14
	}
	bookingRepo := bookingRepository.New(log, bookingRepository.DefaultSeed(time.Now(), seedDays))
	bookings := bookingService.NewBookingService(log, bookingRepo, u)

	storeCfg := chatRepository.StoreConfig{
		IdleTimeout: cfg.SessionIdle,
		MaxSessions: cfg.SessionMax,
	}

	var store chatRepository.SessionStore
	switch cfg.SessionStore {
	case "", SessionStoreMemory:
		store = chatRepository.NewMemoryStore(log, storeCfg)
	case SessionStoreRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("session store %q requires a redis client", cfg.SessionStore)
		}
		store = chatRepository.NewRedisStore(log, redisClient, storeCfg)
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	processor := nlp.NewProcessor()

	log.WithFields(logrus.Fields{
		"session_store": cfg.SessionStore,
		"seed_days":     seedDays,
	}).Info("Booking stack initialised")

	return &Stack{
		Processor:    processor,
		BookingRepo:  bookingRepo,
		Bookings:     bookings,
		SessionStore: store,
		Chat:         chatService.NewChatService(log, store, bookings, processor, u, nil),
	}, nil
}
