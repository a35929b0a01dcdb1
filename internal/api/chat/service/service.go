package chatService

import (
	"context"
	"time"

	"jusbook/internal/api/chat"
	chatRepository "jusbook/internal/api/chat/repository"
	bookingService "jusbook/internal/api/booking/service"
	"jusbook/pkg/nlp"
	"jusbook/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IChatService interface {
	ProcessMessage(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error)
	Classify(ctx context.Context, req chat.ClassifyRequest) (*chat.ClassifyResponse, error)
	GetSession(ctx context.Context, sessionID string) (*chat.SessionResponse, error)
	ResetSession(ctx context.Context, sessionID string) error
}

type ChatConfig struct {
	MaxListedSlots    int `json:"max_listed_slots"`
	MaxListedBookings int `json:"max_listed_bookings"`
}

type chatService struct {
	log            *logrus.Logger
	sessionRepo    chatRepository.SessionStore
	bookingService bookingService.IBookingService
	processor      nlp.IProcessor
	utils          utils.IUtils
	config         *ChatConfig
	locks          *sessionLocker
	now            func() time.Time
}

func NewChatService(
	log *logrus.Logger,
	sessionRepo chatRepository.SessionStore,
	bookingService bookingService.IBookingService,
	processor nlp.IProcessor,
	utils utils.IUtils,
	config *ChatConfig,
) IChatService {
	if config == nil {
		config = &ChatConfig{}
	}
	if config.MaxListedSlots <= 0 {
		config.MaxListedSlots = 8
	}
	if config.MaxListedBookings <= 0 {
		config.MaxListedBookings = 5
	}

	return &chatService{
		log:            log,
		sessionRepo:    sessionRepo,
		bookingService: bookingService,
		processor:      processor,
		utils:          utils,
		config:         config,
		locks:          newSessionLocker(),
		now:            time.Now,
	}
}
