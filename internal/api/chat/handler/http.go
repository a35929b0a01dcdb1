package chatHandler

import (
	"time"

	chatService "jusbook/internal/api/chat/service"
	"jusbook/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	chatService    chatService.IChatService
	messageTimeout time.Duration
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	chatService chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		chatService:    chatService,
		messageTimeout: 10 * time.Second,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	chat := srv.Group("/chat")
	chat.Post("/", h.middleware.NewRateLimiter, h.SendMessage)
	chat.Post("/classify", h.Classify)

	chat.Get("/sessions/:id", h.GetSession)
	chat.Delete("/sessions/:id", h.ResetSession)

	chat.Use("/ws", wsMiddleware)
	chat.Get("/ws", websocket.New(h.ChatSocket))
}
