package config

import (
	"fmt"
	"time"

	bookingHandler "jusbook/internal/api/booking/handler"
	chatHandler "jusbook/internal/api/chat/handler"
	"jusbook/internal/middleware"
	"jusbook/pkg/redis"
	"jusbook/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	log         *logrus.Logger
	config      AppConfig
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	redisServer redis.IRedis
	stack       *Stack
	handlers    []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, server.utils, middleware.Config{})
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithAppConfig(cfg AppConfig) ServerOption {
	return func(s *Server) error {
		s.config = cfg
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.utils == nil {
			return fmt.Errorf("utils must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.utils, middleware.Config{
			RequestsPerSecond: s.config.RateLimitRPS,
			Burst:             s.config.RateLimitBurst,
		})
		return nil
	}
}

// WithStack builds the booking and chat services. It must follow the logger,
// config, utils and (for redis sessions) redis options.
func WithStack() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the stack")
		}
		if s.utils == nil {
			s.utils = utils.New()
		}
		stack, err := NewStack(s.log, s.config, s.utils, s.redisServer)
		if err != nil {
			return err
		}
		s.stack = stack
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	if s.stack == nil {
		stack, err := NewStack(s.log, s.config, s.utils, s.redisServer)
		if err != nil {
			return err
		}
		s.stack = stack
	}

	// Booking Domain
	bookingHandlers := bookingHandler.New(s.log, s.validator, s.middleware, s.stack.Bookings)

	// Chat Domain
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, s.stack.Chat)

	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	s.setupHealthCheck()
	s.handlers = append(s.handlers, bookingHandlers, chatHandlers)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	return nil
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) Run() error {
	port := s.config.Port
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	err := s.engine.ShutdownWithTimeout(10 * time.Second)
	if s.redisServer != nil {
		if closeErr := s.redisServer.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

func (s *Server) setupHealthCheck() {
	health := func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
			"service": "jusbook",
		})
	}
	s.engine.Get("/", health)
	s.engine.Get("/health", health)
}
