package bookingHandler

import (
	bookingService "jusbook/internal/api/booking/service"
	"jusbook/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BookingHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	bookingService bookingService.IBookingService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	bookingService bookingService.IBookingService,
) *BookingHandler {
	return &BookingHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) Start(srv fiber.Router) {
	srv.Get("/slots", h.ListSlots)
	srv.Get("/slots/:id", h.GetSlot)
	srv.Get("/services", h.ListServices)
	srv.Get("/events", h.ListEvents)
	srv.Get("/contact", h.GetContactInfo)
	srv.Get("/stats", h.GetStatistics)

	bookings := srv.Group("/bookings")
	bookings.Post("/", h.middleware.NewRateLimiter, h.CreateBooking)
	bookings.Get("/", h.ListBookings)
	bookings.Get("/:id", h.GetBooking)
	bookings.Post("/:id/cancel", h.middleware.NewRateLimiter, h.CancelBooking)
}
