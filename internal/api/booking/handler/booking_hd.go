package bookingHandler

import (
	"errors"
	"time"

	"jusbook/internal/api/booking"
	contextPkg "jusbook/pkg/context"
	"jusbook/pkg/handlerUtil"
	"jusbook/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *BookingHandler) CreateBooking(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create booking request")

	var req booking.BookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	created, err := h.bookingService.Book(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_booking")
	}

	// Committed bookings are always reported, even past the deadline.
	return errHandler.HandleSuccess(ctx, fiber.StatusCreated, created)
}

func (h *BookingHandler) CancelBooking(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing cancel booking request")

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("booking ID is required"), ctx.Path())
	}

	cancelled, err := h.bookingService.Cancel(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "cancel_booking")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, booking.CancelResponse{
		Message: "Booking cancelled successfully",
		Booking: cancelled,
	})
}

func (h *BookingHandler) GetBooking(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	found, err := h.bookingService.GetBooking(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_booking")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, found)
	}
}

func (h *BookingHandler) ListBookings(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var filter booking.BookingFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(filter); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if filter.Contact == "" && filter.Date == "" {
		return errHandler.Handle(ctx, requestID, booking.ErrInvalidFilter, ctx.Path(), "list_bookings")
	}

	bookings, err := h.bookingService.ListBookings(c, filter)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_bookings")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, booking.BookingListResponse{
			Count:    len(bookings),
			Bookings: bookings,
		})
	}
}
