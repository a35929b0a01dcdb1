package bookingHandler

import (
	"time"

	"jusbook/internal/api/booking"
	contextPkg "jusbook/pkg/context"
	"jusbook/pkg/handlerUtil"
	"jusbook/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *BookingHandler) ListSlots(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing list slots request")

	var filter booking.SlotFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(filter); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	slots, err := h.bookingService.ListSlots(c, filter)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_slots")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, booking.SlotListResponse{
			Date:  filter.Date,
			Count: len(slots),
			Slots: slots,
		})
	}
}

func (h *BookingHandler) GetSlot(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	slot, err := h.bookingService.GetSlot(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_slot")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, slot)
}

func (h *BookingHandler) ListServices(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	services, err := h.bookingService.ListServices(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_services")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, booking.ServiceListResponse{
		Count:    len(services),
		Services: services,
	})
}

func (h *BookingHandler) ListEvents(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	events, err := h.bookingService.ListEvents(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_events")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, booking.EventListResponse{
		Count:  len(events),
		Events: events,
	})
}

func (h *BookingHandler) GetContactInfo(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	contact, err := h.bookingService.GetContactInfo(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_contact")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, contact)
}

func (h *BookingHandler) GetStatistics(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	stats, err := h.bookingService.GetStatistics(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_statistics")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, stats)
}
