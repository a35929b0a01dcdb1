package booking

import "jusbook/pkg/response"

var (
	ErrSlotNotFound        = response.NewError(404, "SLOT_NOT_FOUND", "slot not found")
	ErrSlotUnavailable     = response.NewError(409, "SLOT_UNAVAILABLE", "slot is no longer available")
	ErrBookingNotFound     = response.NewError(404, "BOOKING_NOT_FOUND", "booking not found")
	ErrAlreadyCancelled    = response.NewError(409, "ALREADY_CANCELLED", "booking is already cancelled")
	ErrServiceNotFound     = response.NewError(404, "SERVICE_NOT_FOUND", "service not found")
	ErrInvalidContact      = response.NewError(400, "INVALID_ENTITY_FORMAT", "contact must be a 10 digit phone number")
	ErrInvalidCustomerName = response.NewError(400, "INVALID_ENTITY_FORMAT", "customer name must contain first and last name")
	ErrInvalidDate         = response.NewError(400, "INVALID_ENTITY_FORMAT", "date must be formatted as YYYY-MM-DD")
	ErrInvalidFilter       = response.NewError(400, "VALIDATION_ERROR", "either contact or date is required")
	ErrDuplicateBookingID  = response.NewError(500, "DUPLICATE_BOOKING_ID", "booking id already exists")
	ErrCreateBooking       = response.NewError(500, "BOOKING_FAILED", "failed to create booking")
)
