package domain

import "errors"

// Sentinel errors for the booking core. Services wrap these with %w and the
// HTTP layer matches them with errors.Is.
var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrRefundNotFound  = errors.New("refund not found")
	ErrPaymentNotFound = errors.New("payment not found")

	ErrNoSeatsAvailable    = errors.New("no available seats")
	ErrSeatLocked          = errors.New("seat is already locked")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidRefundStatus = errors.New("invalid refund status")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)
