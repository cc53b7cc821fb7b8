package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
)

// respondError maps the domain error taxonomy to HTTP statuses in one place.
// Every handler goes through it, so no path can drop an error on the floor.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRefundNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNoSeatsAvailable),
		errors.Is(err, domain.ErrSeatLocked):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRefundStatus),
		errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
