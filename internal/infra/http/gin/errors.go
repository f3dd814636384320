package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stays/internal/app/queries"
	"stays/internal/domain/booking"
	domainlistings "stays/internal/domain/listings"
)

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainlistings.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainlistings.ErrIDRequired),
		errors.Is(err, booking.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, queries.ErrHandlerNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
