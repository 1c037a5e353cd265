package handlers

import (
	"errors"
	"net/http"

	"clinicore/services/booking"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the booking error taxonomy onto HTTP statuses.
// Anything untyped is a plain 500.
func respondServiceError(c *gin.Context, err error) {
	var be *booking.BookingError
	if !errors.As(err, &be) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch be.Code {
	case booking.CodeValidation:
		status = http.StatusBadRequest
	case booking.CodeSlotConflict:
		status = http.StatusConflict
	case booking.CodePaymentUnverified:
		status = http.StatusPaymentRequired
	case booking.CodeNotFound:
		status = http.StatusNotFound
	case booking.CodeServiceUnavailable:
		status = http.StatusServiceUnavailable
	}

	body := gin.H{"error": be.Message, "code": be.Code}
	if len(be.Fields) > 0 {
		body["fields"] = be.Fields
	}
	c.JSON(status, body)
}
