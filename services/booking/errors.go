package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced to handlers. Each maps to a distinct HTTP status.
const (
	CodeValidation         = "validationError"
	CodeSlotConflict       = "slotConflict"
	CodePaymentUnverified  = "paymentVerificationFailed"
	CodeNotFound           = "notFound"
	CodeServiceUnavailable = "serviceUnavailable"
)

// BookingError is the typed error returned by the booking service.
type BookingError struct {
	Code    string
	Message string
	// Fields holds field-level detail for validation errors.
	Fields map[string]string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string, fields map[string]string) error {
	return &BookingError{Code: CodeValidation, Message: msg, Fields: fields}
}

func NewSlotConflictError() error {
	return &BookingError{Code: CodeSlotConflict, Message: "slot no longer available"}
}

func NewPaymentVerificationError(msg string) error {
	return &BookingError{Code: CodePaymentUnverified, Message: msg}
}

func NewNotFoundError(what string) error {
	return &BookingError{Code: CodeNotFound, Message: what + " not found"}
}

func NewUnavailableError(msg string) error {
	return &BookingError{Code: CodeServiceUnavailable, Message: msg}
}

// IsCode reports whether err is a BookingError carrying the given code.
func IsCode(err error, code string) bool {
	var be *BookingError
	return errors.As(err, &be) && be.Code == code
}
