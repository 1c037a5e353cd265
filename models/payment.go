package models

import "time"

// CheckoutStatus is the verified payment state of an external checkout
// session, as reported by the gateway (never by the client).
type CheckoutStatus string

const (
	CheckoutStatusPaid    CheckoutStatus = "paid"
	CheckoutStatusUnpaid  CheckoutStatus = "unpaid"
	CheckoutStatusExpired CheckoutStatus = "expired"
)

// CheckoutRequest is everything the gateway needs to open a session.
type CheckoutRequest struct {
	OrderID     string // internal idempotency key, carried in session metadata
	Amount      int64  // minor currency units
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the provider-issued token for an in-progress payment.
type CheckoutSession struct {
	ID          string
	RedirectURL string
	ExpiresAt   time.Time
}
