package models

import "time"

// ReserveResponse is returned after a pending appointment has been created
// and a checkout session opened. The caller redirects the patient to
// RedirectURL to pay.
type ReserveResponse struct {
	AppointmentID string    `json:"appointmentId"`
	OrderID       string    `json:"orderId"`
	SessionID     string    `json:"sessionId"`
	RedirectURL   string    `json:"redirectUrl"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// ConfirmResponse is returned once a checkout session has been verified and
// the appointment transitioned (or was already transitioned) to paid.
type ConfirmResponse struct {
	AppointmentID string        `json:"appointmentId"`
	OrderID       string        `json:"orderId"`
	Date          string        `json:"date"`
	StartTime     string        `json:"startTime"`
	EndTime       string        `json:"endTime"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}
