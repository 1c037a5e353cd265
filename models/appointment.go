package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the payment lifecycle of an appointment, distinct from the
// clinical Status below.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// AppointmentStatus is the clinical lifecycle of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// Appointment represents one reservation of a doctor's slot.
//
// A row is created in payment status "pending" when a patient reserves a slot
// and only becomes "paid" through a verified checkout session. Canceled rows
// free their slot: the (doctor_id, date, start_time) uniqueness constraint is
// a partial index excluding status = 'canceled' (see database.AutoMigrate).
type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID uuid.UUID `gorm:"type:uuid;not null;index" json:"doctorId"`

	// Patient identity. Email is required; the user link is optional so
	// walk-in patients without an account can still book.
	PatientUserID *uuid.UUID `gorm:"type:uuid;index" json:"patientUserId,omitempty"`
	PatientEmail  string     `gorm:"type:varchar(255);not null;index" json:"patientEmail"`
	PatientName   string     `gorm:"type:varchar(128)" json:"patientName,omitempty"`
	PatientGender string     `gorm:"type:varchar(16)" json:"patientGender,omitempty"`

	// Calendar placement. Date is "YYYY-MM-DD"; times are "HH:MM" in
	// clinic-local time, fixed-width so string comparison orders them.
	Date      string       `gorm:"type:varchar(10);not null;index" json:"date"`
	Weekday   time.Weekday `gorm:"not null" json:"weekday"`
	StartTime string       `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   string       `gorm:"type:varchar(5);not null" json:"endTime"`

	Description string `gorm:"type:text" json:"description,omitempty"`

	PaymentStatus PaymentStatus     `gorm:"type:varchar(16);not null;default:'pending';index" json:"paymentStatus"`
	Status        AppointmentStatus `gorm:"type:varchar(16);not null;default:'scheduled';index" json:"status"`

	// OrderID is the internal idempotency key generated at reservation time.
	OrderID string `gorm:"type:varchar(64);not null;uniqueIndex" json:"orderId"`

	// External checkout session reference and its provider-side expiry. A
	// pending row past SessionExpiresAt no longer holds its slot. The column
	// type is left to the dialect so the sqlite used in tests scans it back.
	CheckoutSessionID string     `gorm:"type:varchar(128);index" json:"checkoutSessionId,omitempty"`
	SessionExpiresAt  *time.Time `json:"sessionExpiresAt,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Doctor *Doctor `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// Terminal reports whether no further status transition is permitted.
func (a *Appointment) Terminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCanceled
}

// HoldsSlot reports whether the appointment still blocks its slot at the
// given instant. Canceled rows never hold; pending rows stop holding once
// their checkout session has expired.
func (a *Appointment) HoldsSlot(now time.Time) bool {
	if a.Status == AppointmentStatusCanceled {
		return false
	}
	if a.PaymentStatus == PaymentStatusPending && a.SessionExpiresAt != nil && now.After(*a.SessionExpiresAt) {
		return false
	}
	return true
}
