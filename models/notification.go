package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification event types.
const (
	NotificationTypeAppointmentPaid     = "appointment_paid"
	NotificationTypeAppointmentCanceled = "appointment_canceled"
)

// AppointmentNotification is one status-change event addressed to a single
// user (the doctor or the patient). Rows are never deleted; reading sets
// ReadAt.
type AppointmentNotification struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointmentId"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`

	Type  string         `gorm:"type:varchar(32);not null" json:"type"`
	Title string         `gorm:"type:varchar(128);not null" json:"title"`
	Body  string         `gorm:"type:text" json:"body"`
	Data  datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`

	ReadAt    *time.Time `gorm:"index" json:"readAt,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
