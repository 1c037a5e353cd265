package notification

import (
	"context"

	"clinicore/models"

	"github.com/google/uuid"
)

// NotificationService records appointment status-change events and pushes
// them to connected clients.
type NotificationService interface {
	// NotifyAppointmentPaid fans the paid event out to the doctor and, when
	// the appointment is linked to an account, the patient. Idempotent per
	// (appointment, recipient, type).
	NotifyAppointmentPaid(ctx context.Context, appt *models.Appointment) error
	NotifyAppointmentCanceled(ctx context.Context, appt *models.Appointment) error

	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.AppointmentNotification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
