// File: database/repository/notification/interface.go
package notificationRepo

import (
	"context"

	"clinicore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.AppointmentNotification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.AppointmentNotification, error)
	// MarkAllRead stamps read_at on every unread row for the user and
	// returns how many were affected.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	// ExistsForAppointment reports whether a row of the given type was
	// already fanned out to the user, keeping dispatch idempotent.
	ExistsForAppointment(ctx context.Context, appointmentID, userID uuid.UUID, notifType string) (bool, error)
}

type gormNotificationRepo struct {
	db *gorm.DB
}

// NewGormNotificationRepo constructs a GORM-backed NotificationRepository.
func NewGormNotificationRepo(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepo{db: db}
}
