package notificationRepo

import (
	"context"
	"time"

	"clinicore/models"

	"github.com/google/uuid"
)

func (r *gormNotificationRepo) Create(ctx context.Context, n *models.AppointmentNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *gormNotificationRepo) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	unreadOnly bool,
) ([]models.AppointmentNotification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}

	var notifications []models.AppointmentNotification
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *gormNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.AppointmentNotification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now().UTC())
	return res.RowsAffected, res.Error
}

func (r *gormNotificationRepo) ExistsForAppointment(
	ctx context.Context,
	appointmentID, userID uuid.UUID,
	notifType string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AppointmentNotification{}).
		Where("appointment_id = ? AND user_id = ? AND type = ?", appointmentID, userID, notifType).
		Count(&count).
		Error
	return count > 0, err
}
