package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	doctorRepo "clinicore/database/repository/doctor"
	notificationRepo "clinicore/database/repository/notification"
	"clinicore/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo       notificationRepo.NotificationRepository
	DoctorRepo doctorRepo.DoctorRepository
	Hub        *Hub
	// Events is the Redis client for cross-instance fan-out. When nil
	// (tests, single instance), events go straight to the local hub.
	Events *redis.Client
	Logger *zap.Logger
}

func (s *DefaultNotificationService) NotifyAppointmentPaid(ctx context.Context, appt *models.Appointment) error {
	title := "Appointment confirmed"
	body := fmt.Sprintf("Appointment on %s at %s is paid and confirmed.", appt.Date, appt.StartTime)
	return s.fanOut(ctx, appt, models.NotificationTypeAppointmentPaid, title, body)
}

func (s *DefaultNotificationService) NotifyAppointmentCanceled(ctx context.Context, appt *models.Appointment) error {
	title := "Appointment canceled"
	body := fmt.Sprintf("Appointment on %s at %s has been canceled.", appt.Date, appt.StartTime)
	return s.fanOut(ctx, appt, models.NotificationTypeAppointmentCanceled, title, body)
}

// fanOut creates one notification row per recipient and pushes the event.
// Recipients already holding a row of this type for the appointment are
// skipped, so re-running a confirmation cannot duplicate notifications.
func (s *DefaultNotificationService) fanOut(
	ctx context.Context,
	appt *models.Appointment,
	notifType, title, body string,
) error {
	recipients, err := s.recipients(ctx, appt)
	if err != nil {
		return err
	}

	data, _ := json.Marshal(map[string]string{
		"appointmentId": appt.ID.String(),
		"orderId":       appt.OrderID,
		"date":          appt.Date,
		"startTime":     appt.StartTime,
	})

	for _, userID := range recipients {
		exists, err := s.Repo.ExistsForAppointment(ctx, appt.ID, userID, notifType)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		n := models.AppointmentNotification{
			ID:            uuid.New(),
			AppointmentID: appt.ID,
			UserID:        userID,
			Type:          notifType,
			Title:         title,
			Body:          body,
			Data:          data,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.Repo.Create(ctx, &n); err != nil {
			return err
		}
		s.push(ctx, userID, n)
	}
	return nil
}

func (s *DefaultNotificationService) recipients(ctx context.Context, appt *models.Appointment) ([]uuid.UUID, error) {
	doctor, err := s.DoctorRepo.GetByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("notification fan-out: resolve doctor %s: %w", appt.DoctorID, err)
	}
	recipients := []uuid.UUID{doctor.UserID}
	if appt.PatientUserID != nil {
		recipients = append(recipients, *appt.PatientUserID)
	}
	return recipients, nil
}

// push delivers the event over Redis when wired, otherwise to the local hub.
// Push failures are logged, not returned: the row is persisted and remains
// queryable, which is what at-least-once delivery rests on.
func (s *DefaultNotificationService) push(ctx context.Context, userID uuid.UUID, n models.AppointmentNotification) {
	if s.Events != nil {
		if err := publishRedis(ctx, s.Events, userID, n); err != nil {
			s.Logger.Warn("failed to publish notification event",
				zap.String("userID", userID.String()), zap.Error(err))
		}
		return
	}
	s.Hub.Publish(userID, n)
}

func (s *DefaultNotificationService) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	unreadOnly bool,
) ([]models.AppointmentNotification, error) {
	return s.Repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.Repo.MarkAllRead(ctx, userID)
}
