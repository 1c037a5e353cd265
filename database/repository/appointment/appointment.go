package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"clinicore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *gormAppointmentRepo) Reserve(ctx context.Context, appt *models.Appointment, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Interval-overlap check against every live row of the day, not just
		// the exact start time: rows booked under an earlier slot grid may
		// straddle the requested window. Expired pending holders found here
		// are reclaimed in the same transaction.
		var existing []models.Appointment
		err := tx.
			Where("doctor_id = ? AND date = ? AND status <> ?",
				appt.DoctorID, appt.Date, models.AppointmentStatusCanceled).
			Find(&existing).
			Error
		if err != nil {
			return err
		}
		for _, e := range existing {
			if appt.StartTime >= e.EndTime || appt.EndTime <= e.StartTime {
				continue
			}
			if e.HoldsSlot(now) {
				return ErrSlotTaken
			}
			if err := tx.
				Model(&models.Appointment{}).
				Where("id = ? AND payment_status = ?", e.ID, models.PaymentStatusPending).
				Update("status", models.AppointmentStatusCanceled).
				Error; err != nil {
				return err
			}
		}

		// The partial unique index on (doctor_id, date, start_time) is the
		// real serialization point; a concurrent winner surfaces here as a
		// duplicated key.
		if err := tx.Create(appt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return err
		}
		return nil
	})
}

func (r *gormAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var a models.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *gormAppointmentRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Appointment, error) {
	var a models.Appointment
	if err := r.db.WithContext(ctx).First(&a, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *gormAppointmentRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Appointment, error) {
	var a models.Appointment
	if err := r.db.WithContext(ctx).First(&a, "checkout_session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *gormAppointmentRepo) ListHolding(
	ctx context.Context,
	doctorID uuid.UUID,
	date string,
	now time.Time,
) ([]models.Appointment, error) {
	appts, err := r.ListByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	holding := appts[:0]
	for _, a := range appts {
		if a.HoldsSlot(now) {
			holding = append(holding, a)
		}
	}
	return holding, nil
}

func (r *gormAppointmentRepo) ListByDoctorAndDate(
	ctx context.Context,
	doctorID uuid.UUID,
	date string,
) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND status <> ?",
			doctorID, date, models.AppointmentStatusCanceled).
		Order("start_time ASC").
		Find(&appts).
		Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *gormAppointmentRepo) ListByPatient(ctx context.Context, patientUserID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_user_id = ?", patientUserID).
		Order("date DESC, start_time DESC").
		Find(&appts).
		Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *gormAppointmentRepo) SetCheckoutSession(
	ctx context.Context,
	id uuid.UUID,
	sessionID string,
	expiresAt time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"checkout_session_id": sessionID,
			"session_expires_at":  expiresAt,
		}).
		Error
}

func (r *gormAppointmentRepo) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND payment_status = ? AND status = ?",
			id, models.PaymentStatusPending, models.AppointmentStatusScheduled).
		Update("payment_status", models.PaymentStatusPaid)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormAppointmentRepo) CancelIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND payment_status = ? AND status = ?",
			id, models.PaymentStatusPending, models.AppointmentStatusScheduled).
		Update("status", models.AppointmentStatusCanceled)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormAppointmentRepo) Complete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ? AND payment_status = ?",
			id, models.AppointmentStatusScheduled, models.PaymentStatusPaid).
		Update("status", models.AppointmentStatusCompleted).
		Error
}
