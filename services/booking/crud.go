package booking

import (
	"context"
	"errors"
	"time"

	"clinicore/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cancel is the explicit pending → canceled transition. Paid appointments
// are clinical records and do not cancel through the booking flow.
func (s *DefaultBookingService) Cancel(ctx context.Context, appointmentID string) error {
	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return NewValidationError("invalid appointment id", map[string]string{"id": "must be a UUID"})
	}

	appt, err := s.ApptRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("appointment")
	}
	if err != nil {
		return NewUnavailableError("could not load appointment")
	}

	if appt.Terminal() {
		return NewValidationError("appointment is already closed", nil)
	}
	if appt.PaymentStatus == models.PaymentStatusPaid {
		return NewValidationError("paid appointments cannot be canceled here", nil)
	}

	canceled, err := s.ApptRepo.CancelIfPending(ctx, id)
	if err != nil {
		return NewUnavailableError("could not cancel appointment")
	}
	if !canceled {
		// Lost a race with a payment confirmation.
		return NewValidationError("appointment is no longer cancelable", nil)
	}

	appt.Status = models.AppointmentStatusCanceled
	if err := s.Notifier.NotifyAppointmentCanceled(ctx, appt); err != nil {
		s.Logger.Error("failed to dispatch cancel notification",
			zap.String("appointmentID", appointmentID), zap.Error(err))
	}
	return nil
}

// Complete is the paid → completed transition, a doctor/admin action after
// the visit.
func (s *DefaultBookingService) Complete(ctx context.Context, appointmentID string) error {
	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return NewValidationError("invalid appointment id", map[string]string{"id": "must be a UUID"})
	}

	appt, err := s.ApptRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("appointment")
	}
	if err != nil {
		return NewUnavailableError("could not load appointment")
	}
	if appt.Terminal() {
		return NewValidationError("appointment is already closed", nil)
	}
	if appt.PaymentStatus != models.PaymentStatusPaid {
		return NewValidationError("only paid appointments can be completed", nil)
	}

	if err := s.ApptRepo.Complete(ctx, id); err != nil {
		return NewUnavailableError("could not complete appointment")
	}
	return nil
}

// ExpirePending reclaims the slot of a reservation whose checkout session
// ran out. Called by the asynq sweep; a row that got paid (or was already
// canceled) in the meantime is left untouched.
func (s *DefaultBookingService) ExpirePending(ctx context.Context, appointmentID string) (bool, error) {
	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return false, NewValidationError("invalid appointment id", map[string]string{"id": "must be a UUID"})
	}

	canceled, err := s.ApptRepo.CancelIfPending(ctx, id)
	if err != nil {
		return false, NewUnavailableError("could not expire appointment")
	}
	if canceled {
		s.Logger.Info("expired pending reservation", zap.String("appointmentID", appointmentID))
	}
	return canceled, nil
}

func (s *DefaultBookingService) GetByOrder(ctx context.Context, orderID string) (*models.Appointment, error) {
	if orderID == "" {
		return nil, NewValidationError("missing order id", map[string]string{"orderId": "required"})
	}
	appt, err := s.ApptRepo.GetByOrderID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("order")
	}
	if err != nil {
		return nil, NewUnavailableError("could not load appointment")
	}
	return appt, nil
}

func (s *DefaultBookingService) ListDoctorDay(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	did, err := uuid.Parse(doctorID)
	if err != nil {
		return nil, NewValidationError("invalid doctor id", map[string]string{"doctorId": "must be a UUID"})
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, NewValidationError("invalid date", map[string]string{"date": "expected YYYY-MM-DD"})
	}

	appts, err := s.ApptRepo.ListByDoctorAndDate(ctx, did, date)
	if err != nil {
		return nil, NewUnavailableError("could not list appointments")
	}
	return appts, nil
}

func (s *DefaultBookingService) ListPatientAppointments(ctx context.Context, patientUserID uuid.UUID) ([]models.Appointment, error) {
	appts, err := s.ApptRepo.ListByPatient(ctx, patientUserID)
	if err != nil {
		return nil, NewUnavailableError("could not list appointments")
	}
	return appts, nil
}
