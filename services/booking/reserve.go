package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "clinicore/database/repository/appointment"
	"clinicore/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reserve validates the requested slot against live state, creates the
// pending appointment, and opens a checkout session for the patient to pay.
// The availability snapshot the client booked from is never trusted: the
// overlap check re-runs inside the reservation transaction, and the partial
// unique index settles concurrent attempts on the same slot.
func (s *DefaultBookingService) Reserve(
	ctx context.Context,
	input models.ReserveInput,
	patientUserID *uuid.UUID,
) (*models.ReserveResponse, error) {
	did, day, startMin, err := s.validateReserveInput(input)
	if err != nil {
		return nil, err
	}

	doctor, err := s.DoctorRepo.GetByID(ctx, did)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("doctor")
	}
	if err != nil {
		return nil, NewUnavailableError("could not load doctor")
	}
	if !doctor.Active {
		return nil, NewValidationError("doctor is not accepting appointments",
			map[string]string{"doctorId": "doctor unavailable"})
	}

	sched, err := s.ScheduleRepo.GetByDoctorAndWeekday(ctx, did, day.Weekday())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewValidationError("doctor has no working hours on that day",
			map[string]string{"date": "no schedule for weekday"})
	}
	if err != nil {
		return nil, NewUnavailableError("could not load doctor schedule")
	}
	if !sched.Available {
		return nil, NewValidationError("doctor is not available on that day",
			map[string]string{"date": "weekday toggled off"})
	}

	endTime, err := slotBounds(sched, startMin)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:            uuid.New(),
		DoctorID:      did,
		PatientUserID: patientUserID,
		PatientEmail:  input.PatientEmail,
		PatientName:   input.PatientName,
		PatientGender: input.PatientGender,
		Date:          input.Date,
		Weekday:       day.Weekday(),
		StartTime:     input.StartTime,
		EndTime:       endTime,
		Description:   input.Description,
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.AppointmentStatusScheduled,
		OrderID:       uuid.New().String(),
	}

	if err := s.ApptRepo.Reserve(ctx, appt, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, NewSlotConflictError()
		}
		return nil, NewUnavailableError("could not create reservation")
	}

	session, err := s.Gateway.CreateCheckoutSession(ctx, models.CheckoutRequest{
		OrderID:     appt.OrderID,
		Amount:      doctor.ConsultationFee,
		Currency:    doctor.Currency,
		Description: fmt.Sprintf("Appointment with %s on %s %s", doctor.Name, appt.Date, appt.StartTime),
		SuccessURL:  s.SuccessURL,
		CancelURL:   s.CancelURL,
	})
	if err != nil {
		// Release the slot rather than stranding a pending row that can
		// never be paid. The caller retries with a fresh reservation.
		if _, cancelErr := s.ApptRepo.CancelIfPending(ctx, appt.ID); cancelErr != nil {
			s.Logger.Error("failed to release reservation after checkout failure",
				zap.String("appointmentID", appt.ID.String()), zap.Error(cancelErr))
		}
		return nil, NewUnavailableError("payment gateway unavailable")
	}

	if err := s.ApptRepo.SetCheckoutSession(ctx, appt.ID, session.ID, session.ExpiresAt); err != nil {
		// Without the stored expiry the pending row would hold its slot
		// forever and no sweep is scheduled yet. Release it like the
		// gateway-failure branch does.
		if _, cancelErr := s.ApptRepo.CancelIfPending(ctx, appt.ID); cancelErr != nil {
			s.Logger.Error("failed to release reservation after session store failure",
				zap.String("appointmentID", appt.ID.String()), zap.Error(cancelErr))
		}
		return nil, NewUnavailableError("could not store checkout session")
	}

	if s.Expiry != nil {
		if err := s.Expiry.ScheduleExpiry(ctx, appt.ID.String(), session.ExpiresAt); err != nil {
			// The lazy reclaim in Reserve still frees the slot; log and move on.
			s.Logger.Warn("failed to schedule expiry sweep",
				zap.String("appointmentID", appt.ID.String()), zap.Error(err))
		}
	}

	s.Logger.Info("reservation created",
		zap.String("appointmentID", appt.ID.String()),
		zap.String("orderID", appt.OrderID),
		zap.String("doctorID", did.String()),
		zap.String("date", appt.Date),
		zap.String("start", appt.StartTime))

	return &models.ReserveResponse{
		AppointmentID: appt.ID.String(),
		OrderID:       appt.OrderID,
		SessionID:     session.ID,
		RedirectURL:   session.RedirectURL,
		ExpiresAt:     session.ExpiresAt,
	}, nil
}

func (s *DefaultBookingService) validateReserveInput(input models.ReserveInput) (uuid.UUID, time.Time, int, error) {
	fields := map[string]string{}

	did, err := uuid.Parse(input.DoctorID)
	if err != nil {
		fields["doctorId"] = "must be a UUID"
	}
	day, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		fields["date"] = "expected YYYY-MM-DD"
	}
	startMin, err := clockToMinutes(input.StartTime)
	if err != nil {
		fields["startTime"] = "expected HH:MM"
	}
	if input.PatientEmail == "" {
		fields["patientEmail"] = "required"
	}
	if len(fields) > 0 {
		return uuid.Nil, time.Time{}, 0, NewValidationError("invalid reservation request", fields)
	}

	if day.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		return uuid.Nil, time.Time{}, 0, NewValidationError("appointment date cannot be in the past",
			map[string]string{"date": "in the past"})
	}
	return did, day, startMin, nil
}

// slotBounds checks the requested start against the schedule grid and
// returns the derived end time.
func slotBounds(sched *models.DoctorSchedule, startMin int) (string, error) {
	winStart, err := clockToMinutes(sched.StartTime)
	if err != nil {
		return "", NewUnavailableError("doctor schedule is malformed")
	}
	winEnd, err := clockToMinutes(sched.EndTime)
	if err != nil {
		return "", NewUnavailableError("doctor schedule is malformed")
	}

	if startMin < winStart || startMin+sched.SlotMinutes > winEnd ||
		(startMin-winStart)%sched.SlotMinutes != 0 {
		return "", NewValidationError("requested time is not a bookable slot",
			map[string]string{"startTime": "outside the doctor's slot grid"})
	}
	return minutesToClock(startMin + sched.SlotMinutes), nil
}
