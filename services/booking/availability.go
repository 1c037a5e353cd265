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

// Availability computes the ordered free slots for one doctor and date.
// An empty slot list is a successful result: Reason distinguishes the
// structural cases (past date, no schedule, day toggled off) from a day that
// is simply fully booked.
func (s *DefaultBookingService) Availability(ctx context.Context, doctorID, date string) (*models.AvailabilityResult, error) {
	did, err := uuid.Parse(doctorID)
	if err != nil {
		return nil, NewValidationError("invalid doctor id", map[string]string{"doctorId": "must be a UUID"})
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, NewValidationError("invalid date", map[string]string{"date": "expected YYYY-MM-DD"})
	}

	var doctor *models.Doctor
	err = retryRead(func() error {
		var e error
		doctor, e = s.DoctorRepo.GetByID(ctx, did)
		return e
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("doctor")
	}
	if err != nil {
		return nil, NewUnavailableError("could not load doctor")
	}

	result := &models.AvailabilityResult{
		DoctorID: doctorID,
		Date:     date,
		Slots:    []models.Slot{},
	}

	now := time.Now().UTC()
	if day.Before(now.Truncate(24 * time.Hour)) {
		result.Reason = models.AvailabilityReasonPastDate
		return result, nil
	}
	if !doctor.Active {
		result.Reason = models.AvailabilityReasonUnavailable
		return result, nil
	}

	sched, err := s.ScheduleRepo.GetByDoctorAndWeekday(ctx, did, day.Weekday())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result.Reason = models.AvailabilityReasonNoSchedule
		return result, nil
	}
	if err != nil {
		return nil, NewUnavailableError("could not load doctor schedule")
	}
	if !sched.Available {
		result.Reason = models.AvailabilityReasonUnavailable
		return result, nil
	}

	candidates, err := scheduleSlots(sched)
	if err != nil {
		s.Logger.Error("malformed schedule window",
			zap.String("doctorID", doctorID),
			zap.Int("weekday", int(sched.Weekday)),
			zap.Error(err))
		return nil, NewUnavailableError("doctor schedule is malformed")
	}

	var holding []models.Appointment
	err = retryRead(func() error {
		var e error
		holding, e = s.ApptRepo.ListHolding(ctx, did, date, now)
		return e
	})
	if err != nil {
		return nil, NewUnavailableError("could not load existing appointments")
	}

	for _, slot := range candidates {
		if !conflicts(slot, holding) {
			result.Slots = append(result.Slots, slot)
		}
	}
	return result, nil
}

// scheduleSlots expands a weekly window into its candidate slots.
func scheduleSlots(sched *models.DoctorSchedule) ([]models.Slot, error) {
	start, err := clockToMinutes(sched.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := clockToMinutes(sched.EndTime)
	if err != nil {
		return nil, err
	}
	if sched.SlotMinutes <= 0 {
		return nil, errors.New("slot duration must be positive")
	}
	return buildSlots(start, end, sched.SlotMinutes), nil
}

func conflicts(slot models.Slot, holding []models.Appointment) bool {
	for _, appt := range holding {
		if overlaps(slot, appt) {
			return true
		}
	}
	return false
}
