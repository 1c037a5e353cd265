package schedule

import (
	"context"
	"errors"
	"time"

	doctorRepo "clinicore/database/repository/doctor"
	scheduleRepo "clinicore/database/repository/schedule"
	"clinicore/models"
	"clinicore/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScheduleService manages a doctor's weekly working windows. Schedules are
// always addressed through the authenticated doctor's user id: only the
// doctor mutates their own hours.
type ScheduleService interface {
	Upsert(ctx context.Context, doctorUserID uuid.UUID, input models.ScheduleInput) (*models.DoctorSchedule, error)
	List(ctx context.Context, doctorUserID uuid.UUID) ([]models.DoctorSchedule, error)
	SetAvailable(ctx context.Context, doctorUserID uuid.UUID, weekday time.Weekday, available bool) error
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	DoctorRepo doctorRepo.DoctorRepository
	Repo       scheduleRepo.ScheduleRepository
	Logger     *zap.Logger
}

func (s *DefaultScheduleService) Upsert(
	ctx context.Context,
	doctorUserID uuid.UUID,
	input models.ScheduleInput,
) (*models.DoctorSchedule, error) {
	doctor, err := s.resolveDoctor(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	if err := validateScheduleInput(input); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	sched := &models.DoctorSchedule{
		ID:          uuid.New(),
		DoctorID:    doctor.ID,
		Weekday:     time.Weekday(input.Weekday),
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		SlotMinutes: input.SlotMinutes,
		Available:   available,
	}
	if err := s.Repo.Upsert(ctx, sched); err != nil {
		return nil, booking.NewUnavailableError("could not save schedule")
	}

	s.Logger.Info("schedule updated",
		zap.String("doctorID", doctor.ID.String()),
		zap.Int("weekday", input.Weekday))
	return sched, nil
}

func (s *DefaultScheduleService) List(ctx context.Context, doctorUserID uuid.UUID) ([]models.DoctorSchedule, error) {
	doctor, err := s.resolveDoctor(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.Repo.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, booking.NewUnavailableError("could not list schedules")
	}
	return schedules, nil
}

func (s *DefaultScheduleService) SetAvailable(
	ctx context.Context,
	doctorUserID uuid.UUID,
	weekday time.Weekday,
	available bool,
) error {
	doctor, err := s.resolveDoctor(ctx, doctorUserID)
	if err != nil {
		return err
	}
	if err := s.Repo.SetAvailable(ctx, doctor.ID, weekday, available); err != nil {
		return booking.NewUnavailableError("could not update schedule")
	}
	return nil
}

func (s *DefaultScheduleService) resolveDoctor(ctx context.Context, userID uuid.UUID) (*models.Doctor, error) {
	doctor, err := s.DoctorRepo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, booking.NewNotFoundError("doctor")
	}
	if err != nil {
		return nil, booking.NewUnavailableError("could not load doctor")
	}
	return doctor, nil
}

func validateScheduleInput(input models.ScheduleInput) error {
	fields := map[string]string{}
	start, err := time.Parse("15:04", input.StartTime)
	if err != nil {
		fields["startTime"] = "expected HH:MM"
	}
	end, err := time.Parse("15:04", input.EndTime)
	if err != nil {
		fields["endTime"] = "expected HH:MM"
	}
	if input.Weekday < 0 || input.Weekday > 6 {
		fields["weekday"] = "expected 0 (Sunday) through 6 (Saturday)"
	}
	if input.SlotMinutes <= 0 {
		fields["slotMinutes"] = "must be positive"
	}
	if len(fields) == 0 && !start.Before(end) {
		fields["startTime"] = "must be before endTime"
	}
	if len(fields) > 0 {
		return booking.NewValidationError("invalid schedule", fields)
	}
	return nil
}
