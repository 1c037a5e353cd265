package scheduleRepo

import (
	"context"
	"time"

	"clinicore/models"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func (r *gormScheduleRepo) Upsert(ctx context.Context, schedule *models.DoctorSchedule) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "doctor_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"start_time", "end_time", "slot_minutes", "available", "updated_at",
			}),
		}).
		Create(schedule).
		Error
}

func (r *gormScheduleRepo) GetByDoctorAndWeekday(
	ctx context.Context,
	doctorID uuid.UUID,
	weekday time.Weekday,
) (*models.DoctorSchedule, error) {
	var s models.DoctorSchedule
	err := r.db.WithContext(ctx).
		First(&s, "doctor_id = ? AND weekday = ?", doctorID, weekday).
		Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *gormScheduleRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.DoctorSchedule, error) {
	var schedules []models.DoctorSchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("weekday ASC").
		Find(&schedules).
		Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *gormScheduleRepo) SetAvailable(
	ctx context.Context,
	doctorID uuid.UUID,
	weekday time.Weekday,
	available bool,
) error {
	return r.db.WithContext(ctx).
		Model(&models.DoctorSchedule{}).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		Update("available", available).
		Error
}
