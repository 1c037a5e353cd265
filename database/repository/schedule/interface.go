// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"time"

	"clinicore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	// Upsert writes the (doctor, weekday) row, replacing an existing one.
	Upsert(ctx context.Context, schedule *models.DoctorSchedule) error
	GetByDoctorAndWeekday(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) (*models.DoctorSchedule, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.DoctorSchedule, error)
	SetAvailable(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday, available bool) error
}

type gormScheduleRepo struct {
	db *gorm.DB
}

// NewGormScheduleRepo constructs a GORM-backed ScheduleRepository.
func NewGormScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &gormScheduleRepo{db: db}
}
