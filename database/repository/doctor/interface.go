// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"

	"clinicore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Doctor, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type gormDoctorRepo struct {
	db *gorm.DB
}

// NewGormDoctorRepo constructs a GORM-backed DoctorRepository.
func NewGormDoctorRepo(db *gorm.DB) DoctorRepository {
	return &gormDoctorRepo{db: db}
}
