package doctorRepo

import (
	"context"

	"clinicore/models"

	"github.com/google/uuid"
)

func (r *gormDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *gormDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *gormDoctorRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.db.WithContext(ctx).First(&d, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *gormDoctorRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("active", active).
		Error
}
