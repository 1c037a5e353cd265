package models

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is the bookable practitioner record read by the booking flow.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Specialty string    `gorm:"type:varchar(128)" json:"specialty"`

	// Fee charged per appointment, in minor currency units (e.g. cents).
	ConsultationFee int64  `gorm:"not null;default:0" json:"consultationFee"`
	Currency        string `gorm:"type:varchar(8);not null;default:'usd'" json:"currency"`

	// Active gates the doctor out of availability and reservation entirely.
	Active bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
