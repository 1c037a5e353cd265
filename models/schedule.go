package models

import (
	"time"

	"github.com/google/uuid"
)

// DoctorSchedule is one weekly working window: a doctor's hours for a single
// weekday plus the slot duration the window is partitioned into.
// One row per (doctor, weekday).
type DoctorSchedule struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_doctor_weekday" json:"doctorId"`
	Weekday  time.Weekday `gorm:"not null;uniqueIndex:idx_doctor_weekday" json:"weekday"`

	// Working window bounds in "HH:MM", clinic-local time. StartTime < EndTime.
	StartTime string `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"endTime"`

	// Length of one appointment slot in minutes. Must be > 0.
	SlotMinutes int `gorm:"not null;default:30" json:"slotMinutes"`

	// Available toggles the whole weekday off without deleting the row.
	Available bool `gorm:"not null;default:true" json:"available"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
