// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"clinicore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned by Reserve when the (doctor, date, start_time)
// slot is already held by a live appointment.
var ErrSlotTaken = errors.New("appointment slot already taken")

type AppointmentRepository interface {
	// Reserve inserts a pending appointment, atomically with respect to
	// other reservations of the same slot. An expired pending holder of the
	// slot is canceled in the same transaction (lazy reclaim). Returns
	// ErrSlotTaken if the slot stays held.
	Reserve(ctx context.Context, appt *models.Appointment, now time.Time) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Appointment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Appointment, error)

	// ListHolding returns the appointments blocking slots for the doctor on
	// the date: every non-canceled row, minus expired pending ones.
	ListHolding(ctx context.Context, doctorID uuid.UUID, date string, now time.Time) ([]models.Appointment, error)
	ListByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date string) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientUserID uuid.UUID) ([]models.Appointment, error)

	// SetCheckoutSession attaches the gateway session reference and its
	// expiry to a freshly reserved row.
	SetCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string, expiresAt time.Time) error
	// MarkPaid performs the guarded pending→paid transition and reports
	// whether this call made it; false means the row moved concurrently and
	// the caller must re-read to learn its state.
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
	// CancelIfPending cancels the row only while it is still awaiting
	// payment; a row that became paid meanwhile is left untouched.
	CancelIfPending(ctx context.Context, id uuid.UUID) (bool, error)
	Complete(ctx context.Context, id uuid.UUID) error
}

type gormAppointmentRepo struct {
	db *gorm.DB
}

// NewGormAppointmentRepo constructs a GORM-backed AppointmentRepository.
func NewGormAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &gormAppointmentRepo{db: db}
}
