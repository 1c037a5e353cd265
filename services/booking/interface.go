package booking

import (
	"context"
	"time"

	appointmentRepo "clinicore/database/repository/appointment"
	doctorRepo "clinicore/database/repository/doctor"
	scheduleRepo "clinicore/database/repository/schedule"
	"clinicore/models"
	"clinicore/services/notification"
	"clinicore/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService is the appointment scheduling and booking workflow: free-slot
// computation, two-phase reservation/payment confirmation, and the lifecycle
// operations around it.
type BookingService interface {
	Availability(ctx context.Context, doctorID, date string) (*models.AvailabilityResult, error)
	Reserve(ctx context.Context, input models.ReserveInput, patientUserID *uuid.UUID) (*models.ReserveResponse, error)
	ConfirmPayment(ctx context.Context, sessionID string) (*models.ConfirmResponse, error)
	// GetByOrder resolves an appointment by the order id issued at
	// reservation time, letting the post-checkout page poll state without
	// holding the session id.
	GetByOrder(ctx context.Context, orderID string) (*models.Appointment, error)

	Cancel(ctx context.Context, appointmentID string) error
	Complete(ctx context.Context, appointmentID string) error
	// ExpirePending is the sweep entry point: it cancels the appointment if
	// it is still awaiting payment and reports whether it did.
	ExpirePending(ctx context.Context, appointmentID string) (bool, error)

	ListDoctorDay(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	ListPatientAppointments(ctx context.Context, patientUserID uuid.UUID) ([]models.Appointment, error)
}

// ExpiryScheduler enqueues the delayed reclaim of a pending reservation.
// Implemented over asynq in services/tasks.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, appointmentID string, at time.Time) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	DoctorRepo   doctorRepo.DoctorRepository
	ScheduleRepo scheduleRepo.ScheduleRepository
	ApptRepo     appointmentRepo.AppointmentRepository
	Gateway      payment.Gateway
	Notifier     notification.NotificationService
	// Expiry may be nil; the lazy reclaim in Reserve still frees expired
	// slots without it.
	Expiry ExpiryScheduler
	Logger *zap.Logger

	SuccessURL string
	CancelURL  string
}
