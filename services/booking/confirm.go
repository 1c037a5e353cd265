package booking

import (
	"context"
	"errors"

	"clinicore/models"
	"clinicore/services/payment"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfirmPayment drives the pending → paid transition. The session status is
// always re-fetched from the gateway; a callback claiming success is never
// taken at face value. The operation is idempotent: confirming an
// already-paid appointment returns its current state and fans out no second
// notification.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, sessionID string) (*models.ConfirmResponse, error) {
	if sessionID == "" {
		return nil, NewValidationError("missing session id", map[string]string{"sessionId": "required"})
	}

	appt, err := s.ApptRepo.GetBySessionID(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("checkout session")
	}
	if err != nil {
		return nil, NewUnavailableError("could not load appointment")
	}

	if appt.PaymentStatus == models.PaymentStatusPaid {
		// Fan-out is idempotent per recipient, so re-running it here repairs
		// a delivery that failed right after the original transition.
		if err := s.Notifier.NotifyAppointmentPaid(ctx, appt); err != nil {
			s.Logger.Error("failed to dispatch paid notification",
				zap.String("appointmentID", appt.ID.String()), zap.Error(err))
		}
		return confirmResponse(appt), nil
	}
	if appt.Status != models.AppointmentStatusScheduled {
		// canceled or completed rows are terminal for payment purposes.
		return nil, NewPaymentVerificationError("appointment is no longer payable")
	}

	status, err := s.Gateway.GetSessionStatus(ctx, sessionID)
	if errors.Is(err, payment.ErrSessionNotFound) {
		return nil, NewPaymentVerificationError("unknown checkout session")
	}
	if err != nil {
		return nil, NewUnavailableError("payment gateway unavailable")
	}
	if status != models.CheckoutStatusPaid {
		s.Logger.Warn("payment confirmation rejected",
			zap.String("sessionID", sessionID),
			zap.String("gatewayStatus", string(status)))
		return nil, NewPaymentVerificationError("checkout session is not paid")
	}

	// MarkPaid is guarded on (pending, scheduled). A zero-row update means
	// the appointment moved while the gateway was being consulted: either a
	// concurrent confirm won, or the row was canceled. Re-read to tell the
	// two apart.
	transitioned, err := s.ApptRepo.MarkPaid(ctx, appt.ID)
	if err != nil {
		return nil, NewUnavailableError("could not update appointment")
	}
	if !transitioned {
		appt, err = s.ApptRepo.GetByID(ctx, appt.ID)
		if err != nil {
			return nil, NewUnavailableError("could not load appointment")
		}
		if appt.PaymentStatus != models.PaymentStatusPaid {
			return nil, NewPaymentVerificationError("appointment is no longer payable")
		}
		return confirmResponse(appt), nil
	}
	appt.PaymentStatus = models.PaymentStatusPaid

	if err := s.Notifier.NotifyAppointmentPaid(ctx, appt); err != nil {
		// The transition is durable; fan-out failure must not undo it.
		s.Logger.Error("failed to dispatch paid notification",
			zap.String("appointmentID", appt.ID.String()), zap.Error(err))
	}

	s.Logger.Info("appointment paid",
		zap.String("appointmentID", appt.ID.String()),
		zap.String("orderID", appt.OrderID))

	return confirmResponse(appt), nil
}

func confirmResponse(appt *models.Appointment) *models.ConfirmResponse {
	return &models.ConfirmResponse{
		AppointmentID: appt.ID.String(),
		OrderID:       appt.OrderID,
		Date:          appt.Date,
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		PaymentStatus: appt.PaymentStatus,
	}
}
