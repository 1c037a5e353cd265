package payment

import (
	"context"
	"errors"

	"clinicore/models"
)

// ErrSessionNotFound is returned when the gateway does not know the session id.
var ErrSessionNotFound = errors.New("checkout session not found")

// Gateway abstracts the external payment provider. The booking flow only ever
// opens checkout sessions and re-verifies their status; it never trusts
// client-supplied payment state.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (models.CheckoutStatus, error)
}
