package payment

import (
	"context"
	"errors"
	"time"

	"clinicore/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway over Stripe Checkout Sessions. The API key
// is set globally on the stripe package in main.
type StripeGateway struct {
	Logger *zap.Logger
	// SessionTTL bounds how long a checkout session (and therefore a pending
	// reservation) holds its slot.
	SessionTTL time.Duration
}

func NewStripeGateway(logger *zap.Logger, sessionTTL time.Duration) *StripeGateway {
	return &StripeGateway{Logger: logger, SessionTTL: sessionTTL}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	expiresAt := time.Now().UTC().Add(g.SessionTTL)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.OrderID),
		ExpiresAt:         stripe.Int64(expiresAt.Unix()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", req.OrderID)

	s, err := session.New(params)
	if err != nil {
		g.Logger.Error("stripe: failed to create checkout session",
			zap.String("orderID", req.OrderID), zap.Error(err))
		return nil, err
	}

	return &models.CheckoutSession{
		ID:          s.ID,
		RedirectURL: s.URL,
		ExpiresAt:   time.Unix(s.ExpiresAt, 0).UTC(),
	}, nil
}

func (g *StripeGateway) GetSessionStatus(ctx context.Context, sessionID string) (models.CheckoutStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	switch {
	case s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		s.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return models.CheckoutStatusPaid, nil
	case s.Status == stripe.CheckoutSessionStatusExpired:
		return models.CheckoutStatusExpired, nil
	default:
		return models.CheckoutStatusUnpaid, nil
	}
}
