package payment

import (
	"context"
	"fmt"

	"voltcare/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeGateway is a PaymentGateway backed by Stripe Checkout, used when the
// platform's own payment API is not the configured gateway. stripe.Key must be
// set before use.
type StripeGateway struct {
	Currency string
}

// NewStripeGateway returns a Stripe-backed gateway charging in the given
// currency (defaults to USD).
func NewStripeGateway(currency string) *StripeGateway {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{Currency: currency}
}

// CreateIntent opens a Stripe Checkout session for the appointment. Stripe has
// no notion of a free checkout, so a non-positive amount is rejected with the
// same message class the platform gateway uses; callers reclassify it as Free.
func (g *StripeGateway) CreateIntent(ctx context.Context, token string, appointmentID, amount int64, method, returnURL string) (*models.PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("no payment required: appointment is free")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(returnURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.Currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Service appointment #%d", appointmentID)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"appointmentId": fmt.Sprintf("%d", appointmentID),
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	return &models.PaymentIntent{
		PaymentIntentID: s.ID,
		PaymentCode:     s.ID,
		PaymentURL:      s.URL,
		Amount:          s.AmountTotal,
	}, nil
}

// GetByCode looks up a checkout session by its ID.
func (g *StripeGateway) GetByCode(ctx context.Context, token, code string) (*models.PaymentStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := session.Get(code, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stripe checkout session: %w", err)
	}
	status := "pending"
	if s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		status = "paid"
	}
	return &models.PaymentStatus{Status: status, Amount: s.AmountTotal}, nil
}
