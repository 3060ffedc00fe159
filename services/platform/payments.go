package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"voltcare/models"
)

// CreateIntent requests a payment intent for the appointment. The amount is
// the client-side estimate; the platform recomputes the authoritative amount
// and may reject the request outright for a zero-cost appointment — callers
// are responsible for reclassifying that rejection (see services/payment).
func (c *Client) CreateIntent(ctx context.Context, token string, appointmentID, amount int64, method, returnURL string) (*models.PaymentIntent, error) {
	body := map[string]interface{}{
		"appointmentId": appointmentID,
		"amount":        amount,
		"method":        method,
		"returnUrl":     returnURL,
	}
	var out models.PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payments/intents", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByCode looks up a payment's status by its payment code. Used by the
// payment callback page to re-associate the gateway result.
func (c *Client) GetByCode(ctx context.Context, token, code string) (*models.PaymentStatus, error) {
	path := fmt.Sprintf("/payments/by-code/%s", url.PathEscape(code))
	var out models.PaymentStatus
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
