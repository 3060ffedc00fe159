package platform

import (
	"context"
	"fmt"
	"net/http"

	"voltcare/models"
)

// ListActiveSubscriptionsForVehicle returns the vehicle's active package
// subscriptions, each with its included-services list.
func (c *Client) ListActiveSubscriptionsForVehicle(ctx context.Context, token string, vehicleID int64) ([]models.Subscription, error) {
	path := fmt.Sprintf("/subscriptions?vehicleId=%d&status=active", vehicleID)
	var out struct {
		Subscriptions []models.Subscription `json:"subscriptions"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Subscriptions, nil
}
