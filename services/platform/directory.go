package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"voltcare/models"
)

// ListMyVehicles returns the signed-in customer's registered vehicles.
func (c *Client) ListMyVehicles(ctx context.Context, token string) ([]models.Vehicle, error) {
	var out struct {
		Vehicles []models.Vehicle `json:"vehicles"`
	}
	if err := c.do(ctx, http.MethodGet, "/vehicles/mine", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Vehicles, nil
}

// ListActiveCenters returns all service centers currently accepting bookings.
func (c *Client) ListActiveCenters(ctx context.Context, token string) ([]models.ServiceCenter, error) {
	var out struct {
		Centers []models.ServiceCenter `json:"centers"`
	}
	if err := c.do(ctx, http.MethodGet, "/service-centers?active=true", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Centers, nil
}

// ListAvailableSlots returns the bookable time slots for a center on a date.
func (c *Client) ListAvailableSlots(ctx context.Context, token string, centerID int64, date string) ([]models.TimeSlot, error) {
	path := fmt.Sprintf("/service-centers/%d/slots?date=%s", centerID, url.QueryEscape(date))
	var out struct {
		Slots []models.TimeSlot `json:"slots"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}
