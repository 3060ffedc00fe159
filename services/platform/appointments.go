package platform

import (
	"context"
	"net/http"

	"voltcare/models"
)

// CreateAppointment books the appointment described by req on the platform.
func (c *Client) CreateAppointment(ctx context.Context, token string, req models.BookingRequest) (*models.Appointment, error) {
	var out models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
