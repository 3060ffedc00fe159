package platform

import (
	"context"
	"net/http"
	"net/url"

	"voltcare/models"
)

// CatalogFilters narrows the active-services listing.
type CatalogFilters struct {
	Search   string
	Category string
}

// ListActiveServices returns the purchasable services matching the filters.
func (c *Client) ListActiveServices(ctx context.Context, token string, filters CatalogFilters) ([]models.Service, error) {
	q := url.Values{}
	q.Set("active", "true")
	if filters.Search != "" {
		q.Set("search", filters.Search)
	}
	if filters.Category != "" {
		q.Set("category", filters.Category)
	}
	var out struct {
		Services []models.Service `json:"services"`
	}
	if err := c.do(ctx, http.MethodGet, "/services?"+q.Encode(), token, nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

// ListPackages returns the purchasable service packages.
func (c *Client) ListPackages(ctx context.Context, token string) ([]models.Package, error) {
	var out struct {
		Packages []models.Package `json:"packages"`
	}
	if err := c.do(ctx, http.MethodGet, "/packages?active=true", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Packages, nil
}
