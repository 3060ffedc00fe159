package models

import "time"

// Vehicle is a customer's registered electric vehicle.
type Vehicle struct {
	ID          int64  `json:"id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	PlateNumber string `json:"plateNumber"`
}

// ServiceCenter represents a physical service center location.
type ServiceCenter struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Active  bool   `json:"active"`
}

// TimeSlot is a bookable window at a service center on a given date.
type TimeSlot struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
}

// Service is a single billable maintenance operation.
type Service struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"` // minor currency units
	DurationMinutes int    `json:"durationMinutes"`
	Active          bool   `json:"active"`
}

// Package is a bundle of services sold as one subscription product.
type Package struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Price              int64   `json:"price"`
	DiscountedPrice    int64   `json:"discountedPrice,omitempty"` // total price after discount, 0 if none
	IncludedServiceIDs []int64 `json:"includedServiceIds"`
}

// Subscription is a customer's active purchase of a Package, granting
// zero-price coverage for its included services.
type Subscription struct {
	ID                 int64     `json:"id"`
	PackageID          int64     `json:"packageId"`
	VehicleID          int64     `json:"vehicleId"`
	Status             string    `json:"status"` // "active", "expired", "exhausted"
	IncludedServiceIDs []int64   `json:"includedServiceIds"`
	ExpiresAt          time.Time `json:"expiresAt"`
}

// IsActive reports whether the subscription still grants coverage.
func (s Subscription) IsActive() bool {
	return s.Status == "active"
}

// Covers reports whether the subscription includes the given service.
func (s Subscription) Covers(serviceID int64) bool {
	if !s.IsActive() {
		return false
	}
	for _, id := range s.IncludedServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
