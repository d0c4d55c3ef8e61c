package domain

import (
	"fmt"
	"strconv"
)

// Delivery statuses as reported by the delivery backend.
const (
	StatusPending   = "pending"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// KnownStatus reports whether s is one of the delivery statuses above.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusFailed:
		return true
	}
	return false
}

// Represents a single drop-off assigned to a driver.
// The position is stored as separate lat/lng fields to match the backend payload.
type Delivery struct {
	DeliveryID   int
	Reference    string
	CustomerName string
	Address      string
	Status       string
	Lat          float64
	Lng          float64
}

// Position returns the drop-off location.
func (d Delivery) Position() Coordinates {
	return Coordinates{Lat: d.Lat, Lon: d.Lng}
}

// CacheKey identifies the delivery together with the fields that affect
// how it is listed, so a status change invalidates memoized orderings.
func (d Delivery) CacheKey() string {
	return strconv.Itoa(d.DeliveryID) + "|" + d.Status
}

// Validate checks the invariants a delivery must satisfy before it is stored.
func (d Delivery) Validate() error {
	if d.DeliveryID <= 0 {
		return fmt.Errorf("delivery: invalid id %d", d.DeliveryID)
	}
	if d.Address == "" {
		return fmt.Errorf("delivery %d: address cannot be empty", d.DeliveryID)
	}
	if !KnownStatus(d.Status) {
		return fmt.Errorf("delivery %d: unknown status %q", d.DeliveryID, d.Status)
	}
	if err := d.Position().Validate(); err != nil {
		return fmt.Errorf("delivery %d: %w", d.DeliveryID, err)
	}
	return nil
}
