package ports

import (
	"context"
	"delivery-driver-service/internal/domain"
)

// Port: a boundary for retrieving the deliveries assigned to a driver.
type DeliveryRepository interface {
	// Retrieve all deliveries known to the data source.
	ListDeliveries(ctx context.Context) ([]*domain.Delivery, error)
}
