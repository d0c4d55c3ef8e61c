package services

import (
	"context"
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/geo"
	"delivery-driver-service/internal/platform/obs"
	"delivery-driver-service/internal/ports"
	"errors"
	"fmt"
	"slices"
)

// NearbyRequest describes what the driver app is asking for.
// Reference is the device location and is nil until the device has a fix.
type NearbyRequest struct {
	Reference    *domain.Coordinates
	RadiusMeters float64
	Limit        int
	Statuses     []string
}

// NearbyDelivery is a delivery annotated with its distance from the reference.
// DistanceLabel is empty when no reference was given.
type NearbyDelivery struct {
	Delivery       *domain.Delivery
	DistanceMeters float64
	DistanceLabel  string
}

// ListNearbyDeliveries loads deliveries and orders them nearest-first.
//
// Without a reference the repository order is kept and every distance is 0;
// radius filtering only applies when a reference is present.
func ListNearbyDeliveries(
	ctx context.Context,
	req NearbyRequest,
	repo ports.DeliveryRepository,
	sorter *geo.SortCache[*domain.Delivery],
) (_ []NearbyDelivery, err error) {
	defer obs.Time(ctx, "services.ListNearbyDeliveries")(&err)

	if repo == nil {
		return nil, errors.New("list nearby deliveries: repository must be non-nil")
	}
	if sorter == nil {
		return nil, errors.New("list nearby deliveries: sorter must be non-nil")
	}
	if req.RadiusMeters < 0 {
		return nil, fmt.Errorf("list nearby deliveries: radius must be non-negative, got %v", req.RadiusMeters)
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("list nearby deliveries: limit must be non-negative, got %d", req.Limit)
	}

	deliveries, err := repo.ListDeliveries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nearby deliveries: %w", err)
	}

	if len(req.Statuses) > 0 {
		deliveries = slices.DeleteFunc(slices.Clone(deliveries), func(d *domain.Delivery) bool {
			return !slices.Contains(req.Statuses, d.Status)
		})
	}

	calc := sorter.Calculator()
	ordered := sorter.Sort(deliveries, req.Reference)

	out := make([]NearbyDelivery, 0, len(ordered))
	for _, d := range ordered {
		meters := calc.DistanceTo(req.Reference, d.Position())

		// Ordered nearest-first, so everything after the first miss is also outside.
		if req.Reference != nil && req.RadiusMeters > 0 && meters > req.RadiusMeters {
			break
		}

		nd := NearbyDelivery{Delivery: d, DistanceMeters: meters}
		if req.Reference != nil {
			nd.DistanceLabel = geo.FormatDistance(meters)
		}
		out = append(out, nd)

		if req.Limit > 0 && len(out) == req.Limit {
			break
		}
	}

	return out, nil
}
