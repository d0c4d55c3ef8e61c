package handlers

import (
	"delivery-driver-service/internal/api/dto"
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/geo"
	"delivery-driver-service/internal/ports"
	"delivery-driver-service/internal/services"
	"errors"
	"log"
	"net/http"
)

// DeliveryHandler serves the driver's delivery list ordered by distance.
type DeliveryHandler struct {
	Repo   ports.DeliveryRepository
	Sorter *geo.SortCache[*domain.Delivery]
}

type nearbyQuery struct {
	Lat      *float64 `query:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng      *float64 `query:"lng" validate:"omitempty,gte=-180,lte=180"`
	Radius   *float64 `query:"radius_m" validate:"omitempty,gte=0"`
	Limit    int      `query:"limit" validate:"gte=0,lte=500"`
	Statuses []string `query:"status" validate:"dive,oneof=pending in_transit delivered failed"`
}

func parseNearbyQuery(r *http.Request) (nearbyQuery, error) {
	q := r.URL.Query()

	var (
		nq  nearbyQuery
		err error
	)
	if nq.Lat, err = floatParam(q, "lat"); err != nil {
		return nq, err
	}
	if nq.Lng, err = floatParam(q, "lng"); err != nil {
		return nq, err
	}
	if nq.Radius, err = floatParam(q, "radius_m"); err != nil {
		return nq, err
	}
	if nq.Limit, err = intParam(q, "limit"); err != nil {
		return nq, err
	}
	nq.Statuses = listParam(q, "status")

	if (nq.Lat == nil) != (nq.Lng == nil) {
		return nq, errors.New("lat and lng must be provided together")
	}

	return nq, validateQuery(nq)
}

// Nearby lists deliveries nearest-first from the lat/lng query parameters.
// Without a location the backend order is returned and distances are zero.
func (h *DeliveryHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	nq, err := parseNearbyQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req := services.NearbyRequest{
		Limit:    nq.Limit,
		Statuses: nq.Statuses,
	}
	if nq.Lat != nil {
		req.Reference = &domain.Coordinates{Lat: *nq.Lat, Lon: *nq.Lng}
	}
	if nq.Radius != nil {
		req.RadiusMeters = *nq.Radius
	}

	nearby, err := services.ListNearbyDeliveries(r.Context(), req, h.Repo, h.Sorter)
	if err != nil {
		log.Printf("list nearby deliveries failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListNearbyDeliveriesResponse{
		Deliveries: make([]dto.NearbyDeliveryResponse, 0, len(nearby)),
	}
	if req.Reference != nil {
		res.Origin = &dto.CoordinateResponse{Lat: req.Reference.Lat, Lng: req.Reference.Lon}
	}
	for _, n := range nearby {
		d := n.Delivery
		res.Deliveries = append(res.Deliveries, dto.NearbyDeliveryResponse{
			DeliveryID:     d.DeliveryID,
			Reference:      d.Reference,
			CustomerName:   d.CustomerName,
			Address:        d.Address,
			Status:         d.Status,
			Lat:            d.Lat,
			Lng:            d.Lng,
			DistanceMeters: n.DistanceMeters,
			DistanceLabel:  n.DistanceLabel,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
