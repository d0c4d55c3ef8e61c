package handlers

import (
	"delivery-driver-service/internal/api/dto"
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/geo"
	"net/http"
)

// DistanceHandler exposes point-to-point great-circle distance.
type DistanceHandler struct {
	Calc *geo.Calculator
}

type distanceQuery struct {
	FromLat *float64 `query:"from_lat" validate:"required,gte=-90,lte=90"`
	FromLng *float64 `query:"from_lng" validate:"required,gte=-180,lte=180"`
	ToLat   *float64 `query:"to_lat" validate:"required,gte=-90,lte=90"`
	ToLng   *float64 `query:"to_lng" validate:"required,gte=-180,lte=180"`
}

func (h *DistanceHandler) Distance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	var (
		dq  distanceQuery
		err error
	)
	params := []struct {
		key string
		dst **float64
	}{
		{"from_lat", &dq.FromLat},
		{"from_lng", &dq.FromLng},
		{"to_lat", &dq.ToLat},
		{"to_lng", &dq.ToLng},
	}
	for _, p := range params {
		if *p.dst, err = floatParam(q, p.key); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := validateQuery(dq); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	calc := h.Calc
	if calc == nil {
		calc = geo.Default()
	}

	from := domain.Coordinates{Lat: *dq.FromLat, Lon: *dq.FromLng}
	to := domain.Coordinates{Lat: *dq.ToLat, Lon: *dq.ToLng}
	meters := calc.Distance(from, to)

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		From:   dto.CoordinateResponse{Lat: from.Lat, Lng: from.Lon},
		To:     dto.CoordinateResponse{Lat: to.Lat, Lng: to.Lon},
		Meters: meters,
		Label:  geo.FormatDistance(meters),
	})
}
