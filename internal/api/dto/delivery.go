package dto

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type NearbyDeliveryResponse struct {
	DeliveryID     int     `json:"delivery_id"`
	Reference      string  `json:"reference"`
	CustomerName   string  `json:"customer_name"`
	Address        string  `json:"address"`
	Status         string  `json:"status"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	DistanceMeters float64 `json:"distance_meters"`
	DistanceLabel  string  `json:"distance_label,omitempty"`
}

// Origin is null when the request carried no device location.
type ListNearbyDeliveriesResponse struct {
	Origin     *CoordinateResponse      `json:"origin"`
	Deliveries []NearbyDeliveryResponse `json:"deliveries"`
}
