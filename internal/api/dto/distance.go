package dto

type DistanceResponse struct {
	From   CoordinateResponse `json:"from"`
	To     CoordinateResponse `json:"to"`
	Meters float64            `json:"meters"`
	Label  string             `json:"label"`
}
