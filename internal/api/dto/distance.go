package dto

type DistanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type DistanceResponse struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKM  float64 `json:"distance_km"`
	Source      string  `json:"source"`
}

type BatchDistanceRequest struct {
	Pairs   []BatchPair `json:"pairs"`
	Workers int         `json:"workers,omitempty"`
}

type BatchPair struct {
	ID          string `json:"id,omitempty"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type BatchRowResponse struct {
	ID          string  `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKM  float64 `json:"distance_km,omitempty"`
	Source      string  `json:"source,omitempty"`
	Error       string  `json:"error,omitempty"`
}

type BatchDistanceResponse struct {
	Results []BatchRowResponse `json:"results"`
}
