package dto

type EmissionsRequest struct {
	DistanceKM   float64 `json:"distance_km"`
	FuelType     string  `json:"fuel_type"`
	VehicleClass string  `json:"vehicle_class"`
	LoadKG       float64 `json:"load_kg"`
}

type EmissionsResponse struct {
	CO2KG          float64 `json:"co2_kg"`
	FuelLiters     float64 `json:"fuel_liters"`
	EmissionFactor float64 `json:"emission_factor"`
	LoadMultiplier float64 `json:"load_multiplier"`
}
