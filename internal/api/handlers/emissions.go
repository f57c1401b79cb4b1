package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"transport-route-service/internal/api/dto"
	"transport-route-service/internal/services/emissions"
)

type EmissionsHandler struct {
	Logger *zap.Logger
}

// Estimate computes CO2e for an already-resolved distance.
func (h *EmissionsHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req dto.EmissionsRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid json body")
		return
	}

	result, err := emissions.Calculate(
		req.DistanceKM,
		emissions.NormalizeFuel(req.FuelType),
		emissions.NormalizeClass(req.VehicleClass),
		req.LoadKG,
	)
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.EmissionsResponse{
		CO2KG:          result.CO2KG,
		FuelLiters:     result.FuelLiters,
		EmissionFactor: result.EmissionFactor,
		LoadMultiplier: result.LoadMultiplier,
	})
}
