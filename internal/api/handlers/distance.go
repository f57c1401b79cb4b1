package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"transport-route-service/internal/api/dto"
	"transport-route-service/internal/domain"
	"transport-route-service/internal/ports"
	"transport-route-service/internal/resolve"
	"transport-route-service/internal/services/batch"
)

const maxBatchRows = 500

type DistanceHandler struct {
	Resolver ports.DistanceResolver
	Logger   *zap.Logger
}

// Resolve handles a single origin/destination pair.
func (h *DistanceHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.DistanceRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid json body")
		return
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		writeError(w, r, h.Logger, http.StatusBadRequest, "origin and destination are required")
		return
	}

	result, err := h.Resolver.ResolveDistance(r.Context(), origin, destination)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.DistanceResponse{
		Origin:      origin,
		Destination: destination,
		DistanceKM:  result.KM,
		Source:      string(result.Source),
	})
}

// ResolveBatch handles many pairs, reporting a per-row outcome.
func (h *DistanceHandler) ResolveBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchDistanceRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.Pairs) == 0 {
		writeError(w, r, h.Logger, http.StatusBadRequest, "pairs must not be empty")
		return
	}
	if len(req.Pairs) > maxBatchRows {
		writeError(w, r, h.Logger, http.StatusBadRequest, "too many pairs")
		return
	}

	pairs := make([]batch.Pair, 0, len(req.Pairs))
	for _, p := range req.Pairs {
		pairs = append(pairs, batch.Pair{
			ID:          p.ID,
			Origin:      strings.TrimSpace(p.Origin),
			Destination: strings.TrimSpace(p.Destination),
		})
	}

	results := batch.ResolveAll(r.Context(), h.Resolver, pairs, req.Workers)

	res := dto.BatchDistanceResponse{Results: make([]dto.BatchRowResponse, 0, len(results))}
	for _, row := range results {
		res.Results = append(res.Results, dto.BatchRowResponse{
			ID:          row.ID,
			Origin:      row.Origin,
			Destination: row.Destination,
			DistanceKM:  row.KM,
			Source:      string(row.Source),
			Error:       row.Err,
		})
	}
	writeJSON(w, r, h.Logger, http.StatusOK, res)
}

// writeResolveError maps engine failures onto status codes: malformed
// input is a 400, a failed endpoint lookup is a 422 naming the side, and
// anything else is a 502 from the upstream services.
func (h *DistanceHandler) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	var resErr *resolve.ResolutionError
	switch {
	case errors.Is(err, domain.ErrEmptyToken), errors.Is(err, domain.ErrCoordinateRange):
		writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
	case errors.As(err, &resErr):
		writeError(w, r, h.Logger, http.StatusUnprocessableEntity, resErr.Error())
	default:
		h.Logger.Error("distance resolution failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusBadGateway, "distance resolution failed")
	}
}
