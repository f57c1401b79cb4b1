package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"transport-route-service/internal/adapters/directory"
	"transport-route-service/internal/api/dto"
	"transport-route-service/internal/domain"
	"transport-route-service/internal/ports"
)

type FacilityHandler struct {
	Store  ports.FacilityStore
	Logger *zap.Logger
}

func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.Store.List(r.Context())
	if err != nil {
		h.Logger.Error("list facilities failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListFacilityResponse{Facilities: make([]dto.FacilityResponse, 0, len(facilities))}
	for _, f := range facilities {
		res.Facilities = append(res.Facilities, toFacilityResponse(f))
	}
	writeJSON(w, r, h.Logger, http.StatusOK, res)
}

func (h *FacilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f, ok, err := h.Store.LookupByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("facility lookup failed", zap.String("id", id), zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ok {
		writeError(w, r, h.Logger, http.StatusNotFound, "facility not found")
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, toFacilityResponse(f))
}

func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, ok := h.decodeFacility(w, r, "")
	if !ok {
		return
	}

	created, err := h.Store.Create(r.Context(), f)
	if err != nil {
		if errors.Is(err, directory.ErrDuplicateFacility) {
			writeError(w, r, h.Logger, http.StatusConflict, err.Error())
			return
		}
		h.Logger.Error("create facility failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, h.Logger, http.StatusCreated, toFacilityResponse(created))
}

func (h *FacilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	f, ok := h.decodeFacility(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	updated, err := h.Store.Update(r.Context(), f)
	if err != nil {
		if errors.Is(err, directory.ErrFacilityNotFound) {
			writeError(w, r, h.Logger, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("update facility failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, toFacilityResponse(updated))
}

func (h *FacilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, directory.ErrFacilityNotFound) {
			writeError(w, r, h.Logger, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("delete facility failed", zap.String("id", id), zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeFacility validates the request body; idOverride wins over the
// body's facility_id when set (the PUT route carries it in the path).
func (h *FacilityHandler) decodeFacility(w http.ResponseWriter, r *http.Request, idOverride string) (domain.Facility, bool) {
	var req dto.FacilityRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid json body")
		return domain.Facility{}, false
	}
	if strings.TrimSpace(idOverride) != "" {
		req.FacilityID = idOverride
	}

	f := domain.Facility{
		FacilityID: strings.TrimSpace(req.FacilityID),
		Name:       strings.TrimSpace(req.Name),
		Address:    strings.TrimSpace(req.Address),
		PostalCode: strings.TrimSpace(req.PostalCode),
		City:       strings.TrimSpace(req.City),
	}
	if !f.Complete() {
		writeError(w, r, h.Logger, http.StatusBadRequest,
			"facility_id, name, address, postal_code and city are required")
		return domain.Facility{}, false
	}
	return f, true
}

func toFacilityResponse(f domain.Facility) dto.FacilityResponse {
	return dto.FacilityResponse{
		ID:         f.ID,
		FacilityID: f.FacilityID,
		Name:       f.Name,
		Address:    f.Address,
		PostalCode: f.PostalCode,
		City:       f.City,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
