package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/repository"
)

// CatalogHandler serves the read-only vehicle and branch lookups the booking
// screens need. The catalog is maintained elsewhere; this service only reads
// it.
type CatalogHandler struct {
	vehicles repository.VehicleRepository
	branches repository.BranchRepository
}

func NewCatalogHandler(vehicles repository.VehicleRepository, branches repository.BranchRepository) *CatalogHandler {
	return &CatalogHandler{vehicles: vehicles, branches: branches}
}

type vehicleResponse struct {
	Vehicle *domain.Vehicle     `json:"vehicle"`
	Type    *domain.VehicleType `json:"type"`
}

func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	vtype, err := h.vehicles.GetTypeByID(r.Context(), vehicle.TypeID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicleResponse{Vehicle: vehicle, Type: vtype})
}

func (h *CatalogHandler) GetBranch(w http.ResponseWriter, r *http.Request) {
	branch, err := h.branches.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "branch not found")
		return
	}
	respondJSON(w, http.StatusOK, branch)
}
