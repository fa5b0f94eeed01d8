package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/service"
	"ev-rental-backend/internal/utils"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type createBookingRequest struct {
	VehicleID     string    `json:"vehicle_id"`
	BranchStartID string    `json:"branch_start_id"`
	BranchEndID   string    `json:"branch_end_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	PaymentMethod string    `json:"payment_method"`
}

type bookingResponse struct {
	Order *domain.RentalOrder       `json:"order"`
	Quote *utils.Quote              `json:"quote,omitempty"`
	View  domain.StatusPresentation `json:"view"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.VehicleID == "" || req.BranchStartID == "" || req.BranchEndID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "vehicle_id, branch_start_id and branch_end_id are required")
		return
	}

	order, quote, err := h.rentals.CreateBooking(r.Context(), service.CreateBookingInput{
		RenterID:      ac.UserID,
		VehicleID:     req.VehicleID,
		BranchStartID: req.BranchStartID,
		BranchEndID:   req.BranchEndID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bookingResponse{
		Order: order,
		Quote: quote,
		View:  domain.PresentationFor(order.Status),
	})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())
	rentalID := mux.Vars(r)["id"]

	order, err := h.rentals.Get(r.Context(), rentalID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	// Renters may only see their own orders; staff and admins see all.
	if ac.Role == domain.UserRoleRenter && order.RenterID != ac.UserID {
		respondError(w, http.StatusNotFound, "not_found", domain.ErrOrderNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, bookingResponse{
		Order: order,
		View:  domain.PresentationFor(order.Status),
	})
}

type listResponse struct {
	Orders   []domain.RentalOrder `json:"orders"`
	Total    int32                `json:"total"`
	Page     int32                `json:"page"`
	PageSize int32                `json:"page_size"`
}

// ListMine returns the authenticated renter's orders, optionally filtered by
// status.
func (h *RentalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())
	page, pageSize := pagination(r)

	orders, total, err := h.rentals.ListByRenter(r.Context(), ac.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Orders: orders, Total: total, Page: page, PageSize: pageSize})
}

// List is the staff/admin view across all renters.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	orders, total, err := h.rentals.ListByStatus(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Orders: orders, Total: total, Page: page, PageSize: pageSize})
}

func (h *RentalHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	order, err := h.rentals.Confirm(r.Context(), ac.UserID, mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookingResponse{Order: order, View: domain.PresentationFor(order.Status)})
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	var req reasonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.rentals.Cancel(r.Context(), ac.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookingResponse{Order: order, View: domain.PresentationFor(order.Status)})
}

func (h *RentalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	var req reasonRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Reason == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "a rejection reason is required")
		return
	}

	order, err := h.rentals.Reject(r.Context(), ac.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookingResponse{Order: order, View: domain.PresentationFor(order.Status)})
}

func (h *RentalHandler) Close(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	order, err := h.rentals.Close(r.Context(), ac.UserID, mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookingResponse{Order: order, View: domain.PresentationFor(order.Status)})
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
