package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"ev-rental-backend/internal/domain"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Rental   *RentalHandler
	Handover *HandoverHandler
	Return   *ReturnHandler
	Feedback *FeedbackHandler
	Payment  *PaymentHandler
	Photo    *PhotoHandler
	Catalog  *CatalogHandler
	AuthMW   *AuthMiddleware
}

// NewRouter mounts the API under /api/v1. Everything except login, register,
// the payment webhook and the mock storage endpoints sits behind the auth
// middleware.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public endpoints.
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	// Payment provider webhook; authenticated by the shared delivery secret
	// inside the handler, not by user tokens.
	api.HandleFunc("/payments/{id}/paid", h.Payment.MarkPaid).Methods(http.MethodPost)
	// Mock storage endpoints backing presigned URLs in development.
	api.HandleFunc("/photos/upload/{key}", h.Photo.MockUpload).Methods(http.MethodPut)
	api.HandleFunc("/photos/download/{key}", h.Photo.MockDownload).Methods(http.MethodGet)

	// Authenticated endpoints.
	auth := api.NewRoute().Subrouter()
	auth.Use(h.AuthMW.Authenticate)

	staff := []domain.UserRole{domain.UserRoleStaff, domain.UserRoleAdmin}

	// Catalog lookups.
	auth.HandleFunc("/vehicles/{id}", h.Catalog.GetVehicle).Methods(http.MethodGet)
	auth.HandleFunc("/branches/{id}", h.Catalog.GetBranch).Methods(http.MethodGet)

	// Rental order lifecycle.
	auth.HandleFunc("/rentals", RequireRole(h.Rental.Create, domain.UserRoleRenter)).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/mine", RequireRole(h.Rental.ListMine, domain.UserRoleRenter)).Methods(http.MethodGet)
	auth.HandleFunc("/rentals", RequireRole(h.Rental.List, staff...)).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id}", h.Rental.Get).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id}/confirm", RequireRole(h.Rental.Confirm, staff...)).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/{id}/cancel", RequireRole(h.Rental.Cancel, domain.UserRoleRenter)).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/{id}/reject", RequireRole(h.Rental.Reject, staff...)).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/{id}/close", RequireRole(h.Rental.Close, domain.UserRoleAdmin)).Methods(http.MethodPost)

	// Handover workflow.
	auth.HandleFunc("/rentals/{id}/gates", RequireRole(h.Handover.GateStatus, staff...)).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id}/contract/sign", RequireRole(h.Handover.SignContract, staff...)).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/{id}/checkin", RequireRole(h.Handover.SubmitCheckin, staff...)).Methods(http.MethodPost)

	// Return workflow.
	auth.HandleFunc("/rentals/{id}/checkout/quote", RequireRole(h.Return.Quote, staff...)).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id}/checkout", RequireRole(h.Return.SubmitCheckout, staff...)).Methods(http.MethodPost)

	// Payments and feedback.
	auth.HandleFunc("/rentals/{id}/payments", h.Payment.ListByRental).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id}/feedback", RequireRole(h.Feedback.Submit, domain.UserRoleRenter)).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/{id}/feedback", h.Feedback.Get).Methods(http.MethodGet)

	// Inspection photo uploads.
	auth.HandleFunc("/photos/uploads", h.Photo.RequestUpload).Methods(http.MethodPost)

	return r
}
