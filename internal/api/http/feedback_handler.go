package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"ev-rental-backend/internal/service"
)

type FeedbackHandler struct {
	feedback service.FeedbackService
}

func NewFeedbackHandler(feedback service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	var req feedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fb, err := h.feedback.Submit(r.Context(), ac.UserID, mux.Vars(r)["id"], req.Rating, req.Comment)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, fb)
}

func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	fb, err := h.feedback.GetByRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if fb == nil {
		respondError(w, http.StatusNotFound, "not_found", "no feedback submitted for rental")
		return
	}
	respondJSON(w, http.StatusOK, fb)
}
