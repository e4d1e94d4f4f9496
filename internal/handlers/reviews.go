package handlers

import (
	"net/http"

	"github.com/AnshRaj112/goexplore-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type ReviewUpdateRequest struct {
	Comment string `json:"comment"`
	Rating  *int   `json:"rating"`
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := withTimeout(r)
	defer cancel()

	reviews, err := h.Reviews.List(ctx, q.Get("packageId"), q.Get("userEmail"))
	if err != nil {
		writeError(w, r, err, "Failed to get reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// ListAllReviews serves the admin dashboard; it ignores filters.
func (h *Handler) ListAllReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	reviews, err := h.Reviews.List(ctx, "", "")
	if err != nil {
		writeError(w, r, err, "Failed to get reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) AverageRating(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	summary, err := h.Reviews.Average(ctx, chi.URLParam(r, "packageId"))
	if err != nil {
		writeError(w, r, err, "Failed to calculate rating")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in services.ReviewInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	id, err := h.Reviews.Create(ctx, in)
	if err != nil {
		writeError(w, r, err, "Failed to submit review")
		return
	}
	writeJSON(w, http.StatusOK, InsertResponse{Success: true, InsertedID: id})
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	var req ReviewUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	review, err := h.Reviews.Update(ctx, id, req.Comment, req.Rating)
	if err != nil {
		writeError(w, r, err, "Failed to update review")
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Reviews.Delete(ctx, id)
	if err != nil {
		writeError(w, r, err, "Failed to delete review")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
