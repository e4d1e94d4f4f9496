package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"github.com/go-chi/chi/v5"
)

type PurchaseRequest struct {
	UserEmail    string  `json:"userEmail"`
	PackageID    string  `json:"packageId"`
	PackageTitle string  `json:"packageTitle"`
	PackageImage string  `json:"packageImage"`
	Price        float64 `json:"price"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func naturalKeyMissing(email, packageID string) error {
	var fields []string
	if email == "" {
		fields = append(fields, "userEmail")
	}
	if packageID == "" {
		fields = append(fields, "packageId")
	}
	if len(fields) > 0 {
		return common.Missing("Missing required fields", fields...)
	}
	return nil
}

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	purchases, err := h.Purchases.ListByEmail(ctx, email)
	if err != nil {
		writeError(w, r, err, "Failed to fetch packages")
		return
	}
	writeJSON(w, http.StatusOK, purchases)
}

func (h *Handler) ListAllPurchases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	purchases, err := h.Purchases.ListAll(ctx)
	if err != nil {
		writeError(w, r, err, "Failed to fetch packages")
		return
	}
	writeJSON(w, http.StatusOK, purchases)
}

func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	p, err := h.Purchases.Get(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Package not found")
		return
	}
	if err != nil {
		writeError(w, r, err, "Failed to fetch package")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CheckPurchase(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := withTimeout(r)
	defer cancel()

	exists, err := h.Purchases.Exists(ctx, q.Get("email"), q.Get("packageId"))
	if err != nil {
		writeError(w, r, err, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
}

func (h *Handler) CountPurchases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	count, err := h.Purchases.Count(ctx, chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, err, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: count})
}

// CreatePurchase adds a package to the user's list. The unique (userEmail, packageId)
// index turns a second add into a conflict. New purchases always start unpaid.
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if err := naturalKeyMissing(req.UserEmail, req.PackageID); err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	id, err := h.Purchases.Create(ctx, &models.Purchase{
		UserEmail:    req.UserEmail,
		PackageID:    req.PackageID,
		PackageTitle: req.PackageTitle,
		PackageImage: req.PackageImage,
		Price:        req.Price,
		CreatedAt:    time.Now(),
	})
	if errors.Is(err, common.ErrConflict) {
		writeMessage(w, http.StatusConflict, "Already added")
		return
	}
	if err != nil {
		writeError(w, r, err, "Failed to add package")
		return
	}
	writeJSON(w, http.StatusOK, InsertResponse{Success: true, InsertedID: id})
}

func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Purchases.Delete(ctx, id)
	if err != nil {
		writeError(w, r, err, "Failed to delete package")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
