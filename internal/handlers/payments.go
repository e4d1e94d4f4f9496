package handlers

import (
	"net/http"

	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"github.com/AnshRaj112/goexplore-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentIntentRequest struct {
	AmountInCents int64 `json:"amountInCents"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type PaymentResult struct {
	InsertedID primitive.ObjectID `json:"insertedId"`
}

type RecordPaymentResponse struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	InsertedID    primitive.ObjectID  `json:"insertedId"`
	PaymentResult PaymentResult       `json:"paymentResult"`
	UpdateResult  models.UpdateResult `json:"updateResult"`
}

type PaymentStatusRequest struct {
	Status string `json:"status"`
}

// ListPayments returns the payment history visible to the caller.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	p, ok := services.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	payments, err := h.Payments.ListPayments(ctx, p.Email, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch payments history")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req PaymentIntentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Amount must be a positive integer")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	secret, err := h.Payments.CreateIntent(ctx, req.AmountInCents)
	if err != nil {
		writeError(w, r, err, "Failed to create payment intent")
		return
	}
	writeJSON(w, http.StatusOK, PaymentIntentResponse{ClientSecret: secret})
}

// RecordPayment marks a purchase paid and stores its payment record.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var in services.RecordPaymentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err, "Failed to process payment")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Payments.RecordPayment(ctx, in)
	if err != nil {
		writeError(w, r, err, "Failed to process payment")
		return
	}

	logging.FromContext(r.Context()).Info("payment recorded",
		"payment_id", res.InsertedID.Hex(),
		"purchase_id", in.PackageID,
	)
	writeJSON(w, http.StatusOK, RecordPaymentResponse{
		Success:       true,
		Message:       "Payment recorded successfully",
		InsertedID:    res.InsertedID,
		PaymentResult: PaymentResult{InsertedID: res.InsertedID},
		UpdateResult:  res.Update,
	})
}

func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req PaymentStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	payment, err := h.Payments.UpdateStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, r, err, "Failed to update payment")
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *Handler) PaymentStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	stats, err := h.Payments.Stats(ctx)
	if err != nil {
		writeError(w, r, err, "Failed to load payment stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
