package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ledger is the reporting copy of payment events.
type Ledger interface {
	Append(ctx context.Context, e LedgerEntry) error
	Stats(ctx context.Context) (LedgerStats, error)
}

type PaymentPublisher interface {
	Publish(ctx context.Context, event PaymentEvent) error
}

type PaymentMetrics interface {
	ObservePayment(outcome string, amount float64)
}

// PaymentDeps wires a PaymentService. Users and Payments are required; the rest are
// optional and skipped when nil.
type PaymentDeps struct {
	Users     UserStore
	Payments  PaymentStore
	Ledger    Ledger
	Publisher PaymentPublisher
	Intents   PaymentIntents
	Metrics   PaymentMetrics
}

type PaymentService struct {
	deps PaymentDeps
}

func NewPaymentService(deps PaymentDeps) *PaymentService {
	return &PaymentService{deps: deps}
}

// ListPayments applies the visibility policy: admins see every payment, everyone else
// only their own, and only when they ask for their own email explicitly.
func (s *PaymentService) ListPayments(ctx context.Context, sessionEmail, requestedEmail string) ([]models.Payment, error) {
	user, err := s.deps.Users.FindByEmail(ctx, sessionEmail)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.New(common.ErrUnauthenticated, "Unauthorized")
	}
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleAdmin {
		return s.deps.Payments.List(ctx, "")
	}
	if requestedEmail != sessionEmail {
		return nil, common.New(common.ErrForbidden, "Forbidden access")
	}
	return s.deps.Payments.List(ctx, sessionEmail)
}

// RecordPaymentInput is the body of POST /payments. PackageID carries the purchase id.
type RecordPaymentInput struct {
	PackageID     string   `json:"packageId"`
	Email         string   `json:"email"`
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"paymentMethod"`
	TransactionID string   `json:"transactionId"`
	Status        string   `json:"status"`
	Image         string   `json:"image"`
	PackageName   string   `json:"packageName"`
}

func (in RecordPaymentInput) missing() []string {
	var fields []string
	if in.PackageID == "" {
		fields = append(fields, "packageId")
	}
	if in.Email == "" {
		fields = append(fields, "email")
	}
	if in.Amount == nil {
		fields = append(fields, "amount")
	}
	if in.PaymentMethod == "" {
		fields = append(fields, "paymentMethod")
	}
	if in.TransactionID == "" {
		fields = append(fields, "transactionId")
	}
	return fields
}

// RecordPayment marks the purchase paid and stores the payment in one step. A missing
// or already-paid purchase is ErrNotFound and leaves nothing behind.
func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (models.RecordResult, error) {
	if missing := in.missing(); len(missing) > 0 {
		s.observe("invalid", 0)
		return models.RecordResult{}, common.Missing("Missing required payment fields", missing...)
	}
	if *in.Amount <= 0 {
		s.observe("invalid", 0)
		return models.RecordResult{}, common.New(common.ErrInvalidInput, "Amount must be greater than zero")
	}
	purchaseID, err := primitive.ObjectIDFromHex(in.PackageID)
	if err != nil {
		s.observe("invalid", 0)
		return models.RecordResult{}, common.New(common.ErrInvalidInput, "Invalid package id")
	}

	status := in.Status
	if status == "" {
		status = models.PaymentStatusPaid
	}
	payment := &models.Payment{
		PackageID:     in.PackageID,
		Email:         in.Email,
		Amount:        *in.Amount,
		Image:         in.Image,
		Status:        status,
		PackageName:   in.PackageName,
		PaymentMethod: in.PaymentMethod,
		TransactionID: in.TransactionID,
	}

	res, err := s.deps.Payments.RecordForPurchase(ctx, purchaseID, payment)
	switch {
	case errors.Is(err, common.ErrNotFound):
		s.observe("not_found", 0)
		return models.RecordResult{}, common.New(common.ErrNotFound, "Package not found or already paid")
	case errors.Is(err, common.ErrConflict):
		s.observe("conflict", 0)
		return models.RecordResult{}, common.New(common.ErrConflict, "Payment already recorded for this transaction")
	case err != nil:
		s.observe("error", 0)
		return models.RecordResult{}, fmt.Errorf("record payment: %w", err)
	}

	s.observe("recorded", payment.Amount)
	s.afterCommit(ctx, LedgerEntry{
		PaymentID:     res.InsertedID.Hex(),
		PurchaseID:    in.PackageID,
		Email:         payment.Email,
		Amount:        payment.Amount,
		Status:        payment.Status,
		Event:         LedgerEventRecorded,
		TransactionID: payment.TransactionID,
	}, PaymentEventRecorded)
	return res, nil
}

// UpdateStatus changes the status of an existing payment.
func (s *PaymentService) UpdateStatus(ctx context.Context, id, status string) (*models.Payment, error) {
	paymentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.New(common.ErrInvalidInput, "Invalid payment id")
	}
	if status == "" {
		return nil, common.Missing("Missing required fields", "status")
	}

	p, err := s.deps.Payments.UpdateStatus(ctx, paymentID, status)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.New(common.ErrNotFound, "Payment not found")
	}
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, LedgerEntry{
		PaymentID:     p.ID.Hex(),
		PurchaseID:    p.PackageID,
		Email:         p.Email,
		Amount:        p.Amount,
		Status:        p.Status,
		Event:         LedgerEventStatusChanged,
		TransactionID: p.TransactionID,
	}, PaymentEventStatusChanged)
	return p, nil
}

// CreateIntent asks the processor for a card payment intent of amountCents.
func (s *PaymentService) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	if s.deps.Intents == nil {
		return "", common.New(common.ErrUnavailable, "Payment processor is not configured")
	}
	if amountCents <= 0 {
		return "", common.New(common.ErrInvalidInput, "Amount must be a positive integer")
	}
	return s.deps.Intents.CreateIntent(ctx, amountCents)
}

func (s *PaymentService) Stats(ctx context.Context) (LedgerStats, error) {
	if s.deps.Ledger == nil {
		return LedgerStats{}, common.New(common.ErrUnavailable, "Payment ledger is not configured")
	}
	return s.deps.Ledger.Stats(ctx)
}

// afterCommit mirrors a committed payment change to the ledger and the live feed.
// Failures are logged only; Mongo already holds the authoritative record.
func (s *PaymentService) afterCommit(ctx context.Context, entry LedgerEntry, eventType string) {
	log := logging.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	if s.deps.Ledger != nil {
		if err := s.deps.Ledger.Append(ctx, entry); err != nil {
			log.Error("failed to append payment ledger entry", "payment_id", entry.PaymentID, "error", err)
		}
	}
	if s.deps.Publisher != nil {
		err := s.deps.Publisher.Publish(ctx, PaymentEvent{
			Type:       eventType,
			PaymentID:  entry.PaymentID,
			PurchaseID: entry.PurchaseID,
			Email:      entry.Email,
			Amount:     entry.Amount,
			Status:     entry.Status,
		})
		if err != nil {
			log.Warn("failed to publish payment event", "payment_id", entry.PaymentID, "error", err)
		}
	}
}

func (s *PaymentService) observe(outcome string, amount float64) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObservePayment(outcome, amount)
	}
}
