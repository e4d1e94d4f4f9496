package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Ledger events.
const (
	LedgerEventRecorded      = "recorded"
	LedgerEventStatusChanged = "status_changed"
)

// LedgerEntry is one append-only row of the payment ledger.
type LedgerEntry struct {
	PaymentID     string
	PurchaseID    string
	Email         string
	Amount        float64
	Status        string
	Event         string
	TransactionID string
}

// LedgerStats summarises the ledger for the admin dashboard.
type LedgerStats struct {
	Count       int64            `json:"count"`
	TotalAmount float64          `json:"totalAmount"`
	ByStatus    map[string]int64 `json:"byStatus"`
}

// PaymentLedger mirrors payment events into PostgreSQL for reporting. Mongo stays the
// source of truth.
type PaymentLedger struct {
	db *sql.DB
}

func NewPaymentLedger(db *sql.DB) *PaymentLedger {
	return &PaymentLedger{db: db}
}

func (l *PaymentLedger) Append(ctx context.Context, e LedgerEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO payment_ledger (id, payment_id, purchase_id, email, amount, status, event, transaction_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), e.PaymentID, e.PurchaseID, e.Email, e.Amount, e.Status, e.Event, e.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// Stats counts recorded payments and groups them by their latest status.
func (l *PaymentLedger) Stats(ctx context.Context) (LedgerStats, error) {
	stats := LedgerStats{ByStatus: map[string]int64{}}

	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM payment_ledger WHERE event = $1`,
		LedgerEventRecorded,
	).Scan(&stats.Count, &stats.TotalAmount)
	if err != nil {
		return LedgerStats{}, fmt.Errorf("ledger totals: %w", err)
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM (
			SELECT DISTINCT ON (payment_id) payment_id, status
			FROM payment_ledger
			ORDER BY payment_id, created_at DESC
		) latest GROUP BY status`,
	)
	if err != nil {
		return LedgerStats{}, fmt.Errorf("ledger status breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return LedgerStats{}, err
		}
		stats.ByStatus[status] = n
	}
	return stats, rows.Err()
}
