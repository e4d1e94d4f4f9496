package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the payment ledger database and creates its tables.
func ConnectPostgres(ctx context.Context, postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Info("✅ Connected to PostgreSQL")

	if err = InitPostgresTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitPostgresTables creates the ledger tables if they don't exist.
func InitPostgresTables(ctx context.Context, db *sql.DB) error {
	queries := []string{
		// One row per payment event; rows are never updated.
		`CREATE TABLE IF NOT EXISTS payment_ledger (
			id UUID PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			payment_id VARCHAR(24) NOT NULL,
			purchase_id VARCHAR(24) NOT NULL,
			email VARCHAR(255) NOT NULL,
			amount NUMERIC(12, 2) NOT NULL,
			status VARCHAR(50) NOT NULL,
			event VARCHAR(50) NOT NULL,
			transaction_id VARCHAR(255)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_payment_ledger_payment_id ON payment_ledger(payment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_ledger_email ON payment_ledger(email)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_ledger_created_at ON payment_ledger(created_at)`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("init ledger tables: %w", err)
		}
	}

	slog.Info("✅ PostgreSQL tables initialized")
	return nil
}
