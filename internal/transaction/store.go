package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store persists transaction records. Writes are single-row and atomic; a
// record is created once and mutated only by status transitions.
type Store interface {
	Create(ctx context.Context, record Record) error
	UpdateStatus(ctx context.Context, transactionID string, status Status) error
	SetOutcome(ctx context.Context, transactionID string, status Status, message string) error
	Get(ctx context.Context, transactionID string) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
}

// PostgresStore stores transaction records in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a record; a duplicate id is ErrExists.
func (s *PostgresStore) Create(ctx context.Context, r Record) error {
	tag, err := s.db.Exec(ctx, `INSERT INTO transactions
        (transaction_id, direction, amount, currency, operator_id, counterparty_hint,
         timestamp_ms, status, authenticity_proof, raw_payload, result_message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
        ON CONFLICT (transaction_id) DO NOTHING`,
		r.TransactionID, r.Direction, r.Amount.String(), r.Currency, r.OperatorID,
		r.CounterpartyHint, r.TimestampMs, string(r.Status), r.AuthenticityProof,
		r.RawPayload, r.ResultMessage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrExists, r.TransactionID)
	}
	return nil
}

// UpdateStatus sets the status for a transaction id.
func (s *PostgresStore) UpdateStatus(ctx context.Context, transactionID string, status Status) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE transactions SET status = $2 WHERE transaction_id = $1`,
		transactionID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, transactionID)
	}
	return nil
}

// SetOutcome sets a terminal status together with the carrier-provided message.
func (s *PostgresStore) SetOutcome(ctx context.Context, transactionID string, status Status, message string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE transactions SET status = $2, result_message = $3 WHERE transaction_id = $1`,
		transactionID, string(status), message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, transactionID)
	}
	return nil
}

// Get fetches a record by transaction id.
func (s *PostgresStore) Get(ctx context.Context, transactionID string) (Record, error) {
	row := s.db.QueryRow(ctx, `SELECT transaction_id, direction, amount, currency,
        operator_id, counterparty_hint, timestamp_ms, status, authenticity_proof,
        raw_payload, result_message, created_at
        FROM transactions WHERE transaction_id = $1`, transactionID)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, transactionID)
	}
	return rec, err
}

// List returns up to limit records ordered newest-first.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `SELECT transaction_id, direction, amount, currency,
        operator_id, counterparty_hint, timestamp_ms, status, authenticity_proof,
        raw_payload, result_message, created_at
        FROM transactions ORDER BY timestamp_ms DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	var amount, status string
	if err := row.Scan(&r.TransactionID, &r.Direction, &amount, &r.Currency,
		&r.OperatorID, &r.CounterpartyHint, &r.TimestampMs, &status,
		&r.AuthenticityProof, &r.RawPayload, &r.ResultMessage, &r.CreatedAt); err != nil {
		return Record{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Record{}, fmt.Errorf("stored amount %q: %w", amount, err)
	}
	r.Amount = parsed
	r.Status = Status(status)
	return r, nil
}
