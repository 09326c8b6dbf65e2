package simline

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBindingStore persists line bindings in PostgreSQL.
type PostgresBindingStore struct {
	db *pgxpool.Pool
}

// NewPostgresBindingStore builds a binding store backed by PostgreSQL.
func NewPostgresBindingStore(db *pgxpool.Pool) *PostgresBindingStore {
	return &PostgresBindingStore{db: db}
}

// Get fetches the bound subscription id for an operator.
func (s *PostgresBindingStore) Get(ctx context.Context, operatorID string) (int, bool, error) {
	var subID int
	err := s.db.QueryRow(ctx,
		`SELECT subscription_id FROM line_bindings WHERE operator_id = $1`, operatorID).Scan(&subID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return subID, true, nil
}

// Set upserts the binding for an operator.
func (s *PostgresBindingStore) Set(ctx context.Context, operatorID string, subscriptionID int) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO line_bindings (operator_id, subscription_id, updated_at)
         VALUES ($1, $2, NOW())
         ON CONFLICT (operator_id) DO UPDATE SET subscription_id = $2, updated_at = NOW()`,
		operatorID, subscriptionID)
	return err
}
