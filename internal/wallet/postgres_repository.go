package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores the device credential in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a credential repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID string) (Credential, error) {
	row := r.db.QueryRow(ctx, `SELECT owner_id, operator_preference, pin_digest,
        biometric_enabled, device_key_id, updated_at
        FROM wallet_settings WHERE owner_id = $1`, ownerID)

	var cred Credential
	err := row.Scan(&cred.OwnerID, &cred.OperatorPreference, &cred.PINDigest,
		&cred.BiometricEnabled, &cred.DeviceKeyID, &cred.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, fmt.Errorf("%w: %s", ErrNoCredential, ownerID)
	}
	return cred, err
}

func (r *PostgresRepository) Save(ctx context.Context, cred Credential) error {
	_, err := r.db.Exec(ctx, `INSERT INTO wallet_settings
        (owner_id, operator_preference, pin_digest, biometric_enabled, device_key_id, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (owner_id) DO UPDATE SET
          operator_preference = EXCLUDED.operator_preference,
          pin_digest = EXCLUDED.pin_digest,
          biometric_enabled = EXCLUDED.biometric_enabled,
          device_key_id = EXCLUDED.device_key_id,
          updated_at = NOW()`,
		cred.OwnerID, cred.OperatorPreference, cred.PINDigest,
		cred.BiometricEnabled, cred.DeviceKeyID)
	return err
}
