package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the local event log in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds an event store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Log(ctx context.Context, eventType string, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `INSERT INTO event_logs (id, event_type, details, occurred_at, synced)
        VALUES ($1, $2, $3, NOW(), FALSE)`,
		uuid.NewString(), eventType, payload)
	return err
}

func (s *PostgresStore) Unsynced(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `SELECT id, event_type, details, occurred_at
        FROM event_logs WHERE NOT synced ORDER BY occurred_at LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var details []byte
		if err := rows.Scan(&ev.ID, &ev.EventType, &details, &ev.OccurredAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &ev.Details); err != nil {
				return nil, err
			}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *PostgresStore) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `UPDATE event_logs SET synced = TRUE WHERE id = ANY($1)`, ids)
	return err
}

func (s *PostgresStore) Purge(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM event_logs WHERE synced AND occurred_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
