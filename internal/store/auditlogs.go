package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEntry records one back-office mutation.
type AuditEntry struct {
	ID        int64          `json:"id"`
	ActorID   int64          `json:"actorId"`
	Action    string         `json:"action"` // create | update | delete | status_change
	Entity    string         `json:"entity"` // product, brand, order...
	EntityID  int64          `json:"entityId"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type AuditLogsStore struct {
	db *pgxpool.Pool
}

func (s *AuditLogsStore) Append(ctx context.Context, e *AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	detail, err := json.Marshal(e.Detail)
	if err != nil {
		return fmt.Errorf("marshal audit detail: %w", err)
	}

	query := `
		INSERT INTO audit_logs (actor_id, action, entity, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	if err := s.db.QueryRow(ctx, query, e.ActorID, e.Action, e.Entity, e.EntityID, detail).
		Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

func (s *AuditLogsStore) List(ctx context.Context, limit, offset int) ([]*AuditEntry, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, actor_id, action, entity, entity_id, detail, created_at,
		       COUNT(*) OVER() AS total_count
		FROM audit_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var (
		entries []*AuditEntry
		total   int
	)
	for rows.Next() {
		var (
			e          AuditEntry
			detailData []byte
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID,
			&detailData, &e.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(detailData) > 0 {
			if err := json.Unmarshal(detailData, &e.Detail); err != nil {
				return nil, 0, fmt.Errorf("unmarshal audit detail: %w", err)
			}
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}
	return entries, total, nil
}
