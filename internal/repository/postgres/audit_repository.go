// internal/repository/postgres/audit_repository.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/radityabagas/bucketadmin/internal/domain"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id                 UUID PRIMARY KEY,
	operation          TEXT NOT NULL,
	bucket             TEXT NOT NULL,
	key                TEXT NOT NULL DEFAULT '',
	actor              TEXT NOT NULL DEFAULT '',
	status             TEXT NOT NULL,
	destination_bucket TEXT NOT NULL DEFAULT '',
	destination_key    TEXT NOT NULL DEFAULT '',
	metadata           JSONB NOT NULL DEFAULT '{}',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_audit_log_bucket_created ON audit_log (bucket, created_at DESC);
`

type auditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) (*auditRepository, error) {
	if _, err := db.Exec(auditSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure audit schema: %w", err)
	}
	return &auditRepository{db: db}, nil
}

func (r *auditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode audit metadata: %w", err)
	}
	if entry.Metadata == nil {
		metadata = []byte("{}")
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO audit_log (
				id, operation, bucket, key, actor, status,
				destination_bucket, destination_key, metadata, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := tx.ExecContext(
			ctx,
			query,
			entry.ID,
			entry.Operation,
			entry.Bucket,
			entry.Key,
			entry.Actor,
			entry.Status,
			entry.DestinationBucket,
			entry.DestinationKey,
			metadata,
			entry.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert audit entry: %w", err)
		}
		return nil
	})
}

func (r *auditRepository) Recent(ctx context.Context, bucket string, limit int) ([]*domain.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, operation, bucket, key, actor, status,
		       destination_bucket, destination_key, metadata, created_at
		FROM audit_log
		WHERE ($1 = '' OR bucket = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, bucket, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var (
			entry    domain.AuditEntry
			metadata []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Operation,
			&entry.Bucket,
			&entry.Key,
			&entry.Actor,
			&entry.Status,
			&entry.DestinationBucket,
			&entry.DestinationKey,
			&metadata,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode audit metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}

	return entries, nil
}
