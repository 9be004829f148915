// internal/repository/audit_repository.go
package repository

import (
	"context"

	"github.com/radityabagas/bucketadmin/internal/domain"
)

// AuditRepository persists the audit trail of folder operations. Writes are
// best-effort from the caller's perspective; a failed audit write never fails
// the operation it describes.
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
	Recent(ctx context.Context, bucket string, limit int) ([]*domain.AuditEntry, error)
}

type noopAuditRepository struct{}

// NewNoopAuditRepository returns a repository that drops everything. Used when
// no database is configured and in tests.
func NewNoopAuditRepository() AuditRepository {
	return &noopAuditRepository{}
}

func (noopAuditRepository) Record(context.Context, *domain.AuditEntry) error {
	return nil
}

func (noopAuditRepository) Recent(context.Context, string, int) ([]*domain.AuditEntry, error) {
	return nil, nil
}
