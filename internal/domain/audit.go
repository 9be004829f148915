// internal/domain/audit.go
package domain

import "time"

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusPartial AuditStatus = "partial"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEntry is one row of the operation audit trail.
type AuditEntry struct {
	ID                string            `db:"id" json:"id"`
	Operation         string            `db:"operation" json:"operation"`
	Bucket            string            `db:"bucket" json:"bucket"`
	Key               string            `db:"key" json:"key,omitempty"`
	Actor             string            `db:"actor" json:"actor,omitempty"`
	Status            AuditStatus       `db:"status" json:"status"`
	DestinationBucket string            `db:"destination_bucket" json:"destinationBucket,omitempty"`
	DestinationKey    string            `db:"destination_key" json:"destinationKey,omitempty"`
	Metadata          map[string]string `db:"-" json:"metadata,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"createdAt"`
}
