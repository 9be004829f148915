// internal/service/folder_service.go
package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/radityabagas/bucketadmin/internal/cache"
	"github.com/radityabagas/bucketadmin/internal/domain"
	"github.com/radityabagas/bucketadmin/internal/repository"
	"github.com/radityabagas/bucketadmin/internal/transfer"
	"github.com/radityabagas/bucketadmin/internal/webhook"
)

// FolderService runs folder operations through the transfer engine and fans
// out the side effects: audit row, webhook event, listing-cache invalidation.
// Side-effect failures are logged and never fail the operation itself.
type FolderService struct {
	orch     *transfer.Orchestrator
	audit    repository.AuditRepository
	notifier webhook.Notifier
	cache    cache.ListingCache
}

func NewFolderService(orch *transfer.Orchestrator, audit repository.AuditRepository, notifier webhook.Notifier, listingCache cache.ListingCache) *FolderService {
	return &FolderService{
		orch:     orch,
		audit:    audit,
		notifier: notifier,
		cache:    listingCache,
	}
}

// Execute validates the request and dispatches to the selected operation. The
// returned value is the operation's result payload.
func (s *FolderService) Execute(ctx context.Context, bucket, actor string, req *domain.FolderRequest) (any, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Operation {
	case domain.FolderOpCreate:
		return s.create(ctx, bucket, actor, req)
	case domain.FolderOpRename:
		return s.rename(ctx, bucket, actor, req)
	case domain.FolderOpCopy:
		return s.copy(ctx, bucket, actor, req)
	case domain.FolderOpMove:
		return s.move(ctx, bucket, actor, req)
	case domain.FolderOpDelete:
		return s.delete(ctx, bucket, actor, req)
	default:
		return nil, domain.ErrUnknownOperation
	}
}

// RecentAudit returns the newest audit entries, optionally filtered by bucket.
func (s *FolderService) RecentAudit(ctx context.Context, bucket string, limit int) ([]*domain.AuditEntry, error) {
	return s.audit.Recent(ctx, bucket, limit)
}

func (s *FolderService) create(ctx context.Context, bucket, actor string, req *domain.FolderRequest) (any, error) {
	result, err := s.orch.Create(ctx, bucket, req.FolderName)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, &domain.AuditEntry{
		Operation: string(domain.FolderOpCreate),
		Bucket:    bucket,
		Key:       result.Key,
		Actor:     actor,
		Status:    domain.AuditStatusSuccess,
	})
	s.notify(ctx, webhook.EventFolderCreate, result)
	s.invalidate(ctx, bucket)

	return result, nil
}

func (s *FolderService) rename(ctx context.Context, bucket, actor string, req *domain.FolderRequest) (any, error) {
	result, err := s.orch.Rename(ctx, bucket, req.OldPath, req.NewPath)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, &domain.AuditEntry{
		Operation:      string(domain.FolderOpRename),
		Bucket:         bucket,
		Key:            req.OldPath,
		Actor:          actor,
		Status:         statusFor(result.Failed),
		DestinationKey: req.NewPath,
		Metadata: map[string]string{
			"moved":   strconv.Itoa(result.Moved),
			"failed":  strconv.Itoa(result.Failed),
			"deleted": strconv.Itoa(result.Deleted),
		},
	})
	s.notify(ctx, webhook.EventFolderRename, result)
	s.invalidate(ctx, bucket)

	return result, nil
}

func (s *FolderService) copy(ctx context.Context, bucket, actor string, req *domain.FolderRequest) (any, error) {
	op := domain.OperationContext{
		SourceBucket:      bucket,
		DestinationBucket: req.DestinationBucket,
		SourcePrefix:      req.FolderName,
		DestinationPrefix: req.DestinationPath,
	}
	result, err := s.orch.Copy(ctx, op)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, &domain.AuditEntry{
		Operation:         string(domain.FolderOpCopy),
		Bucket:            bucket,
		Key:               req.FolderName,
		Actor:             actor,
		Status:            statusFor(result.Failed),
		DestinationBucket: req.DestinationBucket,
		DestinationKey:    req.DestinationPath,
		Metadata: map[string]string{
			"copied": strconv.Itoa(result.Copied),
			"failed": strconv.Itoa(result.Failed),
		},
	})
	s.notify(ctx, webhook.EventFolderCopy, result)
	dest := req.DestinationBucket
	if dest == "" {
		dest = bucket
	}
	s.invalidate(ctx, dest)

	return result, nil
}

func (s *FolderService) move(ctx context.Context, bucket, actor string, req *domain.FolderRequest) (any, error) {
	op := domain.OperationContext{
		SourceBucket:      bucket,
		DestinationBucket: req.DestinationBucket,
		SourcePrefix:      req.FolderName,
		DestinationPrefix: req.DestinationPath,
	}
	result, err := s.orch.Move(ctx, op)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, &domain.AuditEntry{
		Operation:         string(domain.FolderOpMove),
		Bucket:            bucket,
		Key:               req.FolderName,
		Actor:             actor,
		Status:            statusFor(result.Failed),
		DestinationBucket: req.DestinationBucket,
		DestinationKey:    req.DestinationPath,
		Metadata: map[string]string{
			"moved":   strconv.Itoa(result.Moved),
			"failed":  strconv.Itoa(result.Failed),
			"deleted": strconv.Itoa(result.Deleted),
		},
	})
	s.notify(ctx, webhook.EventFolderMove, result)
	s.invalidate(ctx, bucket)
	s.invalidate(ctx, req.DestinationBucket)

	return result, nil
}

func (s *FolderService) delete(ctx context.Context, bucket, actor string, req *domain.FolderRequest) (any, error) {
	result, err := s.orch.Delete(ctx, bucket, req.FolderName, req.Force)
	if err != nil {
		return nil, err
	}

	// Without force nothing was mutated; the result is just the confirmation
	// handshake and produces no side effects.
	if !result.Success {
		return result, nil
	}

	s.recordAudit(ctx, &domain.AuditEntry{
		Operation: string(domain.FolderOpDelete),
		Bucket:    bucket,
		Key:       req.FolderName,
		Actor:     actor,
		Status:    statusFor(result.Failed),
		Metadata: map[string]string{
			"deleted": strconv.Itoa(result.Deleted),
			"failed":  strconv.Itoa(result.Failed),
		},
	})
	s.notify(ctx, webhook.EventFolderDelete, result)
	s.invalidate(ctx, bucket)

	return result, nil
}

func (s *FolderService) recordAudit(ctx context.Context, entry *domain.AuditEntry) {
	if err := s.audit.Record(ctx, entry); err != nil {
		log.Error().Err(err).Str("operation", entry.Operation).Msg("failed to record audit entry")
	}
}

func (s *FolderService) notify(ctx context.Context, eventType string, payload any) {
	if err := s.notifier.Trigger(ctx, eventType, payload); err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to trigger webhook")
	}
}

func (s *FolderService) invalidate(ctx context.Context, bucket string) {
	if bucket == "" {
		return
	}
	if err := s.cache.InvalidateBucket(ctx, bucket); err != nil {
		log.Error().Err(err).Str("bucket", bucket).Msg("failed to invalidate listing cache")
	}
}

func statusFor(failed int) domain.AuditStatus {
	if failed > 0 {
		return domain.AuditStatusPartial
	}
	return domain.AuditStatusSuccess
}
