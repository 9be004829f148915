// internal/transfer/orchestrator.go
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/radityabagas/bucketadmin/internal/domain"
	"github.com/radityabagas/bucketadmin/internal/storage"
)

// ErrFirstPageListing marks a failed first listing page. This is the only
// remote failure that aborts an operation, and it aborts before any mutation
// has been attempted. Listing failures on later pages truncate the loop
// instead: a sweep already under way is never abandoned over a transient
// error.
var ErrFirstPageListing = errors.New("first page listing failed")

// keepObjectName is the placeholder written by Create so an empty folder shows
// up in prefix listings at all.
const keepObjectName = ".keep"

// Orchestrator composes the lister, transplanter, tally and pacer into the
// folder operations. Every invocation runs sequentially to completion on the
// caller's goroutine; all state lives on that call stack.
type Orchestrator struct {
	store        storage.ObjectStore
	lister       *PrefixLister
	transplanter *Transplanter
	pacer        Pacer
	pageSize     int

	// strictFinalize makes the rename/move finalize sweep skip source keys
	// whose transplant failed, instead of deleting them unconditionally.
	strictFinalize bool
}

type Option func(*Orchestrator)

// WithPacer replaces the default fixed 300ms inter-page pacer.
func WithPacer(p Pacer) Option {
	return func(o *Orchestrator) { o.pacer = p }
}

// WithPageSize sets the listing page size, capped at the remote maximum.
func WithPageSize(n int) Option {
	return func(o *Orchestrator) { o.pageSize = n }
}

// WithStrictFinalize keeps source objects whose transfer failed. The default
// deletes the whole source prefix regardless of per-key outcomes.
func WithStrictFinalize() Option {
	return func(o *Orchestrator) { o.strictFinalize = true }
}

func New(store storage.ObjectStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:        store,
		transplanter: NewTransplanter(store),
		pacer:        FixedPacer{Delay: DefaultPageDelay},
		pageSize:     maxPageSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.lister = NewPrefixLister(store, o.pageSize)
	return o
}

// Create writes a single empty placeholder object under the folder prefix.
// Repeated calls overwrite the same key, so the operation is idempotent.
func (o *Orchestrator) Create(ctx context.Context, bucket, folder string) (domain.CreateResult, error) {
	key := NormalizePrefix(folder) + keepObjectName
	if err := o.store.PutObject(ctx, bucket, key, []byte{}, storage.DefaultContentType); err != nil {
		return domain.CreateResult{}, fmt.Errorf("create folder placeholder: %w", err)
	}
	return domain.CreateResult{Success: true, Key: key}, nil
}

// Rename moves every object under oldPath to newPath within the same bucket:
// a transfer phase over the old prefix, then an independent re-enumeration of
// the old prefix that deletes whatever it finds.
func (o *Orchestrator) Rename(ctx context.Context, bucket, oldPath, newPath string) (domain.RenameResult, error) {
	op := domain.OperationContext{
		SourceBucket:      bucket,
		DestinationBucket: bucket,
		SourcePrefix:      NormalizePrefix(oldPath),
		DestinationPrefix: NormalizePrefix(newPath),
	}
	if op.SourcePrefix == op.DestinationPrefix {
		return domain.RenameResult{}, domain.ErrSameSourceAndDestination
	}

	tally, err := o.transferPhase(ctx, op)
	if err != nil {
		return domain.RenameResult{}, err
	}
	deleted := o.finalizeSweep(ctx, op.SourceBucket, op.SourcePrefix, tally)

	return domain.RenameResult{
		Success: tally.Failed == 0,
		Moved:   tally.Succeeded,
		Failed:  tally.Failed,
		Deleted: deleted,
	}, nil
}

// Copy transfers every object under the source prefix into the destination
// bucket/prefix. The source is left untouched.
func (o *Orchestrator) Copy(ctx context.Context, op domain.OperationContext) (domain.CopyResult, error) {
	op = resolve(op)

	tally, err := o.transferPhase(ctx, op)
	if err != nil {
		return domain.CopyResult{}, err
	}

	return domain.CopyResult{
		Success: tally.Failed == 0,
		Copied:  tally.Succeeded,
		Failed:  tally.Failed,
	}, nil
}

// Move is Copy's transfer phase followed by Rename's finalize sweep over the
// source prefix.
func (o *Orchestrator) Move(ctx context.Context, op domain.OperationContext) (domain.MoveResult, error) {
	op = resolve(op)
	if op.SourceBucket == op.DestinationBucket && op.SourcePrefix == op.DestinationPrefix {
		return domain.MoveResult{}, domain.ErrSameSourceAndDestination
	}

	tally, err := o.transferPhase(ctx, op)
	if err != nil {
		return domain.MoveResult{}, err
	}
	deleted := o.finalizeSweep(ctx, op.SourceBucket, op.SourcePrefix, tally)

	return domain.MoveResult{
		Success: tally.Failed == 0,
		Moved:   tally.Succeeded,
		Failed:  tally.Failed,
		Deleted: deleted,
	}, nil
}

// Delete removes every object under the folder prefix. Without force it only
// counts the first page and reports back so the caller can confirm; nothing is
// deleted in that case.
func (o *Orchestrator) Delete(ctx context.Context, bucket, folder string, force bool) (domain.DeleteResult, error) {
	prefix := NormalizePrefix(folder)

	if !force {
		page, err := o.lister.Page(ctx, bucket, prefix, "")
		if err != nil {
			return domain.DeleteResult{}, fmt.Errorf("%w: %v", ErrFirstPageListing, err)
		}
		return domain.DeleteResult{Success: false, FileCount: len(page.Objects)}, nil
	}

	result := domain.DeleteResult{}
	cursor := ""
	for first := true; ; first = false {
		page, err := o.lister.Page(ctx, bucket, prefix, cursor)
		if err != nil {
			if first {
				return domain.DeleteResult{}, fmt.Errorf("%w: %v", ErrFirstPageListing, err)
			}
			log.Warn().Err(err).Str("bucket", bucket).Str("prefix", prefix).
				Msg("listing failed mid-sweep, stopping delete loop")
			break
		}

		for _, obj := range page.Objects {
			if err := o.store.DeleteObject(ctx, bucket, obj.Key); err != nil {
				log.Warn().Err(err).Str("bucket", bucket).Str("key", obj.Key).
					Msg("delete failed, continuing")
				result.Failed++
				continue
			}
			result.Deleted++
		}

		if !page.IsTruncated {
			break
		}
		cursor = page.Cursor
		o.pacer.Wait(ctx)
	}

	result.Success = true
	return result, nil
}

// transferPhase pages through the source prefix and transplants each object to
// the destination, rebuilding keys by index-based prefix stripping. A failed
// first page aborts with no mutation; a failed later page ends the loop.
func (o *Orchestrator) transferPhase(ctx context.Context, op domain.OperationContext) (*Tally, error) {
	tally := NewTally()
	cursor := ""
	for first := true; ; first = false {
		page, err := o.lister.Page(ctx, op.SourceBucket, op.SourcePrefix, cursor)
		if err != nil {
			if first {
				return nil, fmt.Errorf("%w: %v", ErrFirstPageListing, err)
			}
			log.Warn().Err(err).Str("bucket", op.SourceBucket).Str("prefix", op.SourcePrefix).
				Msg("listing failed mid-transfer, stopping page loop")
			break
		}

		for _, obj := range page.Objects {
			destKey := op.DestinationPrefix + RelativeKey(op.SourcePrefix, obj.Key)
			ok := o.transplanter.Transplant(ctx, op.SourceBucket, obj.Key, op.DestinationBucket, destKey)
			tally.Record(obj.Key, ok)
		}

		if !page.IsTruncated {
			break
		}
		cursor = page.Cursor
		o.pacer.Wait(ctx)
	}
	return tally, nil
}

// finalizeSweep re-enumerates the source prefix from scratch and deletes what
// it finds. By default it does not consult the transfer tally, so a source key
// whose transplant failed is still deleted; strictFinalize skips those keys.
// All errors in this phase are absorbed: the transfer already happened and a
// half-finished cleanup is better than none.
func (o *Orchestrator) finalizeSweep(ctx context.Context, bucket, prefix string, tally *Tally) int {
	deleted := 0
	cursor := ""
	for {
		page, err := o.lister.Page(ctx, bucket, prefix, cursor)
		if err != nil {
			log.Warn().Err(err).Str("bucket", bucket).Str("prefix", prefix).
				Msg("listing failed during finalize, stopping sweep")
			break
		}

		for _, obj := range page.Objects {
			if o.strictFinalize && tally.HasFailed(obj.Key) {
				continue
			}
			if err := o.store.DeleteObject(ctx, bucket, obj.Key); err != nil {
				log.Warn().Err(err).Str("bucket", bucket).Str("key", obj.Key).
					Msg("finalize delete failed, continuing")
				continue
			}
			deleted++
		}

		if !page.IsTruncated {
			break
		}
		cursor = page.Cursor
		o.pacer.Wait(ctx)
	}
	return deleted
}

// resolve fills in the context defaults: destination bucket and prefix fall
// back to their source counterparts, and both prefixes are normalized.
func resolve(op domain.OperationContext) domain.OperationContext {
	if op.DestinationBucket == "" {
		op.DestinationBucket = op.SourceBucket
	}
	op.SourcePrefix = NormalizePrefix(op.SourcePrefix)
	if op.DestinationPrefix == "" {
		op.DestinationPrefix = op.SourcePrefix
	} else {
		op.DestinationPrefix = NormalizePrefix(op.DestinationPrefix)
	}
	return op
}
