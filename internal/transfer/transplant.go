// internal/transfer/transplant.go
package transfer

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/radityabagas/bucketadmin/internal/storage"
)

// Transplanter moves a single object's bytes between locations with a
// fetch-then-store sequence, since the remote API has no copy primitive.
type Transplanter struct {
	store storage.ObjectStore
}

func NewTransplanter(store storage.ObjectStore) *Transplanter {
	return &Transplanter{store: store}
}

// Transplant copies one object from src to dst. It never returns an error: any
// failure at either step is reported as false so a single object cannot unwind
// the enclosing batch.
func (t *Transplanter) Transplant(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) bool {
	data, contentType, err := t.store.GetObject(ctx, srcBucket, srcKey)
	if err != nil {
		log.Warn().Err(err).
			Str("bucket", srcBucket).
			Str("key", srcKey).
			Msg("transplant fetch failed")
		return false
	}

	if contentType == "" {
		contentType = storage.DefaultContentType
	}

	if err := t.store.PutObject(ctx, dstBucket, dstKey, data, contentType); err != nil {
		log.Warn().Err(err).
			Str("bucket", dstBucket).
			Str("key", dstKey).
			Msg("transplant store failed")
		return false
	}

	return true
}
