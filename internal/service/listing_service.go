// internal/service/listing_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/radityabagas/bucketadmin/internal/cache"
	"github.com/radityabagas/bucketadmin/internal/domain"
	"github.com/radityabagas/bucketadmin/internal/transfer"
)

// ListingService serves paginated listing reads, backed by the listing cache.
// Cache failures degrade to direct reads.
type ListingService struct {
	lister *transfer.PrefixLister
	cache  cache.ListingCache
}

func NewListingService(lister *transfer.PrefixLister, listingCache cache.ListingCache) *ListingService {
	return &ListingService{lister: lister, cache: listingCache}
}

// ListObjects returns one page of objects under prefix. An empty prefix lists
// the bucket root.
func (s *ListingService) ListObjects(ctx context.Context, bucket, prefix, cursor string) (*domain.ListingPage, error) {
	if prefix != "" {
		prefix = transfer.NormalizePrefix(prefix)
	}

	if page, ok, err := s.cache.GetPage(ctx, bucket, prefix, cursor); err != nil {
		log.Warn().Err(err).Str("bucket", bucket).Msg("listing cache read failed")
	} else if ok {
		return page, nil
	}

	page, err := s.lister.Page(ctx, bucket, prefix, cursor)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPage(ctx, bucket, prefix, cursor, &page); err != nil {
		log.Warn().Err(err).Str("bucket", bucket).Msg("listing cache write failed")
	}

	return &page, nil
}
