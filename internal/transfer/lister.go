// internal/transfer/lister.go
package transfer

import (
	"context"

	"github.com/radityabagas/bucketadmin/internal/domain"
	"github.com/radityabagas/bucketadmin/internal/storage"
)

// maxPageSize is the remote API's listing cap.
const maxPageSize = 100

// PrefixLister fetches paginated listings under a key prefix. Ordering within
// and across pages is whatever the remote API returns; no sort is imposed.
type PrefixLister struct {
	store    storage.ObjectStore
	pageSize int
}

func NewPrefixLister(store storage.ObjectStore, pageSize int) *PrefixLister {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &PrefixLister{store: store, pageSize: pageSize}
}

// Page fetches one listing page. The caller follows Cursor while IsTruncated
// is set.
func (l *PrefixLister) Page(ctx context.Context, bucket, prefix, cursor string) (domain.ListingPage, error) {
	return l.store.ListPage(ctx, bucket, prefix, l.pageSize, cursor)
}

// PageSize reports the effective page size after capping.
func (l *PrefixLister) PageSize() int {
	return l.pageSize
}
