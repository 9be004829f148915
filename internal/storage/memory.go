// internal/storage/memory.go
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/radityabagas/bucketadmin/internal/domain"
)

type memObject struct {
	data        []byte
	contentType string
	uploadedAt  time.Time
}

// MemoryStore is an in-memory ObjectStore used in tests and local development.
// Listing order is lexicographic by key; the cursor is the last key of the
// previous page.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]map[string]memObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]map[string]memObject)}
}

func (s *MemoryStore) ListPage(ctx context.Context, bucket, prefix string, pageSize int, cursor string) (domain.ListingPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pageSize <= 0 {
		pageSize = 100
	}

	keys := make([]string, 0)
	for key := range s.buckets[bucket] {
		if strings.HasPrefix(key, prefix) && key > cursor {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	page := domain.ListingPage{}
	for _, key := range keys {
		if len(page.Objects) == pageSize {
			page.IsTruncated = true
			break
		}
		obj := s.buckets[bucket][key]
		uploaded := obj.uploadedAt
		page.Objects = append(page.Objects, domain.ObjectRecord{
			Key:        key,
			Size:       uint64(len(obj.data)),
			UploadedAt: &uploaded,
		})
	}
	if page.IsTruncated && len(page.Objects) > 0 {
		page.Cursor = page.Objects[len(page.Objects)-1].Key
	}
	return page, nil
}

func (s *MemoryStore) GetObject(ctx context.Context, bucket, key string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.buckets[bucket][key]
	if !ok {
		return nil, "", fmt.Errorf("get %s/%s: %w", bucket, key, ErrObjectNotFound)
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, obj.contentType, nil
}

func (s *MemoryStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contentType == "" {
		contentType = DefaultContentType
	}
	if s.buckets[bucket] == nil {
		s.buckets[bucket] = make(map[string]memObject)
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	s.buckets[bucket][key] = memObject{
		data:        stored,
		contentType: contentType,
		uploadedAt:  time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) DeleteObject(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets[bucket], key)
	return nil
}

// Keys returns all keys in bucket in lexicographic order.
func (s *MemoryStore) Keys(bucket string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.buckets[bucket]))
	for key := range s.buckets[bucket] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ ObjectStore = (*MemoryStore)(nil)
