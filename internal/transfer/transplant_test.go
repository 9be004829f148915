package transfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radityabagas/bucketadmin/internal/storage"
	"github.com/radityabagas/bucketadmin/internal/transfer"
)

// untypedStore hides the content type the underlying store reports, simulating
// a source object with no content-type header.
type untypedStore struct {
	*storage.MemoryStore
}

func (s *untypedStore) GetObject(ctx context.Context, bucket, key string) ([]byte, string, error) {
	data, _, err := s.MemoryStore.GetObject(ctx, bucket, key)
	return data, "", err
}

func TestTransplantCopiesBytesAndContentType(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.PutObject(ctx, "src", "a/report.csv", []byte("x,y"), "text/csv"))

	ok := transfer.NewTransplanter(store).Transplant(ctx, "src", "a/report.csv", "dst", "b/report.csv")
	require.True(t, ok)

	data, contentType, err := store.GetObject(ctx, "dst", "b/report.csv")
	require.NoError(t, err)
	assert.Equal(t, []byte("x,y"), data)
	assert.Equal(t, "text/csv", contentType)
}

func TestTransplantDefaultsContentType(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.PutObject(ctx, "src", "a/blob", []byte("data"), "text/plain"))

	ok := transfer.NewTransplanter(&untypedStore{mem}).Transplant(ctx, "src", "a/blob", "src", "b/blob")
	require.True(t, ok)

	_, contentType, err := mem.GetObject(ctx, "src", "b/blob")
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultContentType, contentType)
}

func TestTransplantFetchFailureReturnsFalse(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	ok := transfer.NewTransplanter(store).Transplant(ctx, "src", "a/missing", "dst", "b/missing")
	assert.False(t, ok)

	_, _, err := store.GetObject(ctx, "dst", "b/missing")
	assert.True(t, errors.Is(err, storage.ErrObjectNotFound))
}

// brokenPutStore fails every store attempt.
type brokenPutStore struct {
	*storage.MemoryStore
}

func (s *brokenPutStore) PutObject(context.Context, string, string, []byte, string) error {
	return errors.New("simulated remote fault")
}

func TestTransplantStoreFailureReturnsFalse(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.PutObject(ctx, "src", "a/blob", []byte("data"), ""))

	ok := transfer.NewTransplanter(&brokenPutStore{mem}).Transplant(ctx, "src", "a/blob", "dst", "b/blob")
	assert.False(t, ok)
}
