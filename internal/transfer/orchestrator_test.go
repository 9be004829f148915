package transfer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radityabagas/bucketadmin/internal/domain"
	"github.com/radityabagas/bucketadmin/internal/storage"
	"github.com/radityabagas/bucketadmin/internal/transfer"
)

// flakyGetStore fails GetObject for a chosen set of keys, simulating per-object
// remote faults during the transfer phase.
type flakyGetStore struct {
	*storage.MemoryStore
	failKeys map[string]struct{}
}

func (s *flakyGetStore) GetObject(ctx context.Context, bucket, key string) ([]byte, string, error) {
	if _, ok := s.failKeys[key]; ok {
		return nil, "", errors.New("simulated remote fault")
	}
	return s.MemoryStore.GetObject(ctx, bucket, key)
}

// failingListStore fails ListPage starting from the Nth call (1-based).
type failingListStore struct {
	*storage.MemoryStore
	failFrom int
	calls    int
}

func (s *failingListStore) ListPage(ctx context.Context, bucket, prefix string, pageSize int, cursor string) (domain.ListingPage, error) {
	s.calls++
	if s.calls >= s.failFrom {
		return domain.ListingPage{}, errors.New("simulated listing fault")
	}
	return s.MemoryStore.ListPage(ctx, bucket, prefix, pageSize, cursor)
}

func seed(t *testing.T, store *storage.MemoryStore, bucket string, keys ...string) {
	t.Helper()
	for _, key := range keys {
		require.NoError(t, store.PutObject(context.Background(), bucket, key, []byte("content of "+key), "text/plain"))
	}
}

func newOrchestrator(store storage.ObjectStore, opts ...transfer.Option) *transfer.Orchestrator {
	opts = append([]transfer.Option{transfer.WithPacer(transfer.NopPacer{})}, opts...)
	return transfer.New(store, opts...)
}

func TestCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	orch := newOrchestrator(store)

	first, err := orch.Create(ctx, "media", "photos/2026")
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, "photos/2026/.keep", first.Key)

	second, err := orch.Create(ctx, "media", "photos/2026")
	require.NoError(t, err)
	assert.True(t, second.Success)

	assert.Equal(t, []string{"photos/2026/.keep"}, store.Keys("media"))
}

func TestCopyPreservesSourceAndRelativePaths(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seed(t, store, "src", "a/1.txt", "a/2.txt", "a/sub/3.txt", "other/keep.txt")
	orch := newOrchestrator(store, transfer.WithPageSize(2))

	result, err := orch.Copy(ctx, domain.OperationContext{
		SourceBucket:      "src",
		DestinationBucket: "dst",
		SourcePrefix:      "a",
		DestinationPrefix: "b",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Copied)
	assert.Equal(t, 0, result.Failed)

	assert.Equal(t, []string{"b/1.txt", "b/2.txt", "b/sub/3.txt"}, store.Keys("dst"))
	// source untouched, including the unrelated prefix
	assert.Equal(t, []string{"a/1.txt", "a/2.txt", "a/sub/3.txt", "other/keep.txt"}, store.Keys("src"))

	data, _, err := store.GetObject(ctx, "dst", "b/sub/3.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("content of a/sub/3.txt"), data)
}

func TestCopyDefaultsDestinationToSource(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seed(t, store, "src", "a/1.txt")
	orch := newOrchestrator(store)

	result, err := orch.Copy(ctx, domain.OperationContext{
		SourceBucket:      "src",
		DestinationBucket: "backup",
		SourcePrefix:      "a",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Copied)
	assert.Equal(t, []string{"a/1.txt"}, store.Keys("backup"))
}

func TestMoveAcrossBuckets(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seed(t, store, "A", "a/1.txt", "a/2.txt")
	orch := newOrchestrator(store)

	result, err := orch.Move(ctx, domain.OperationContext{
		SourceBucket:      "A",
		DestinationBucket: "B",
		SourcePrefix:      "a/",
		DestinationPrefix: "b/",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Moved)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 2, result.Deleted)

	assert.Equal(t, []string{"b/1.txt", "b/2.txt"}, store.Keys("B"))
	assert.Empty(t, store.Keys("A"))
}

func TestMoveMultiPage(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	keys := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		keys = append(keys, fmt.Sprintf("a/%d.txt", i))
	}
	seed(t, store, "A", keys...)
	orch := newOrchestrator(store, transfer.WithPageSize(3))

	result, err := orch.Move(ctx, domain.OperationContext{
		SourceBucket:      "A",
		DestinationBucket: "B",
		SourcePrefix:      "a",
		DestinationPrefix: "b",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, result.Moved)
	assert.Equal(t, 7, result.Deleted)
	assert.Empty(t, store.Keys("A"))
	assert.Len(t, store.Keys("B"), 7)
}

func TestRenameWithinBucket(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seed(t, store, "media", "x/1.txt", "x/2.txt")
	orch := newOrchestrator(store)

	result, err := orch.Rename(ctx, "media", "x", "y")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Moved)
	assert.Equal(t, 2, result.Deleted)
	assert.Equal(t, []string{"y/1.txt", "y/2.txt"}, store.Keys("media"))
}

// The finalize sweep re-enumerates the source independently of the transfer
// tally, so a key whose transplant failed is deleted from the source anyway.
// This asserts the documented non-atomic behavior on purpose: changing it must
// be a deliberate decision, not an accidental regression.
func TestRenameDeletesSourceEvenAfterFailedTransplant(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	seed(t, mem, "media", "x/1.txt", "x/2.txt")
	store := &flakyGetStore{MemoryStore: mem, failKeys: map[string]struct{}{"x/2.txt": {}}}
	orch := newOrchestrator(store)

	result, err := orch.Rename(ctx, "media", "x", "y")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Moved)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.Deleted)

	// nothing left under x/, and the failed object's content is gone for good
	assert.Equal(t, []string{"y/1.txt"}, mem.Keys("media"))
}

func TestRenameStrictFinalizeKeepsFailedSources(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	seed(t, mem, "media", "x/1.txt", "x/2.txt")
	store := &flakyGetStore{MemoryStore: mem, failKeys: map[string]struct{}{"x/2.txt": {}}}
	orch := newOrchestrator(store, transfer.WithStrictFinalize())

	result, err := orch.Rename(ctx, "media", "x", "y")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Deleted)

	// the failed source object survives for a retry
	assert.Equal(t, []string{"x/2.txt", "y/1.txt"}, mem.Keys("media"))
}

func TestDeleteWithoutForceIsAHandshake(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seed(t, store, "media", "x/1.txt", "x/2.txt", "x/3.txt")
	orch := newOrchestrator(store)

	result, err := orch.Delete(ctx, "media", "x", false)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.FileCount)
	assert.Equal(t, 0, result.Deleted)
	// the store is unchanged
	assert.Equal(t, []string{"x/1.txt", "x/2.txt", "x/3.txt"}, store.Keys("media"))
}

func TestDeleteWithForceRemovesEverything(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	keys := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		keys = append(keys, fmt.Sprintf("x/%d.txt", i))
	}
	seed(t, store, "media", keys...)
	seed(t, store, "media", "other/keep.txt")
	orch := newOrchestrator(store, transfer.WithPageSize(2))

	result, err := orch.Delete(ctx, "media", "x", true)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 5, result.Deleted)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []string{"other/keep.txt"}, store.Keys("media"))
}

func TestFirstPageListingFailureAbortsBeforeMutation(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	seed(t, mem, "src", "a/1.txt")
	store := &failingListStore{MemoryStore: mem, failFrom: 1}
	orch := newOrchestrator(store)

	_, err := orch.Copy(ctx, domain.OperationContext{
		SourceBucket:      "src",
		DestinationBucket: "dst",
		SourcePrefix:      "a",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, transfer.ErrFirstPageListing))
	assert.Empty(t, mem.Keys("dst"))

	_, err = orch.Delete(ctx, "src", "a", true)
	assert.True(t, errors.Is(err, transfer.ErrFirstPageListing))
	assert.Equal(t, []string{"a/1.txt"}, mem.Keys("src"))
}

func TestRenameToSamePathIsRejected(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seed(t, store, "media", "x/1.txt")
	orch := newOrchestrator(store)

	_, err := orch.Rename(ctx, "media", "x", "x/")
	require.ErrorIs(t, err, domain.ErrSameSourceAndDestination)
	assert.Equal(t, []string{"x/1.txt"}, store.Keys("media"))
}

// A move whose destination resolves to its own source would transplant every
// key onto itself and then sweep the folder away.
func TestMoveOntoItselfIsRejected(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seed(t, store, "media", "x/1.txt")
	orch := newOrchestrator(store)

	_, err := orch.Move(ctx, domain.OperationContext{
		SourceBucket: "media",
		SourcePrefix: "x",
	})
	require.ErrorIs(t, err, domain.ErrSameSourceAndDestination)
	assert.Equal(t, []string{"x/1.txt"}, store.Keys("media"))
}

func TestLaterPageListingFailureTruncatesTransferPhase(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	keys := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		keys = append(keys, fmt.Sprintf("a/%d.txt", i))
	}
	seed(t, mem, "src", keys...)
	store := &failingListStore{MemoryStore: mem, failFrom: 2}
	orch := newOrchestrator(store, transfer.WithPageSize(2))

	result, err := orch.Copy(ctx, domain.OperationContext{
		SourceBucket:      "src",
		DestinationBucket: "dst",
		SourcePrefix:      "a",
	})
	require.NoError(t, err)

	// the loop ended after the first page; the partial tally stands
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Copied)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []string{"a/0.txt", "a/1.txt"}, mem.Keys("dst"))
}

func TestLaterPageListingFailureTruncatesFinalizeSweep(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	keys := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		keys = append(keys, fmt.Sprintf("x/%d.txt", i))
	}
	seed(t, mem, "media", keys...)
	// the transfer phase uses two listing calls; the finalize sweep's second
	// page is the one that fails
	store := &failingListStore{MemoryStore: mem, failFrom: 4}
	orch := newOrchestrator(store, transfer.WithPageSize(2))

	result, err := orch.Rename(ctx, "media", "x", "y")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 4, result.Moved)
	assert.Equal(t, 2, result.Deleted)
	assert.Equal(t, []string{"x/2.txt", "x/3.txt", "y/0.txt", "y/1.txt", "y/2.txt", "y/3.txt"}, mem.Keys("media"))
}

func TestLaterPageListingFailureTruncatesDeleteSweep(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	keys := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		keys = append(keys, fmt.Sprintf("x/%d.txt", i))
	}
	seed(t, mem, "media", keys...)
	store := &failingListStore{MemoryStore: mem, failFrom: 2}
	orch := newOrchestrator(store, transfer.WithPageSize(2))

	result, err := orch.Delete(ctx, "media", "x", true)
	require.NoError(t, err)

	// the sweep stopped after the first page instead of surfacing the error
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Deleted)
	assert.Len(t, mem.Keys("media"), 3)
}
