package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radityabagas/bucketadmin/internal/storage"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	require.NoError(t, store.PutObject(ctx, "b", "a/1.txt", []byte("one"), "text/plain"))

	data, contentType, err := store.GetObject(ctx, "b", "a/1.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
	assert.Equal(t, "text/plain", contentType)

	require.NoError(t, store.DeleteObject(ctx, "b", "a/1.txt"))
	_, _, err = store.GetObject(ctx, "b", "a/1.txt")
	assert.True(t, errors.Is(err, storage.ErrObjectNotFound))
}

func TestMemoryStoreDeleteMissingKeyIsNoError(t *testing.T) {
	store := storage.NewMemoryStore()
	assert.NoError(t, store.DeleteObject(context.Background(), "b", "nope"))
}

func TestMemoryStoreListPageFiltersPrefix(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.PutObject(ctx, "b", "a/1.txt", []byte("x"), ""))
	require.NoError(t, store.PutObject(ctx, "b", "z/1.txt", []byte("x"), ""))

	page, err := store.ListPage(ctx, "b", "a/", 100, "")
	require.NoError(t, err)
	require.Len(t, page.Objects, 1)
	assert.Equal(t, "a/1.txt", page.Objects[0].Key)
	assert.False(t, page.IsTruncated)
	assert.Empty(t, page.Cursor)
}

func TestMemoryStoreCursorPaging(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.PutObject(ctx, "b", fmt.Sprintf("a/%d.txt", i), []byte("x"), ""))
	}

	var (
		cursor string
		seen   []string
		pages  int
	)
	for {
		page, err := store.ListPage(ctx, "b", "a/", 2, cursor)
		require.NoError(t, err)
		pages++
		for _, obj := range page.Objects {
			seen = append(seen, obj.Key)
		}
		if !page.IsTruncated {
			break
		}
		cursor = page.Cursor
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{"a/0.txt", "a/1.txt", "a/2.txt", "a/3.txt", "a/4.txt"}, seen)
}
