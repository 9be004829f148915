// internal/storage/minio.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/radityabagas/bucketadmin/internal/config"
	"github.com/radityabagas/bucketadmin/internal/domain"
)

// MinioStore implements ObjectStore against any S3-compatible endpoint. It
// uses the low-level Core client so listing exposes the continuation token
// instead of draining everything through a channel.
type MinioStore struct {
	core *minio.Core
}

// NewMinioStore builds a MinioStore from the storage section of the config.
func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage credentials must be provided")
	}

	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &MinioStore{core: core}, nil
}

// ListPage fetches one page of at most pageSize keys under prefix.
func (s *MinioStore) ListPage(ctx context.Context, bucket, prefix string, pageSize int, cursor string) (domain.ListingPage, error) {
	res, err := s.core.ListObjectsV2(bucket, prefix, "", cursor, "", pageSize)
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("list objects %s/%s: %w", bucket, prefix, err)
	}

	page := domain.ListingPage{
		Objects:     make([]domain.ObjectRecord, 0, len(res.Contents)),
		Cursor:      res.NextContinuationToken,
		IsTruncated: res.IsTruncated,
	}
	for _, obj := range res.Contents {
		rec := domain.ObjectRecord{
			Key:  obj.Key,
			Size: uint64(obj.Size),
		}
		if !obj.LastModified.IsZero() {
			uploaded := obj.LastModified
			rec.UploadedAt = &uploaded
		}
		page.Objects = append(page.Objects, rec)
	}
	return page, nil
}

// GetObject reads the full object body and its content type.
func (s *MinioStore) GetObject(ctx context.Context, bucket, key string) ([]byte, string, error) {
	body, info, _, err := s.core.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", fmt.Errorf("get %s/%s: %w", bucket, key, ErrObjectNotFound)
		}
		return nil, "", fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("read %s/%s: %w", bucket, key, err)
	}
	return data, info.ContentType, nil
}

// PutObject stores data under key.
func (s *MinioStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = DefaultContentType
	}
	_, err := s.core.Client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}

// DeleteObject removes key from bucket.
func (s *MinioStore) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := s.core.Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

var _ ObjectStore = (*MinioStore)(nil)
