// Package storage provides the object-store gateway for uploaded media.
// Transcoding and delivery are the media host's concern; this layer only
// moves bytes and hands back public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"videotube/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore abstracts media uploads so handlers can be tested without a
// running object store.
type MediaStore interface {
	UploadFile(ctx context.Context, folder string, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, objectURL string) error
}

// MinioStore is the MinIO-backed MediaStore implementation.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore connects to the object store and ensures the media bucket exists.
func NewMinioStore(ctx context.Context, cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("media store init: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MediaBucket)
	if err != nil {
		return nil, fmt.Errorf("media bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MediaBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("media bucket create: %w", err)
		}

		policy := fmt.Sprintf(`{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Effect": "Allow",
					"Principal": "*",
					"Action": "s3:GetObject",
					"Resource": "arn:aws:s3:::%s/*"
				}
			]
		}`, cfg.MediaBucket)
		if err := client.SetBucketPolicy(ctx, cfg.MediaBucket, policy); err != nil {
			return nil, fmt.Errorf("media bucket policy: %w", err)
		}
	}

	return &MinioStore{
		client:    client,
		bucket:    cfg.MediaBucket,
		publicURL: strings.TrimRight(cfg.MediaPublicURL, "/"),
	}, nil
}

// UploadFile stores a multipart upload under folder/ with a random object name
// and returns the public URL.
func (s *MinioStore) UploadFile(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.put(ctx, objectName, src, file.Size, contentType); err != nil {
		return "", err
	}

	return s.publicURL + "/" + objectName, nil
}

func (s *MinioStore) put(ctx context.Context, objectName string, src io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, src, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("media upload: %w", err)
	}
	return nil
}

// Remove deletes the object referenced by a previously returned public URL.
// Unknown URLs are ignored so content deletion never fails on missing media.
func (s *MinioStore) Remove(ctx context.Context, objectURL string) error {
	if !strings.HasPrefix(objectURL, s.publicURL+"/") {
		return nil
	}
	objectName := strings.TrimPrefix(objectURL, s.publicURL+"/")
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("media remove: %w", err)
	}
	return nil
}
