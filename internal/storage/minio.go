package storage

import (
	"MemeShare/internal/config"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStore хранит изображения в бакете и отдаёт подписанные ссылки на чтение.
type MinIOStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewMinIOStore(cfg config.MinIO) (*MinIOStore, error) {
	// регион задан явно, поэтому подпись ссылок не требует обращения к серверу
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MinIO: %w", err)
	}
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &MinIOStore{client: client, bucket: cfg.Bucket, expiry: expiry}, nil
}

func (s *MinIOStore) URL(ctx context.Context, path string) (string, error) {
	if isAbsoluteURL(path) {
		return path, nil
	}
	key, err := cleanKey(path)
	if err != nil {
		return "", err
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("ошибка подписи ссылки MinIO: %w", err)
	}
	return u.String(), nil
}

func (s *MinIOStore) Put(ctx context.Context, path string, r io.Reader, size int64) error {
	key, err := cleanKey(path)
	if err != nil {
		return err
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(key)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}
	return nil
}
