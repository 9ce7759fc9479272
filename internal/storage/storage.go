package storage

import (
	"MemeShare/internal/config"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore отдаёт браузеру адреса файлов изображений и принимает новые файлы.
// Путь является ключом из колонок images.path / images.path_thumb.
type ImageStore interface {
	URL(ctx context.Context, path string) (string, error)
	Put(ctx context.Context, path string, r io.Reader, size int64) error
}

// New выбирает хранилище: MinIO при заданном endpoint, иначе локальный каталог.
func New(cfg *config.Config) (ImageStore, error) {
	if cfg.MinIO.Endpoint != "" {
		return NewMinIOStore(cfg.MinIO)
	}
	return NewLocalStore(cfg.StaticDir, cfg.StaticURL), nil
}

func isAbsoluteURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func cleanKey(p string) (string, error) {
	p = strings.TrimLeft(filepath.ToSlash(p), "/")
	if p == "" {
		return "", fmt.Errorf("empty image path")
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid image path %q", p)
		}
	}
	return p, nil
}

// LocalStore — файлы в каталоге StaticDir, раздаваемом по префиксу StaticURL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStore{Dir: dir, BaseURL: baseURL}
}

func (s *LocalStore) URL(_ context.Context, path string) (string, error) {
	if isAbsoluteURL(path) {
		return path, nil
	}
	key, err := cleanKey(path)
	if err != nil {
		return "", err
	}
	return s.BaseURL + key, nil
}

func (s *LocalStore) Put(_ context.Context, path string, r io.Reader, _ int64) error {
	key, err := cleanKey(path)
	if err != nil {
		return err
	}
	dst := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
