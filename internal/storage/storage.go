// Package storage persists uploaded images and hands back publicly
// addressable URLs.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/config"
)

// Uploader stores an image under key and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// New picks the S3 driver when a bucket is configured, otherwise the
// local-disk driver.
func New(cfg config.Config) (Uploader, error) {
	if cfg.S3Bucket != "" {
		return newS3Uploader(cfg)
	}
	return &localUploader{dir: cfg.UploadDir, baseURL: strings.TrimRight(cfg.UploadBaseURL, "/")}, nil
}

// localUploader writes under a public directory served by the HTTP server.
type localUploader struct {
	dir     string
	baseURL string
}

func (l *localUploader) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	clean := strings.TrimLeft(filepath.ToSlash(filepath.Clean("/"+key)), "/")
	target := filepath.Join(l.dir, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("storage: create directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", target, err)
	}
	return l.baseURL + "/" + clean, nil
}
