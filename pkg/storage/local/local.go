package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jsgroupfr/merge-videos-api/pkg/config"
	"github.com/jsgroupfr/merge-videos-api/pkg/storage"
)

// Client stores objects on the local filesystem. Used for development
// and tests; it cannot presign, so callers always get the direct URL.
type Client struct {
	baseDir string
}

func init() {
	storage.Register("local", func(ctx context.Context, cfg config.StorageConfig) (storage.Client, error) {
		return New(cfg)
	})
}

// New creates a new local filesystem client
func New(cfg config.StorageConfig) (*Client, error) {
	if err := storage.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.LocalDir, 0755); err != nil {
		return nil, storage.WrapError("local", "init", err)
	}

	return &Client{baseDir: cfg.LocalDir}, nil
}

func (c *Client) Driver() string { return "local" }

// Put writes body to a file under the base directory
func (c *Client) Put(ctx context.Context, key string, contentType string, body io.Reader) error {
	destPath := filepath.Join(c.baseDir, key)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return storage.WrapError("local", "put", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return storage.WrapError("local", "put", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, body); err != nil {
		os.Remove(destPath) // Clean up partial file
		return storage.WrapError("local", "put", err)
	}

	return nil
}

// PresignGet is not supported by the local driver
func (c *Client) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "", storage.WrapError("local", "presign", storage.ErrNotSupported)
}

// Close is a no-op for local storage
func (c *Client) Close() error {
	return nil
}
