package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jsgroupfr/merge-videos-api/pkg/config"
)

// Client represents an object storage driver that can store video
// objects and hand out retrievable URLs for them
type Client interface {
	// Driver returns the driver type (s3, local)
	Driver() string

	// Put streams body into the bucket at the given key.
	// contentType is declared on the stored object.
	Put(ctx context.Context, key string, contentType string, body io.Reader) error

	// PresignGet returns a time-limited GET URL for the object at key.
	// Drivers that cannot presign return ErrNotSupported; callers fall
	// back to DirectURL.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Close releases resources (connections, sessions)
	Close() error
}

// DirectURL builds the unsigned endpoint URL for an object. It is the
// fallback when presigning fails and is never checked for reachability
// (the bucket must have a public read policy for it to work).
func DirectURL(endpoint, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint, "/"), bucket, key)
}

// ValidateConfig checks that the configuration carries everything the
// configured driver needs. It backs the uploader's precondition check:
// a partial configuration fails here before any network I/O happens.
func ValidateConfig(cfg config.StorageConfig) error {
	switch cfg.Driver {
	case "local":
		if cfg.LocalDir == "" {
			return fmt.Errorf("%w: LOCAL_STORAGE_DIR must be set", ErrInvalidConfig)
		}
		return nil
	default:
		var missing []string
		if cfg.Bucket == "" {
			missing = append(missing, "BUCKET")
		}
		if cfg.Endpoint == "" {
			missing = append(missing, "ENDPOINT")
		}
		if cfg.AccessKeyID == "" {
			missing = append(missing, "ACCESS_KEY_ID")
		}
		if cfg.SecretAccessKey == "" {
			missing = append(missing, "SECRET_ACCESS_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
		}
		return nil
	}
}
