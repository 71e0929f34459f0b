package upload

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jsgroupfr/merge-videos-api/pkg/config"
	"github.com/jsgroupfr/merge-videos-api/pkg/storage"
)

const (
	// DefaultPrefix namespaces uploads when no KEY_PREFIX is configured
	DefaultPrefix = "merged"

	// DefaultPresignTTL is 7 days, the validity of presigned GET URLs
	DefaultPresignTTL = 7 * 24 * time.Hour

	keyTimeFormat = "20060102150405"
	contentType   = "video/mp4"
)

// ObjectKey derives the destination key from a prefix and a timestamp:
// {prefix}-{UTC YYYYMMDDHHMMSS}.mp4. Keys are second-granular, so two
// uploads with the same prefix in the same second collide and the later
// one wins.
func ObjectKey(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%s.mp4", prefix, t.UTC().Format(keyTimeFormat))
}

// uniqueObjectKey appends a short random suffix to rule out same-second
// collisions. Opt-in via UNIQUE_KEYS.
func uniqueObjectKey(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s-%s.mp4", prefix, t.UTC().Format(keyTimeFormat), suffix)
}

// Uploader pushes local video files into the configured bucket and
// resolves a retrievable URL for each
type Uploader struct {
	cfg    config.StorageConfig
	client storage.Client
	logger zerolog.Logger
	now    func() time.Time
}

// New creates an uploader backed by the given storage client
func New(cfg config.StorageConfig, client storage.Client, logger zerolog.Logger) *Uploader {
	return &Uploader{
		cfg:    cfg,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Upload streams the file at localPath into the bucket under a
// timestamped key and returns a URL for the stored object: a presigned
// GET URL when the driver can sign one, otherwise the direct endpoint
// URL. Transfer errors propagate as-is; there are no retries and a
// failed transfer leaves no usable object.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	if err := storage.ValidateConfig(u.cfg); err != nil {
		return "", err
	}

	now := u.now()
	key := ObjectKey(u.cfg.KeyPrefix, now)
	if u.cfg.UniqueKeys {
		key = uniqueObjectKey(u.cfg.KeyPrefix, now)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer file.Close()

	if err := u.client.Put(ctx, key, contentType, file); err != nil {
		return "", err
	}

	u.logger.Info().
		Str("key", key).
		Str("bucket", u.cfg.Bucket).
		Msg("upload completed")

	url, err := u.client.PresignGet(ctx, key, u.presignTTL())
	if err != nil {
		// Presign failure is recoverable: hand out the direct URL and
		// rely on the bucket policy for access
		u.logger.Debug().
			Err(err).
			Str("key", key).
			Msg("presign unavailable, falling back to direct URL")
		return storage.DirectURL(u.cfg.Endpoint, u.cfg.Bucket, key), nil
	}

	return url, nil
}

func (u *Uploader) presignTTL() time.Duration {
	if u.cfg.PresignTTL > 0 {
		return u.cfg.PresignTTL
	}
	return DefaultPresignTTL
}
