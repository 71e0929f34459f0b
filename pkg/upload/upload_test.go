package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsgroupfr/merge-videos-api/pkg/config"
	"github.com/jsgroupfr/merge-videos-api/pkg/storage"
	"github.com/jsgroupfr/merge-videos-api/pkg/storage/mocks"
)

var fixedClock = func() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func validStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Driver:          "s3",
		Bucket:          "videos",
		Endpoint:        "https://storage.example.com",
		AccessKeyID:     "AKID",
		SecretAccessKey: "SAK",
		Region:          "auto",
		KeyPrefix:       "merged",
		PresignTTL:      168 * time.Hour,
	}
}

func writeTempVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "merged.mp4")
	require.NoError(t, os.WriteFile(path, []byte("fake mp4 bytes"), 0644))
	return path
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		t      time.Time
		want   string
	}{
		{
			name:   "fixed clock",
			prefix: "merged",
			t:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			want:   "merged-20240102030405.mp4",
		},
		{
			name:   "custom prefix",
			prefix: "clips",
			t:      time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			want:   "clips-20241231235959.mp4",
		},
		{
			name:   "empty prefix falls back to default",
			prefix: "",
			t:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			want:   "merged-20240102030405.mp4",
		},
		{
			name:   "non-UTC time is normalized",
			prefix: "merged",
			t:      time.Date(2024, 1, 2, 5, 4, 5, 0, time.FixedZone("CEST", 2*3600)),
			want:   "merged-20240102030405.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectKey(tt.prefix, tt.t))
		})
	}
}

func TestUniqueObjectKey(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	a := uniqueObjectKey("merged", ts)
	b := uniqueObjectKey("merged", ts)

	assert.Regexp(t, `^merged-20240102030405-[0-9a-f-]{8}\.mp4$`, a)
	assert.NotEqual(t, a, b, "same-second keys should not collide")
}

func TestUpload_MissingConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.StorageConfig)
	}{
		{"missing_bucket", func(c *config.StorageConfig) { c.Bucket = "" }},
		{"missing_endpoint", func(c *config.StorageConfig) { c.Endpoint = "" }},
		{"missing_access_key", func(c *config.StorageConfig) { c.AccessKeyID = "" }},
		{"missing_secret_key", func(c *config.StorageConfig) { c.SecretAccessKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStorageConfig()
			tt.mutate(&cfg)

			// No expectations: any call on the client fails the test
			client := mocks.NewMockClient(t)

			u := New(cfg, client, zerolog.Nop())
			url, err := u.Upload(context.Background(), writeTempVideo(t))

			require.ErrorIs(t, err, storage.ErrInvalidConfig)
			assert.Empty(t, url)
		})
	}
}

func TestUpload_PresignedURL(t *testing.T) {
	cfg := validStorageConfig()
	signed := "https://storage.example.com/videos/merged-20240102030405.mp4?X-Amz-Signature=abc"

	client := mocks.NewMockClient(t)
	client.On("Put",
		mock.Anything,
		"merged-20240102030405.mp4",
		"video/mp4",
		mock.Anything,
	).Return(nil).Once()
	client.On("PresignGet",
		mock.Anything,
		"merged-20240102030405.mp4",
		168*time.Hour,
	).Return(signed, nil).Once()

	u := New(cfg, client, zerolog.Nop())
	u.now = fixedClock

	url, err := u.Upload(context.Background(), writeTempVideo(t))

	require.NoError(t, err)
	assert.Equal(t, signed, url)
	assert.Contains(t, url, cfg.Bucket)
	assert.Contains(t, url, "merged-20240102030405.mp4")
}

func TestUpload_PresignFallback(t *testing.T) {
	t.Run("direct_url_on_presign_error", func(t *testing.T) {
		cfg := validStorageConfig()

		client := mocks.NewMockClient(t)
		client.On("Put", mock.Anything, mock.Anything, "video/mp4", mock.Anything).Return(nil).Once()
		client.On("PresignGet", mock.Anything, mock.Anything, mock.Anything).
			Return("", storage.WrapError("s3", "presign", storage.ErrNotSupported)).Once()

		u := New(cfg, client, zerolog.Nop())
		u.now = fixedClock

		url, err := u.Upload(context.Background(), writeTempVideo(t))

		require.NoError(t, err, "presign failure must not surface")
		assert.Equal(t, "https://storage.example.com/videos/merged-20240102030405.mp4", url)
		assert.NotContains(t, url, "?", "fallback URL carries no presign query parameters")
	})

	t.Run("endpoint_trailing_slash_trimmed", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.Endpoint = "https://storage.example.com/"

		client := mocks.NewMockClient(t)
		client.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		client.On("PresignGet", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("signer exploded")).Once()

		u := New(cfg, client, zerolog.Nop())
		u.now = fixedClock

		url, err := u.Upload(context.Background(), writeTempVideo(t))

		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/videos/merged-20240102030405.mp4", url)
	})
}

func TestUpload_TransferError(t *testing.T) {
	cfg := validStorageConfig()
	transferErr := storage.WrapError("s3", "put", storage.ErrConnFailed)

	// PresignGet has no expectation: a failed transfer must not reach it
	client := mocks.NewMockClient(t)
	client.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(transferErr).Once()

	u := New(cfg, client, zerolog.Nop())
	u.now = fixedClock

	url, err := u.Upload(context.Background(), writeTempVideo(t))

	require.ErrorIs(t, err, storage.ErrConnFailed)
	assert.Empty(t, url)
}

func TestUpload_FileMissing(t *testing.T) {
	cfg := validStorageConfig()

	// No expectations: the client must not be touched for an unreadable file
	client := mocks.NewMockClient(t)

	u := New(cfg, client, zerolog.Nop())
	url, err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, url)
}

func TestUpload_UniqueKeys(t *testing.T) {
	cfg := validStorageConfig()
	cfg.UniqueKeys = true

	var gotKey string
	client := mocks.NewMockClient(t)
	client.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		gotKey = key
		return true
	}), "video/mp4", mock.Anything).Return(nil).Once()
	client.On("PresignGet", mock.Anything, mock.Anything, mock.Anything).
		Return("", storage.ErrNotSupported).Once()

	u := New(cfg, client, zerolog.Nop())
	u.now = fixedClock

	url, err := u.Upload(context.Background(), writeTempVideo(t))

	require.NoError(t, err)
	assert.Regexp(t, `^merged-20240102030405-[0-9a-f-]{8}\.mp4$`, gotKey)
	assert.Equal(t, storage.DirectURL(cfg.Endpoint, cfg.Bucket, gotKey), url)
}
