package s3

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jsgroupfr/merge-videos-api/pkg/config"
	"github.com/jsgroupfr/merge-videos-api/pkg/storage"
)

// Client is the S3-compatible storage driver. It talks sigv4 to any
// endpoint implementing the S3 REST API (Railway buckets, MinIO, R2, AWS).
type Client struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
	bucket    string
}

func init() {
	storage.Register("s3", func(ctx context.Context, cfg config.StorageConfig) (storage.Client, error) {
		return New(ctx, cfg)
	})
}

// New creates a new S3 client for the configured endpoint
func New(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	if err := storage.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	// Build AWS config with static credentials
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, storage.WrapError("s3", "init", err)
	}

	// Path-style addressing: S3-compatible endpoints rarely support
	// virtual-hosted buckets
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Client{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
		bucket:    cfg.Bucket,
	}, nil
}

func (c *Client) Driver() string { return "s3" }

// Put streams body to the bucket at key
func (c *Client) Put(ctx context.Context, key string, contentType string, body io.Reader) error {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return storage.WrapError("s3", "put", err)
	}

	return nil
}

// PresignGet returns a presigned GET URL valid for ttl
func (c *Client) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", storage.WrapError("s3", "presign", err)
	}

	return req.URL, nil
}

// Close is a no-op for S3
func (c *Client) Close() error {
	return nil
}
