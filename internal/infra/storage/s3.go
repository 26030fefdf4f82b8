package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/glowbook/salon-platform/internal/config"
)

// LogoStorage uploads salon logos to any S3-compatible bucket
// (AWS S3, MinIO, etc.) and returns a public URL.
type LogoStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewLogoStorage(cfg *config.Config) *LogoStorage {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	}

	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := cfg.S3PublicURL
	if publicURL == "" && cfg.S3Endpoint != "" {
		publicURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.S3Endpoint, "/"), cfg.S3Bucket)
	}

	return &LogoStorage{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// UploadLogo stores the already-converted WebP bytes under a stable key
// per salon, so re-uploads overwrite the previous logo.
func (s *LogoStorage) UploadLogo(ctx context.Context, salonID uint, webpData []byte) (string, error) {
	key := fmt.Sprintf("logos/salon-%d.webp", salonID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(webpData),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
